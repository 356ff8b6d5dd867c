package poet

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenize splits text on runs of whitespace (spaces, tabs, newlines) and
// drops empty fragments. Attached punctuation stays part of the word.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// ScanTokens lazily yields whitespace-delimited tokens from r, in document
// order. Read errors are not surfaced here; callers that need them should
// use buildFromReader or wrap their own scanner.
func ScanTokens(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}

// Normalize lower-cases a token into its graph label form. Uses the Unicode
// case mapper rather than strings.ToLower so non-ASCII corpora fold
// correctly; for ASCII the two agree.
func Normalize(token string) string {
	return cases.Lower(language.Und).String(token)
}
