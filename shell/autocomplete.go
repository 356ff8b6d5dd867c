package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command.
type CommandMetadata struct {
	Options []string // available -options for this command
}

var commandMetadata = map[string]CommandMetadata{
	"poem":     {Options: []string{"-corpus"}},
	"stats":    {Options: []string{"-bins"}},
	"vertices": {Options: []string{"-limit"}},
}

var commandNames = []string{
	"load", "poem", "bridge", "targets", "sources", "vertices", "stats",
	"help", "exit",
}

// Do implements the readline.AutoComplete interface. Command names complete
// at the start of the line; after a command, its options complete. Vertex
// labels complete for the query commands once a corpus is loaded.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		switch cmdName {
		case "targets", "sources", "bridge":
			if c.sc.poet != nil {
				completions = c.sc.poet.Graph().Vertices()
			}
		default:
			if metadata, exists := commandMetadata[cmdName]; exists && strings.HasPrefix(prefix, "-") {
				completions = metadata.Options
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
