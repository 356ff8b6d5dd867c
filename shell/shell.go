// Package shell implements the interactive graphpoet shell: load corpora,
// generate poems, and poke at the affinity graph from a readline loop.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/graphpoet/config"
	"github.com/domino14/graphpoet/poet"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoCorpusLoaded    = errors.New("please load a corpus first with the `load` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields parses a shell line into a command, positional arguments,
// and -opt value options. Quoted arguments survive intact.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	lastWasOption := false
	lastOption := ""
	for _, field := range fields[1:] {
		if strings.HasPrefix(field, "-") {
			lastWasOption = true
			lastOption = field[1:]
			continue
		}
		if lastWasOption {
			options[lastOption] = field
			lastWasOption = false
		} else {
			args = append(args, field)
		}
	}
	if lastWasOption {
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

type Response struct {
	message string
}

func Msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string

	poet        *poet.Poet
	corpusFiles []string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := &ShellController{config: cfg, execPath: execPath}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgraphpoet>\033[0m ",
		HistoryFile:     cfg.GetString("history-file"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		AutoComplete:        NewShellCompleter(sc),
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

// resolveCorpus returns path if it exists as given, otherwise the path
// rebased onto the configured corpus directory.
func (sc *ShellController) resolveCorpus(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(sc.config.GetString("corpus-path"), path)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <corpus-file> [corpus-file...]")
	}
	paths := lo.Map(cmd.args, func(p string, _ int) string {
		return sc.resolveCorpus(p)
	})
	var p *poet.Poet
	var err error
	if len(paths) == 1 {
		p, err = poet.NewFromFile(paths[0])
	} else {
		p, err = poet.NewFromFiles(paths...)
	}
	if err != nil {
		return nil, err
	}
	sc.poet = p
	sc.corpusFiles = paths
	log.Debug().Strs("paths", paths).Msg("loaded corpus")
	g := p.Graph()
	return Msg(fmt.Sprintf("loaded %d corpus file(s); %d vertices, %d edges",
		len(paths), g.NumVertices(), g.NumEdges())), nil
}

func (sc *ShellController) poem(cmd *shellcmd) (*Response, error) {
	// -corpus lets one-shot invocations load and generate in a single
	// command: `poem -corpus sonnets.txt Test the system.`
	if corpus, ok := cmd.options["corpus"]; ok {
		_, err := sc.load(&shellcmd{cmd: "load", args: []string{corpus}, options: map[string]string{}})
		if err != nil {
			return nil, err
		}
	}
	if sc.poet == nil {
		return nil, errNoCorpusLoaded
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: poem <input text>")
	}
	return Msg(strings.Join(sc.poet.PoemTokens(cmd.args), " ")), nil
}

func (sc *ShellController) bridge(cmd *shellcmd) (*Response, error) {
	if sc.poet == nil {
		return nil, errNoCorpusLoaded
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: bridge <word1> <word2>")
	}
	b, weight, ok := sc.poet.Bridge(cmd.args[0], cmd.args[1])
	if !ok {
		return Msg(fmt.Sprintf("no bridge between %q and %q", cmd.args[0], cmd.args[1])), nil
	}
	return Msg(fmt.Sprintf("%s (two-hop weight %d)", b, weight)), nil
}

// adjacency handles both the targets and the sources commands.
func (sc *ShellController) adjacency(cmd *shellcmd) (*Response, error) {
	if sc.poet == nil {
		return nil, errNoCorpusLoaded
	}
	if len(cmd.args) != 1 {
		return nil, fmt.Errorf("usage: %s <word>", cmd.cmd)
	}
	word := poet.Normalize(cmd.args[0])
	var edges map[string]int
	if cmd.cmd == "targets" {
		edges = sc.poet.Graph().Targets(word)
	} else {
		edges = sc.poet.Graph().Sources(word)
	}
	if len(edges) == 0 {
		return Msg(fmt.Sprintf("no %s for %q", cmd.cmd, word)), nil
	}
	labels := lo.Keys(edges)
	sort.Strings(labels)
	var sb strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&sb, "%-24s %d\n", label, edges[label])
	}
	return Msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) vertices(cmd *shellcmd) (*Response, error) {
	if sc.poet == nil {
		return nil, errNoCorpusLoaded
	}
	labels := sc.poet.Graph().Vertices()
	total := len(labels)
	if limitStr, ok := cmd.options["limit"]; ok {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("bad -limit value %q", limitStr)
		}
		if limit < len(labels) {
			labels = labels[:limit]
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d vertices", total)
	if len(labels) < total {
		fmt.Fprintf(&sb, " (showing %d)", len(labels))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Join(labels, "\n"))
	return Msg(sb.String()), nil
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "load", "l":
		return sc.load(cmd)
	case "poem", "p":
		return sc.poem(cmd)
	case "bridge", "b":
		return sc.bridge(cmd)
	case "targets", "sources":
		return sc.adjacency(cmd)
	case "vertices", "v":
		return sc.vertices(cmd)
	case "stats":
		return sc.stats(cmd)
	case "help":
		return usage(cmd.args)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Loop runs the readline loop until exit/EOF/interrupt, then signals sig.
func (sc *ShellController) Loop(sig chan os.Signal) {
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.handle(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line, for one-shot invocations like
// `graphpoet load corpus.txt`.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer func() { sig <- syscall.SIGINT }()
	resp, err := sc.handle(strings.TrimSpace(line))
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
