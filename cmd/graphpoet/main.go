package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/graphpoet/config"
	"github.com/domino14/graphpoet/shell"
	"github.com/domino14/graphpoet/wordgraph"
)

var (
	GitVersion string
)

//go:embed banner.txt
var banner string

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(banner)
	fmt.Println(GitVersion)

	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		panic(err)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		wordgraph.EnableDebugChecks()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	// Flags were consumed by the config loader; whatever remains is a
	// one-shot shell command.
	argsLine := strings.TrimSpace(strings.Join(cfg.Args(), " "))

	sc := shell.NewShellController(cfg, exPath)
	if argsLine == "" {
		go sc.Loop(sig)
	} else {
		go sc.Execute(sig, argsLine)
	}

	<-idleConnsClosed
	sc.Cleanup()
}
