// FILE: cmd/hexref/main.go
// Package main runs Hex bot matches and bot conformance checks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"hexref/internal/config"
	"hexref/internal/display"
)

const usage = `Usage: hexref [-config file] <command> [arguments]

Commands:
  matchup [-timeout d] <size> <black_bot> <white_bot>
        Referee a match between two bots from an interactive REPL
  test [-timeout d] <bot_path> <black|white>
        Check that a bot speaks the protocol correctly

Environment:
`

// errFailed signals a non-zero exit without an extra message
var errFailed = errors.New("failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "hexref: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hexref", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config file (environment only if empty)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage, config.Usage())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("subcommand required: matchup or test")
	}

	log := newLogger(cfg)

	switch rest[0] {
	case "matchup":
		return runMatchup(cfg, rest[1:], stdout, log)
	case "test":
		return runTest(cfg, rest[1:], stdout, log)
	default:
		fs.Usage()
		return fmt.Errorf("unknown subcommand: %s", rest[0])
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !display.Enabled(cfg.Color, os.Stderr),
	}
	return zerolog.New(out).Level(cfg.Level()).With().Timestamp().Logger()
}
