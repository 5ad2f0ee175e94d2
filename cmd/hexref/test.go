// FILE: cmd/hexref/test.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"hexref/internal/bot"
	"hexref/internal/config"
	"hexref/internal/conformance"
	"hexref/internal/core"
	"hexref/internal/display"
)

func runTest(cfg *config.Config, args []string, stdout io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	timeout := fs.Duration("timeout", cfg.TurnTimeout, "Time a bot gets per reply (0 waits forever)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: test <bot_path> <black|white>")
	}

	path := fs.Arg(0)
	color, err := core.ParseColor(fs.Arg(1))
	if err != nil {
		return err
	}

	suite, err := conformance.Default()
	if err != nil {
		return err
	}

	spawn := func(c core.Tile) (conformance.Conn, error) {
		p, err := bot.Spawn(bot.Config{
			Path:  path,
			Args:  []string{c.Name()},
			Grace: cfg.QuitGrace,
		}, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := conformance.NewRunner(spawn, color, stdout, display.Enabled(cfg.Color, os.Stdout), *timeout, log)
	report := runner.Run(ctx, suite)

	log.Debug().Int("passed", report.Passed).Int("failed", report.Failed).Str("bot", path).Msg("conformance run finished")
	if report.Failed > 0 {
		return errFailed
	}
	return nil
}
