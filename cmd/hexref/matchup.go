// FILE: cmd/hexref/matchup.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"hexref/internal/board"
	"hexref/internal/cli"
	"hexref/internal/config"
	"hexref/internal/display"
	"hexref/internal/referee"
	clitransport "hexref/internal/transport/cli"
	httptransport "hexref/internal/transport/http"
)

const gracefulShutdownTimeout = 5 * time.Second

func runMatchup(cfg *config.Config, args []string, stdout io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("matchup", flag.ContinueOnError)
	timeout := fs.Duration("timeout", cfg.TurnTimeout, "Time a bot gets per reply (0 waits forever)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: matchup <size> <black_bot> <white_bot>")
	}

	size, err := strconv.Atoi(fs.Arg(0))
	if err != nil || size < 1 || size > board.MaxSize {
		return fmt.Errorf("invalid board size %q: must be 1 to %d", fs.Arg(0), board.MaxSize)
	}
	blackPath, whitePath := fs.Arg(1), fs.Arg(2)

	ref, err := referee.Launch(referee.Options{Size: size, TurnTimeout: *timeout}, blackPath, whitePath, cfg.QuitGrace, log)
	if err != nil {
		return err
	}
	defer ref.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bots are reaped before exit on every signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	go func() {
		<-quit
		log.Warn().Msg("signal received, shutting down bots")
		cancel()
		if err := ref.Close(); err != nil {
			log.Error().Err(err).Msg("bot shutdown failed")
		}
		os.Exit(130)
	}()

	if cfg.HTTPAddr != "" {
		app := httptransport.NewFiberApp(ref, log)
		go func() {
			log.Info().Str("addr", cfg.HTTPAddr).Str("match", ref.ID()).Msg("spectator API listening")
			if err := app.Listen(cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("spectator API stopped")
			}
		}()
		defer func() {
			if err := app.ShutdownWithTimeout(gracefulShutdownTimeout); err != nil {
				log.Warn().Err(err).Msg("spectator API forced to shut down")
			}
		}()
	}

	colorOn := display.Enabled(cfg.Color, os.Stdout)
	input, closeInput, err := newLineReader(cfg, colorOn)
	if err != nil {
		return err
	}
	defer closeInput()

	view := cli.New(input, stdout, colorOn)
	view.ShowWelcome(size, blackPath, whitePath)

	handler := clitransport.New(ref, view)
	if err := handler.Run(ctx); err != nil {
		return err
	}

	if v := ref.Violation(); v != nil {
		log.Info().Str("violation", v.Kind.String()).Str("winner", v.Winner().String()).Msg("match forfeited")
	}
	return nil
}

// newLineReader uses readline with history on a terminal, plain lines otherwise
func newLineReader(cfg *config.Config, colorOn bool) (cli.LineReader, func(), error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cli.NewScannerReader(os.Stdin), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt(colorOn, "hex"),
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start line editor: %w", err)
	}
	return rl, func() { _ = rl.Close() }, nil
}
