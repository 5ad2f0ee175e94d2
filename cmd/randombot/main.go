// FILE: cmd/randombot/main.go
// Package main is a Hex bot that plays uniformly random legal moves.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"hexref/internal/core"
	"hexref/internal/randombot"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: randombot <black|white>")
		os.Exit(2)
	}

	color, err := core.ParseColor(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Str("bot", color.Name()).Logger()

	if err := randombot.New(color, log).Serve(os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("stdin closed with error")
		os.Exit(1)
	}
}
