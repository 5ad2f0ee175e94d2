// FILE: internal/transport/cli/handler.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"hexref/internal/cli"
	"hexref/internal/core"
	"hexref/internal/display"
	"hexref/internal/game"
	"hexref/internal/referee"
	"hexref/internal/transport"
)

type CLIHandler struct {
	ref  transport.Match
	view transport.View
}

func New(ref transport.Match, view transport.View) *CLIHandler {
	return &CLIHandler{
		ref:  ref,
		view: view,
	}
}

// Main REPL loop. Returns when the operator quits, input ends or the match
// is decided.
func (h *CLIHandler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			return err
		}

		if !h.ProcessCommand(ctx, cmd) {
			return nil
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	return display.Prompt(h.view.Color(), fmt.Sprintf("hex [%s]", h.ref.Turn()))
}

// Handles operator commands - returns false to exit
func (h *CLIHandler) ProcessCommand(ctx context.Context, cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdNone:
		return true

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdShow:
		h.view.DisplayBoard(h.ref.Board())

	case cli.CmdShowAll:
		boards, err := h.ref.BotBoards(ctx)
		h.view.ShowAll(h.ref.Board(), boards)
		if err != nil {
			return h.handleError(err)
		}

	case cli.CmdCheck:
		h.view.ShowCheck(h.ref.Check())

	case cli.CmdNext:
		return h.playTurns(ctx, 1)

	case cli.CmdRun:
		if len(cmd.Args) != 1 {
			h.view.ShowUnknown(cmd)
			return true
		}
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil || n < 0 {
			h.view.ShowUnknown(cmd)
			return true
		}
		return h.playTurns(ctx, n)

	case cli.CmdQuit:
		h.view.ShowMessage("Shutting down")
		return false

	default:
		h.view.ShowUnknown(cmd)
	}

	return true
}

// playTurns advances the match one turn at a time, echoing each move
func (h *CLIHandler) playTurns(ctx context.Context, n int) bool {
	for i := 0; i < n; i++ {
		result, err := h.ref.Step(ctx)
		if err != nil {
			return h.handleError(err)
		}

		h.view.ShowMove(result)
		if result.GameState != core.StateOngoing {
			h.showResult(result)
			return false
		}
	}
	return true
}

func (h *CLIHandler) showResult(result *game.MoveResult) {
	h.view.DisplayBoard(h.ref.Board())
	h.view.ShowGameOver(result.GameState.Winner())
}

// handleError reports a failed turn; only errors that end the match stop the REPL
func (h *CLIHandler) handleError(err error) bool {
	var v *referee.Violation
	switch {
	case errors.As(err, &v):
		h.view.ShowViolation(v)
		h.view.ShowGameOver(v.Winner())
		return false
	case errors.Is(err, referee.ErrMatchOver):
		h.view.ShowGameOver(h.ref.Check())
		return false
	default:
		h.view.ShowError(err)
		return false
	}
}
