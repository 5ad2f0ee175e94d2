// FILE: internal/transport/transport.go
package transport

import (
	"context"

	"hexref/internal/board"
	"hexref/internal/cli"
	"hexref/internal/core"
	"hexref/internal/game"
	"hexref/internal/referee"
)

// Match is the referee surface an operator front end drives
type Match interface {
	Step(ctx context.Context) (*game.MoveResult, error)
	Check() core.Tile
	Turn() core.Tile
	Board() *board.Board
	BotBoards(ctx context.Context) ([]referee.BotBoard, error)
}

// View abstracts display/output operations
type View interface {
	GetCommand() (*cli.Command, error)
	Color() bool
	DisplayBoard(b *board.Board)
	ShowMessage(msg string)
	ShowError(err error)
	ShowPrompt(prompt string)
	ShowHelp()
	ShowUnknown(cmd *cli.Command)
	ShowMove(result *game.MoveResult)
	ShowCheck(winner core.Tile)
	ShowGameOver(winner core.Tile)
	ShowViolation(v *referee.Violation)
	ShowAll(central *board.Board, bots []referee.BotBoard)
}

var (
	_ Match = (*referee.Referee)(nil)
	_ View  = (*cli.CLI)(nil)
)
