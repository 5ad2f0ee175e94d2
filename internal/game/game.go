// FILE: internal/game/game.go
package game

import (
	"fmt"

	"hexref/internal/board"
	"hexref/internal/core"
	"hexref/internal/move"
)

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move      move.Move
	Player    core.Tile
	GameState core.State
	Forfeit   bool // Player broke the protocol, Move is unset
}

// Game is the turn state of one match. The board is authoritative; players
// are keyed by the color they currently play.
type Game struct {
	board      *board.Board
	players    map[core.Tile]*core.Player
	turn       core.Tile
	moves      int
	swapped    bool
	state      core.State
	lastResult *MoveResult
}

func New(size int, blackPlayer, whitePlayer *core.Player) *Game {
	return &Game{
		board: board.NewSquare(size),
		players: map[core.Tile]*core.Player{
			core.FirstPlayer:  blackPlayer,
			core.SecondPlayer: whitePlayer,
		},
		turn:  core.FirstPlayer,
		state: core.StateOngoing,
	}
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Size() int {
	return g.board.Rows()
}

// NextTurn is the color to move
func (g *Game) NextTurn() core.Tile {
	return g.turn
}

func (g *Game) NextPlayer() *core.Player {
	return g.players[g.turn]
}

func (g *Game) Player(color core.Tile) *core.Player {
	return g.players[color]
}

// Moves counts moves played, swap included
func (g *Game) Moves() int {
	return g.moves
}

func (g *Game) Swapped() bool {
	return g.swapped
}

// CanSwap is true only for the second move of the game
func (g *Game) CanSwap() bool {
	return g.moves == 1 && !g.swapped
}

// Place puts the mover's stone at m and hands the turn over
func (g *Game) Place(m move.Move) (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, fmt.Errorf("game is over: %s", g.state)
	}
	if err := move.Check(m, g.board); err != nil {
		return nil, err
	}
	if err := g.board.Set(m.Row, m.Col, g.turn); err != nil {
		return nil, err
	}

	result := &MoveResult{Move: m, Player: g.turn}
	g.moves++
	if w := g.board.Winner(); w != core.Empty {
		g.state = core.WinState(w)
	} else {
		g.turn = core.Opponent(g.turn)
	}
	result.GameState = g.state
	g.lastResult = result
	return result, nil
}

// Swap applies the pie rule: the players trade colors and the board is
// left alone. The color to move does not change, so the player who just
// moved moves again under the new color.
func (g *Game) Swap() (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, fmt.Errorf("game is over: %s", g.state)
	}
	if !g.CanSwap() {
		return nil, move.ErrSwapOutOfTurn
	}

	mover := g.turn
	black, white := g.players[core.FirstPlayer], g.players[core.SecondPlayer]
	black.Color, white.Color = core.SecondPlayer, core.FirstPlayer
	g.players[core.FirstPlayer], g.players[core.SecondPlayer] = white, black
	g.swapped = true
	g.moves++

	result := &MoveResult{Move: move.Swap(), Player: mover, GameState: g.state}
	g.lastResult = result
	return result, nil
}

// Forfeit ends the game in favour of the opponent of loser
func (g *Game) Forfeit(loser core.Tile) {
	g.state = core.WinState(core.Opponent(loser))
}

func (g *Game) SetLastResult(result *MoveResult) {
	g.lastResult = result
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) State() core.State {
	return g.state
}

func (g *Game) SetState(s core.State) {
	g.state = s
}
