// FILE: internal/core/core.go
package core

import (
	"fmt"
	"strings"
)

// Tile is the content of a single board cell. FirstPlayer (Black) connects
// the top row to the bottom row, SecondPlayer (White) connects the left
// column to the right column.
type Tile byte

const (
	Empty Tile = iota
	FirstPlayer
	SecondPlayer
)

func (t Tile) String() string {
	switch t {
	case FirstPlayer:
		return "Black"
	case SecondPlayer:
		return "White"
	default:
		return "Empty"
	}
}

// Name is the lowercase form handed to bots on their command line
func (t Tile) Name() string {
	return strings.ToLower(t.String())
}

// Letter returns the single character used by both board formats
func (t Tile) Letter() byte {
	switch t {
	case FirstPlayer:
		return 'B'
	case SecondPlayer:
		return 'W'
	default:
		return '.'
	}
}

// TileFromLetter is the inverse of Letter
func TileFromLetter(ch byte) (Tile, bool) {
	switch ch {
	case 'B':
		return FirstPlayer, true
	case 'W':
		return SecondPlayer, true
	case '.':
		return Empty, true
	default:
		return Empty, false
	}
}

// ParseColor accepts black/white (or b/w) in any case
func ParseColor(s string) (Tile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return FirstPlayer, nil
	case "white", "w":
		return SecondPlayer, nil
	default:
		return Empty, fmt.Errorf("invalid color %q: use black or white", s)
	}
}

func Opponent(t Tile) Tile {
	switch t {
	case FirstPlayer:
		return SecondPlayer
	case SecondPlayer:
		return FirstPlayer
	default:
		return Empty
	}
}

// Colors lists the two player colors in turn order
var Colors = [2]Tile{FirstPlayer, SecondPlayer}

type State int

const (
	StateOngoing State = iota
	StateFirstWins
	StateSecondWins
)

func (s State) String() string {
	switch s {
	case StateFirstWins:
		return "Black wins"
	case StateSecondWins:
		return "White wins"
	default:
		return "ongoing"
	}
}

// Winner returns the tile of the winning color, Empty while ongoing
func (s State) Winner() Tile {
	switch s {
	case StateFirstWins:
		return FirstPlayer
	case StateSecondWins:
		return SecondPlayer
	default:
		return Empty
	}
}

// WinState maps a winning tile to its terminal state
func WinState(t Tile) State {
	switch t {
	case FirstPlayer:
		return StateFirstWins
	case SecondPlayer:
		return StateSecondWins
	default:
		return StateOngoing
	}
}
