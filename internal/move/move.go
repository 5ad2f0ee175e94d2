// FILE: internal/move/move.go
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hexref/internal/board"
	"hexref/internal/core"
)

// SwapToken invokes the pie rule
const SwapToken = "swap"

var (
	ErrMalformed     = errors.New("malformed move")
	ErrOccupied      = errors.New("cell is occupied")
	ErrSwapOutOfTurn = errors.New("swap is only allowed as the second move")
)

var movePattern = regexp.MustCompile(`^[a-z][0-9]{1,2}$`)

// Move is either a placement at Coord or a swap
type Move struct {
	board.Coord
	Swap bool
}

func Swap() Move {
	return Move{Swap: true}
}

func At(row, col int) Move {
	return Move{Coord: board.Coord{Row: row, Col: col}}
}

func (m Move) String() string {
	if m.Swap {
		return SwapToken
	}
	return Format(m.Coord)
}

// Format writes a coordinate as row letter plus one-indexed column
func Format(c board.Coord) string {
	return fmt.Sprintf("%c%d", 'a'+c.Row, c.Col+1)
}

// Decode applies the move grammar without looking at a board
func Decode(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == SwapToken {
		return Swap(), nil
	}
	if !movePattern.MatchString(s) {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return At(int(s[0]-'a'), col-1), nil
}

// Parse decodes s and checks the coordinate lies on b. Out of range
// coordinates are malformed.
func Parse(s string, b *board.Board) (Move, error) {
	m, err := Decode(s)
	if err != nil {
		return Move{}, err
	}
	if !m.Swap && !b.InBounds(m.Row, m.Col) {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrMalformed, s, board.ErrOutOfRange)
	}
	return m, nil
}

// Check reports why m cannot be played on b, ignoring swap timing
func Check(m Move, b *board.Board) error {
	if m.Swap {
		return nil
	}
	t, err := b.Get(m.Row, m.Col)
	if err != nil {
		return err
	}
	if t != core.Empty {
		return fmt.Errorf("%w: %s holds %s", ErrOccupied, m, t)
	}
	return nil
}

// IsLegal reports whether s parses and targets an empty cell. Swap is
// always legal as a token.
func IsLegal(s string, b *board.Board) bool {
	m, err := Parse(s, b)
	if err != nil {
		return false
	}
	return Check(m, b) == nil
}
