// FILE: internal/board/board.go
package board

import (
	"errors"
	"fmt"
	"strings"

	"hexref/internal/core"
)

// MaxSize is the largest dimension addressable by a single row letter
const MaxSize = 26

var (
	ErrOutOfRange = errors.New("coordinate out of range")
	ErrMalformed  = errors.New("malformed board string")
)

// Coord is a zero-indexed cell position
type Coord struct {
	Row int
	Col int
}

// offsets is the axial hex neighbour template
var offsets = [6]Coord{
	{0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1},
}

type Board struct {
	rows  int
	cols  int
	tiles []core.Tile
}

// New allocates an all-empty rows x cols grid. Dimensions are validated by
// the caller.
func New(rows, cols int) *Board {
	return &Board{
		rows:  rows,
		cols:  cols,
		tiles: make([]core.Tile, rows*cols),
	}
}

func NewSquare(size int) *Board {
	return New(size, size)
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfRange, row, col, b.rows, b.cols)
	}
	return row*b.cols + col, nil
}

func (b *Board) Get(row, col int) (core.Tile, error) {
	i, err := b.index(row, col)
	if err != nil {
		return core.Empty, err
	}
	return b.tiles[i], nil
}

// Set overwrites a cell unconditionally, occupied or not
func (b *Board) Set(row, col int, t core.Tile) error {
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	b.tiles[i] = t
	return nil
}

// Adjacent returns the in-bounds hex neighbours of a cell
func (b *Board) Adjacent(row, col int) ([]Coord, error) {
	if !b.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfRange, row, col, b.rows, b.cols)
	}
	return b.adjacent(row, col), nil
}

func (b *Board) adjacent(row, col int) []Coord {
	out := make([]Coord, 0, len(offsets))
	for _, o := range offsets {
		r, c := row+o.Row, col+o.Col
		if b.InBounds(r, c) {
			out = append(out, Coord{r, c})
		}
	}
	return out
}

// EmptyCells lists every empty cell in row-major order
func (b *Board) EmptyCells() []Coord {
	var out []Coord
	for i, t := range b.tiles {
		if t == core.Empty {
			out = append(out, Coord{i / b.cols, i % b.cols})
		}
	}
	return out
}

// Clear resets every cell to empty
func (b *Board) Clear() {
	for i := range b.tiles {
		b.tiles[i] = core.Empty
	}
}

func (b *Board) Clone() *Board {
	tiles := make([]core.Tile, len(b.tiles))
	copy(tiles, b.tiles)
	return &Board{rows: b.rows, cols: b.cols, tiles: tiles}
}

// Equal reports whether both boards have the same shape and contents
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// Compact serializes the board one character per cell with '|' after
// every row
func (b *Board) Compact() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols + 1))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			sb.WriteByte(b.tiles[r*b.cols+c].Letter())
		}
		sb.WriteByte('|')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Compact()
}

// Parse reads the compact form produced by Compact. A trailing line ending
// is ignored.
func Parse(s string) (*Board, error) {
	s = strings.TrimRight(s, "\r\n")
	if s == "" || !strings.HasSuffix(s, "|") {
		return nil, fmt.Errorf("%w: %q must end with '|'", ErrMalformed, s)
	}

	rows := strings.Split(strings.TrimSuffix(s, "|"), "|")
	cols := len(rows[0])
	if cols == 0 || cols > MaxSize || len(rows) > MaxSize {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrMalformed, len(rows), cols)
	}

	b := New(len(rows), cols)
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformed, r, len(line), cols)
		}
		for c := 0; c < cols; c++ {
			t, ok := core.TileFromLetter(line[c])
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at row %d", ErrMalformed, line[c], r)
			}
			b.tiles[r*cols+c] = t
		}
	}
	return b, nil
}

// ToASCII creates the staggered operator rendering of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.WriteString(strings.Repeat(" ", r))
		for c := 0; c < b.cols; c++ {
			sb.WriteByte(b.tiles[r*b.cols+c].Letter())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("-", 15))
	sb.WriteString("\nBlack: B, White: W")

	return sb.String()
}
