package board

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexref/internal/core"
)

// place sets cells given in "a1" notation
func place(t *testing.T, b *Board, tile core.Tile, moves ...string) {
	t.Helper()
	for _, m := range moves {
		col, err := strconv.Atoi(m[1:])
		require.NoError(t, err)
		require.NoError(t, b.Set(int(m[0]-'a'), col-1, tile))
	}
}

func TestNew(t *testing.T) {
	for _, size := range []int{1, 2, 3, 8, 11, 26} {
		t.Run(strconv.Itoa(size), func(t *testing.T) {
			// When: a fresh board is created
			b := NewSquare(size)

			// Then: it serializes to size rows of dots
			expected := strings.Repeat(strings.Repeat(".", size)+"|", size)
			assert.Equal(t, expected, b.Compact())
			assert.Equal(t, size, b.Rows())
			assert.Equal(t, size, b.Cols())
		})
	}
}

func TestBoard_GetSet(t *testing.T) {
	t.Run("Set changes only the target cell", func(t *testing.T) {
		// Given: a board with a few stones
		b := NewSquare(5)
		place(t, b, core.FirstPlayer, "a1", "c3")
		place(t, b, core.SecondPlayer, "e5")
		before := b.Clone()

		// When: an occupied cell is overwritten
		require.NoError(t, b.Set(2, 2, core.SecondPlayer))

		// Then: only that cell differs
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				got, err := b.Get(r, c)
				require.NoError(t, err)
				want, _ := before.Get(r, c)
				if r == 2 && c == 2 {
					assert.Equal(t, core.SecondPlayer, got)
				} else {
					assert.Equal(t, want, got, "cell (%d,%d)", r, c)
				}
			}
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		b := NewSquare(3)

		_, err := b.Get(3, 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = b.Get(0, -1)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.ErrorIs(t, b.Set(-1, 0, core.FirstPlayer), ErrOutOfRange)
		_, err = b.Adjacent(0, 3)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("Rectangular", func(t *testing.T) {
		b := New(2, 4)
		require.NoError(t, b.Set(1, 3, core.SecondPlayer))
		assert.Equal(t, "....|...W|", b.Compact())
	})
}

func TestBoard_Adjacent(t *testing.T) {
	b := NewSquare(5)

	tests := []struct {
		row, col int
		expected []Coord
	}{
		{2, 2, []Coord{{2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}}},
		{0, 0, []Coord{{1, 0}, {0, 1}}},
		{4, 4, []Coord{{4, 3}, {3, 4}}},
		{0, 4, []Coord{{0, 3}, {1, 3}, {1, 4}}},
		{4, 0, []Coord{{3, 0}, {3, 1}, {4, 1}}},
		{1, 4, []Coord{{1, 3}, {2, 3}, {0, 4}, {2, 4}}},
	}

	for _, tt := range tests {
		got, err := b.Adjacent(tt.row, tt.col)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "neighbours of (%d,%d)", tt.row, tt.col)
	}
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Blank boards", func(t *testing.T) {
		for _, size := range []int{1, 3, 8, 20, 26} {
			assert.Equal(t, core.Empty, NewSquare(size).Winner(), "size %d", size)
		}
	})

	t.Run("Column connects top to bottom", func(t *testing.T) {
		b := NewSquare(3)
		place(t, b, core.FirstPlayer, "a1", "b1", "c1")
		assert.Equal(t, core.FirstPlayer, b.Winner())

		b = NewSquare(3)
		place(t, b, core.SecondPlayer, "a1", "b1", "c1")
		assert.Equal(t, core.Empty, b.Winner())
	})

	t.Run("Row connects left to right", func(t *testing.T) {
		b := NewSquare(3)
		place(t, b, core.SecondPlayer, "a1", "a2", "a3")
		assert.Equal(t, core.SecondPlayer, b.Winner())

		b = NewSquare(3)
		place(t, b, core.FirstPlayer, "a1", "a2", "a3")
		assert.Equal(t, core.Empty, b.Winner())
	})

	t.Run("Main diagonal is not connected", func(t *testing.T) {
		b := NewSquare(3)
		place(t, b, core.FirstPlayer, "a1", "b2", "c3")
		assert.Equal(t, core.Empty, b.Winner())

		b = NewSquare(3)
		place(t, b, core.SecondPlayer, "a1", "b2", "c3")
		assert.Equal(t, core.Empty, b.Winner())
	})

	t.Run("Anti diagonal is connected", func(t *testing.T) {
		b := NewSquare(3)
		place(t, b, core.FirstPlayer, "a3", "b2", "c1")
		assert.Equal(t, core.FirstPlayer, b.Winner())
	})

	t.Run("Single cell board", func(t *testing.T) {
		b := NewSquare(1)
		require.NoError(t, b.Set(0, 0, core.SecondPlayer))
		assert.Equal(t, core.SecondPlayer, b.Winner())

		require.NoError(t, b.Set(0, 0, core.FirstPlayer))
		assert.Equal(t, core.FirstPlayer, b.Winner())
	})

	t.Run("Winding path on 11x11", func(t *testing.T) {
		// Given: a black path that zig-zags across the board
		path := []string{
			"a3", "b3", "c3", "c4", "b5", "b6", "b7", "b8", "b9", "b10", "b11",
			"c11", "d11", "e11", "f10", "g9", "h9", "i8", "j8", "j9", "j10", "j11", "k11",
		}
		b := NewSquare(11)
		place(t, b, core.FirstPlayer, path...)
		place(t, b, core.SecondPlayer, "a1", "k1", "f5")

		// Then: black has won
		assert.Equal(t, core.FirstPlayer, b.Winner())

		// When: a single stone of the path is removed
		require.NoError(t, b.Set(1, 6, core.Empty))

		// Then: nobody has won
		assert.Equal(t, core.Empty, b.Winner())
	})

	t.Run("Rectangular board", func(t *testing.T) {
		b := New(2, 5)
		place(t, b, core.SecondPlayer, "b1", "b2", "b3", "b4", "b5")
		assert.Equal(t, core.SecondPlayer, b.Winner())
	})
}

func TestParse(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		inputs := []string{
			"B..|...|...|",
			".|",
			"BW|WB|",
			"B.W.|.BW.|..B.|W.WB|",
			"....|...W|",
		}
		for _, in := range inputs {
			b, err := Parse(in)
			require.NoError(t, err, in)
			assert.Equal(t, in, b.Compact())
		}
	})

	t.Run("Trailing line ending ignored", func(t *testing.T) {
		b, err := Parse("B.|..|\r\n")
		require.NoError(t, err)
		assert.Equal(t, "B.|..|", b.Compact())
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, in := range []string{"", "|", "B..", "B..|..|", "X..|...|...|", "B..|...||"} {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
		}
	})
}

func TestBoard_ToASCII(t *testing.T) {
	// Given: a 4x4 board with mixed stones
	b := NewSquare(4)
	place(t, b, core.FirstPlayer, "a1", "b2", "c3", "d4")
	place(t, b, core.SecondPlayer, "b3", "d1", "d3")

	expected := "B . . . \n" +
		" . B W . \n" +
		"  . . B . \n" +
		"   W . W B \n" +
		"---------------\n" +
		"Black: B, White: W"

	// Then: rows are staggered by their index
	assert.Equal(t, expected, b.ToASCII())
}

func TestBoard_EmptyCells(t *testing.T) {
	b := NewSquare(2)
	place(t, b, core.FirstPlayer, "a2")
	place(t, b, core.SecondPlayer, "b1")
	assert.Equal(t, []Coord{{0, 0}, {1, 1}}, b.EmptyCells())

	b.Clear()
	assert.Len(t, b.EmptyCells(), 4)
	assert.True(t, b.Equal(NewSquare(2)))
}
