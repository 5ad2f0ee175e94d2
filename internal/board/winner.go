// FILE: internal/board/winner.go
package board

import (
	"hexref/internal/core"
)

type visitState byte

const (
	unvisited visitState = iota
	visiting
	visited
)

// Winner returns FirstPlayer if black connects the top and bottom rows,
// SecondPlayer if white connects the left and right columns, Empty
// otherwise. Black is checked first.
func (b *Board) Winner() core.Tile {
	if b.rows == 0 || b.cols == 0 {
		return core.Empty
	}
	if b.connected(core.FirstPlayer) {
		return core.FirstPlayer
	}
	if b.connected(core.SecondPlayer) {
		return core.SecondPlayer
	}
	return core.Empty
}

// connected runs an iterative DFS from every start-edge cell of the color.
// The visit array is shared across starts so each cell expands at most once.
func (b *Board) connected(color core.Tile) bool {
	var starts int
	if color == core.FirstPlayer {
		starts = b.cols
	} else {
		starts = b.rows
	}

	state := make([]visitState, len(b.tiles))
	stack := make([]Coord, 0, len(b.tiles))

	for i := 0; i < starts; i++ {
		start := Coord{0, i}
		if color == core.SecondPlayer {
			start = Coord{i, 0}
		}
		idx := start.Row*b.cols + start.Col
		if b.tiles[idx] != color || state[idx] != unvisited {
			continue
		}

		state[idx] = visiting
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if b.atGoal(color, cur) {
				return true
			}
			state[cur.Row*b.cols+cur.Col] = visited

			for _, n := range b.adjacent(cur.Row, cur.Col) {
				ni := n.Row*b.cols + n.Col
				if b.tiles[ni] == color && state[ni] == unvisited {
					state[ni] = visiting
					stack = append(stack, n)
				}
			}
		}
	}
	return false
}

func (b *Board) atGoal(color core.Tile, c Coord) bool {
	if color == core.FirstPlayer {
		return c.Row == b.rows-1
	}
	return c.Col == b.cols-1
}
