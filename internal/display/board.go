// FILE: internal/display/board.go
package display

import (
	"strings"

	"hexref/internal/core"
)

// RenderBoard colors the stones of a rendered board. Only the grid rows are
// touched; the separator and legend pass through.
func RenderBoard(ascii string, on bool) string {
	if !on {
		return ascii
	}

	lines := strings.Split(ascii, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "Black:") {
			sb.WriteString(line)
			continue
		}
		for _, ch := range line {
			switch ch {
			case 'B':
				sb.WriteString(Red + "B" + Reset)
			case 'W':
				sb.WriteString(Blue + "W" + Reset)
			default:
				sb.WriteRune(ch)
			}
		}
	}
	return sb.String()
}

// ColorName returns the colored name of a player color
func ColorName(t core.Tile, on bool) string {
	switch t {
	case core.FirstPlayer:
		return Paint(on, Red, t.String())
	case core.SecondPlayer:
		return Paint(on, Blue, t.String())
	default:
		return t.String()
	}
}
