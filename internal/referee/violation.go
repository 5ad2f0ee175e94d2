// FILE: internal/referee/violation.go
package referee

import (
	"fmt"

	"hexref/internal/core"
)

// Kind classifies how a bot broke the protocol
type Kind int

const (
	KindMalformed Kind = iota
	KindIllegal
	KindTimeout
	KindCrashed
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindIllegal:
		return "illegal"
	case KindTimeout:
		return "timeout"
	case KindCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Code maps the kind to an API error code
func (k Kind) Code() string {
	switch k {
	case KindMalformed:
		return core.ErrMalformedMove
	case KindIllegal:
		return core.ErrIllegalMove
	case KindTimeout:
		return core.ErrBotTimeout
	default:
		return core.ErrBotCrashed
	}
}

// Violation is returned when a bot forfeits the match. The opponent of
// Color is the winner.
type Violation struct {
	Color core.Tile
	Bot   string
	Kind  Kind
	Line  string // raw reply, empty for timeout and crash
	Err   error
}

func (v *Violation) Error() string {
	if v.Line != "" {
		return fmt.Sprintf("%s (%s) forfeits, %s move %q: %v", v.Color, v.Bot, v.Kind, v.Line, v.Err)
	}
	return fmt.Sprintf("%s (%s) forfeits, %s: %v", v.Color, v.Bot, v.Kind, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// Winner is the color awarded the match
func (v *Violation) Winner() core.Tile {
	return core.Opponent(v.Color)
}
