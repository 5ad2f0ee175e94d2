// FILE: internal/referee/snapshot.go
package referee

import (
	"hexref/internal/core"
)

// Snapshot is a read-only view of the match published after every
// transition
type Snapshot struct {
	MatchID       string
	Size          int
	Turn          core.Tile
	State         core.State
	Moves         int
	LastMove      string
	LastColor     core.Tile
	Black         string
	White         string
	Board         string
	ASCII         string
	Violation     string
	ViolationCode string
}

// Snapshot returns the latest published view
func (r *Referee) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// publish rebuilds the snapshot and wakes spectators
func (r *Referee) publish() {
	r.mu.Lock()
	g := r.game
	snap := Snapshot{
		MatchID: r.id,
		Size:    g.Size(),
		Turn:    g.NextTurn(),
		State:   g.State(),
		Moves:   g.Moves(),
		Black:   g.Player(core.FirstPlayer).Name,
		White:   g.Player(core.SecondPlayer).Name,
		Board:   g.Board().Compact(),
		ASCII:   g.Board().ToASCII(),
	}
	if last := g.LastResult(); last != nil && !last.Forfeit {
		snap.LastMove = last.Move.String()
		snap.LastColor = last.Player
	}
	if r.violation != nil {
		snap.Violation = r.violation.Error()
		snap.ViolationCode = r.violation.Kind.Code()
	}
	r.snapshot = snap
	r.mu.Unlock()

	if snap.State != core.StateOngoing {
		r.waiter.NotifyAll()
	} else {
		r.waiter.Notify(snap.Moves)
	}
}
