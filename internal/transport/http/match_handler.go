// FILE: internal/transport/http/match_handler.go
package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"hexref/internal/core"
	"hexref/internal/referee"
)

// GetMatch returns the match state. With wait=true and moves=N it long
// polls until the move count differs from N or the match ends.
func (h *HTTPHandler) GetMatch(c *fiber.Ctx) error {
	snap := h.src.Snapshot()

	if c.QueryBool("wait") {
		moves := c.QueryInt("moves", -1)
		if moves < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid moves parameter",
				Code:    core.ErrInvalidRequest,
				Details: "wait requires moves=<count>",
			})
		}

		if snap.Moves == moves && snap.State == core.StateOngoing {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			<-h.src.Wait(ctx, moves)
			snap = h.src.Snapshot()
		}
	}

	return c.JSON(buildMatchResponse(snap))
}

// GetBoard returns the authoritative board in both formats
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	snap := h.src.Snapshot()
	return c.JSON(core.BoardResponse{
		Board: snap.Board,
		ASCII: snap.ASCII,
	})
}

func buildMatchResponse(snap referee.Snapshot) core.MatchResponse {
	resp := core.MatchResponse{
		MatchID: snap.MatchID,
		Size:    snap.Size,
		Turn:    snap.Turn.Name(),
		State:   snap.State.String(),
		Moves:   snap.Moves,
		Players: core.PlayersInfo{
			Black: snap.Black,
			White: snap.White,
		},
		Violation:     snap.Violation,
		ViolationCode: snap.ViolationCode,
	}
	if snap.LastMove != "" {
		resp.LastMove = &core.MoveInfo{
			Move:        snap.LastMove,
			PlayerColor: snap.LastColor.Name(),
		}
	}
	return resp
}
