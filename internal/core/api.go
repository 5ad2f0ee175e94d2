// FILE: internal/core/api.go
package core

// Response types

type MatchResponse struct {
	MatchID       string      `json:"matchId"`
	Size          int         `json:"size"`
	Turn          string      `json:"turn"`  // "black" or "white"
	State         string      `json:"state"` // "ongoing", "Black wins", "White wins"
	Moves         int         `json:"moves"`
	LastMove      *MoveInfo   `json:"lastMove,omitempty"`
	Players       PlayersInfo `json:"players"`
	Violation     string      `json:"violation,omitempty"`
	ViolationCode string      `json:"violationCode,omitempty"`
}

type PlayersInfo struct {
	Black string `json:"black"`
	White string `json:"white"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"`
}

type BoardResponse struct {
	Board string `json:"board"` // compact serialization
	ASCII string `json:"ascii"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
