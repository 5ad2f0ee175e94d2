// FILE: internal/core/player.go
package core

import (
	"github.com/google/uuid"
)

// Player describes the bot process seated at a color
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Tile   `json:"-"`
}

// NewPlayer creates a Player with a fresh ID
func NewPlayer(name string, color Tile) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}
}
