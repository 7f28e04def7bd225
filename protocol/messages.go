package protocol

import (
	"github.com/minaorangina/doomlings/game"
)

type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID  string          `json:"playerID"`
	Command   Cmd             `json:"command"`
	CardIndex int             `json:"cardIndex"`
	Decision  []int           `json:"decision,omitempty"`
	Selection game.Selection  `json:"selection"`
	Pick      game.RevealPick `json:"pick"`
}

// OutboundMessage is a message from GameEngine to Player
type OutboundMessage struct {
	PlayerID string           `json:"playerID"`
	Command  Cmd              `json:"command"`
	Message  string           `json:"message,omitempty"`
	Joiner   *Player          `json:"joiner,omitempty"`
	State    *game.PlayerView `json:"state,omitempty"`
	Result   *game.Result     `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}
