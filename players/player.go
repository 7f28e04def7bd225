package players

import (
	"github.com/minaorangina/doomlings/protocol"
	uuid "github.com/satori/go.uuid"
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a seat's connection to the real world
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
}

// Receiver accepts a player's commands and departure. GameEngine is one.
type Receiver interface {
	Receive(msg protocol.InboundMessage)
	RemovePlayer(p Player)
}

// Players represents all players in the game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players. A player with the same id
// is replaced, so a reconnecting player gets the new connection.
func AddPlayer(ps Players, p Player) Players {
	for i, existing := range ps {
		if existing.ID() == p.ID() {
			out := append(Players{}, ps...)
			out[i] = p
			return out
		}
	}
	return Players(append(ps, p))
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// Remove drops the player with id.
func (ps Players) Remove(id string) Players {
	out := Players{}
	for _, p := range ps {
		if p.ID() != id {
			out = append(out, p)
		}
	}
	return out
}

// Names lists the players' names in seat order.
func (ps Players) Names() []string {
	names := []string{}
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}
