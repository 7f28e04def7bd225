package players

import (
	"encoding/json"
	"sync"

	"github.com/minaorangina/doomlings/protocol"
)

// TestPlayer records every message it is sent.
type TestPlayer struct {
	id       string
	name     string
	mu       sync.Mutex
	received []protocol.OutboundMessage
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{id: id, name: name}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Name() string {
	return tp.name
}

// Send records a copy of msg so later game changes do not show through.
func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	var cp protocol.OutboundMessage
	if err := json.Unmarshal(data, &cp); err != nil {
		return err
	}
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.received = append(tp.received, cp)
	return nil
}

// Received returns a copy of every message sent so far.
func (tp *TestPlayer) Received() []protocol.OutboundMessage {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return append([]protocol.OutboundMessage{}, tp.received...)
}

// Last returns the most recent message.
func (tp *TestPlayer) Last() (protocol.OutboundMessage, bool) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if len(tp.received) == 0 {
		return protocol.OutboundMessage{}, false
	}
	return tp.received[len(tp.received)-1], true
}

func APlayer(id, name string) Player {
	return NewTestPlayer(id, name)
}

func SomePlayers() Players {
	player1 := NewTestPlayer(NewID(), "Harry")
	player2 := NewTestPlayer(NewID(), "Sally")
	return NewPlayers(player1, player2)
}
