package players

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/doomlings/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBuffer = 16
)

var ErrSlowConsumer = errors.New("player is not reading messages")

// WSPlayer is a player connected over a websocket
type WSPlayer struct {
	id       string
	name     string
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	once     sync.Once
	receiver Receiver
	logger   *log.Logger
}

// NewWSPlayer constructs a player. Nothing is read or written until Start.
func NewWSPlayer(id, name string, ws *websocket.Conn, r Receiver, logger *log.Logger) *WSPlayer {
	if logger == nil {
		logger = log.Default()
	}
	p := &WSPlayer{
		id:       id,
		name:     name,
		conn:     ws,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		receiver: r,
		logger:   logger,
	}
	return p
}

// Start runs the read and write pumps. The receiver must already hold the
// player.
func (p *WSPlayer) Start() {
	go p.writePump()
	go p.readPump()
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues msg for the write pump. It never blocks the caller.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case <-p.done:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case p.send <- data:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (p *WSPlayer) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// readPump forwards the player's commands to the receiver. The player id
// always comes from the connection, never from the payload.
func (p *WSPlayer) readPump() {
	defer func() {
		p.close()
		p.receiver.RemovePlayer(p)
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Printf("player %s: %v", p.id, err)
			}
			return
		}
		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.logger.Printf("player %s sent a bad message: %v", p.id, err)
			continue
		}
		msg.PlayerID = p.id
		p.receiver.Receive(msg)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.close()
	}()

	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := p.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msg)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.done:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
