package engine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/minaorangina/doomlings/game"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/protocol"
)

// PlayState represents the state of the current game
// idle -> not started
// inProgress -> game in progress
// finished -> scored
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Finished
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Finished:
		return "finished"
	}
	return ""
}

var (
	ErrNotCreator     = errors.New("only the game creator can start the game")
	ErrUnknownCommand = errors.New("unknown command")
	ErrEngineStopped  = errors.New("game engine has stopped")
)

// GameEngineOpts configures a GameEngine. Game wins over GameOpts when set.
type GameEngineOpts struct {
	GameID       string
	CreatorID    string
	Game         *game.Game
	GameOpts     game.GameOpts
	Players      players.Players
	RegisterCh   chan players.Player
	UnregisterCh chan players.Player
	InboundCh    chan protocol.InboundMessage
	Logger       *log.Logger
}

// GameEngine owns one game. Every command runs on the Listen goroutine and
// every player is sent their own view afterwards.
type GameEngine struct {
	id        string
	creatorID string

	mu      sync.RWMutex
	game    *game.Game
	players players.Players

	registerCh   chan players.Player
	unregisterCh chan players.Player
	inboundCh    chan protocol.InboundMessage
	timeoutCh    chan string
	stopCh       chan struct{}
	stopOnce     sync.Once

	timer   *time.Timer
	timerID string
	logger  *log.Logger
}

// NewGameEngine constructs a GameEngine and starts listening.
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[engine] ", log.LstdFlags)
	}

	g := opts.Game
	if g == nil {
		gameOpts := opts.GameOpts
		if gameOpts.ID == "" {
			gameOpts.ID = opts.GameID
		}
		if gameOpts.Logger == nil {
			gameOpts.Logger = logger
		}
		g = game.NewGame(gameOpts)
	}
	id := opts.GameID
	if id == "" {
		id = g.ID
	}

	for _, p := range opts.Players {
		if g.Player(p.ID()) != nil {
			continue
		}
		if _, err := g.AddPlayer(p.ID(), p.Name(), p.ID() == opts.CreatorID); err != nil {
			return nil, err
		}
	}

	registerCh := opts.RegisterCh
	if registerCh == nil {
		registerCh = make(chan players.Player)
	}
	unregisterCh := opts.UnregisterCh
	if unregisterCh == nil {
		unregisterCh = make(chan players.Player)
	}
	inboundCh := opts.InboundCh
	if inboundCh == nil {
		inboundCh = make(chan protocol.InboundMessage)
	}

	ge := &GameEngine{
		id:           id,
		creatorID:    opts.CreatorID,
		game:         g,
		players:      players.NewPlayers(opts.Players...),
		registerCh:   registerCh,
		unregisterCh: unregisterCh,
		inboundCh:    inboundCh,
		timeoutCh:    make(chan string),
		stopCh:       make(chan struct{}),
		logger:       logger,
	}
	ge.schedule()

	go ge.Listen()

	return ge, nil
}

func (ge *GameEngine) ID() string {
	return ge.id
}

func (ge *GameEngine) CreatorID() string {
	return ge.creatorID
}

// PlayState reports whether the game has started or finished.
func (ge *GameEngine) PlayState() PlayState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	switch ge.game.State {
	case game.StatePlaying:
		return InProgress
	case game.StateFinished:
		return Finished
	}
	return Idle
}

// Players returns the connected players.
func (ge *GameEngine) Players() players.Players {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return append(players.Players{}, ge.players...)
}

// PlayerNames lists every seated player, connected or not.
func (ge *GameEngine) PlayerNames() []string {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	names := []string{}
	for _, p := range ge.game.Players {
		names = append(names, p.Name)
	}
	return names
}

// View returns the game as playerID may see it.
func (ge *GameEngine) View(playerID string) (game.PlayerView, error) {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.StateForPlayer(playerID)
}

// FullState returns the unredacted game.
func (ge *GameEngine) FullState() game.View {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.FullState()
}

// Snapshot serializes the game.
func (ge *GameEngine) Snapshot() ([]byte, error) {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.Serialize()
}

// AddPlayer seats p, or reconnects a seated player.
func (ge *GameEngine) AddPlayer(p players.Player) error {
	select {
	case ge.registerCh <- p:
		return nil
	case <-ge.stopCh:
		return ErrEngineStopped
	}
}

// RemovePlayer drops p's connection.
func (ge *GameEngine) RemovePlayer(p players.Player) {
	select {
	case ge.unregisterCh <- p:
	case <-ge.stopCh:
	}
}

// Receive queues a player's command.
func (ge *GameEngine) Receive(msg protocol.InboundMessage) {
	select {
	case ge.inboundCh <- msg:
	case <-ge.stopCh:
	}
}

// Stop ends the Listen loop.
func (ge *GameEngine) Stop() {
	ge.stopOnce.Do(func() { close(ge.stopCh) })
}

// Listen handles joiners, leavers, commands and reveal timeouts one at a time.
func (ge *GameEngine) Listen() {
	for {
		select {
		case <-ge.stopCh:
			if ge.timer != nil {
				ge.timer.Stop()
			}
			return

		case joiner := <-ge.registerCh:
			ge.register(joiner)

		case leaver := <-ge.unregisterCh:
			ge.unregister(leaver)

		case msg := <-ge.inboundCh:
			ge.handle(msg)

		case id := <-ge.timeoutCh:
			ge.timeout(id)
		}
	}
}

func (ge *GameEngine) register(joiner players.Player) {
	ge.mu.Lock()
	if seat := ge.game.Player(joiner.ID()); seat != nil {
		seat.Connected = true
	} else if _, err := ge.game.AddPlayer(joiner.ID(), joiner.Name(), joiner.ID() == ge.creatorID); err != nil {
		ge.mu.Unlock()
		ge.sendError(joiner, err)
		return
	}
	ge.players = players.AddPlayer(ge.players, joiner)
	ge.mu.Unlock()

	info := &protocol.Player{PlayerID: joiner.ID(), Name: joiner.Name()}
	ge.broadcast(protocol.NewJoiner, fmt.Sprintf("%s has joined the game!", joiner.Name()), info, "", nil)
}

func (ge *GameEngine) unregister(leaver players.Player) {
	ge.mu.Lock()
	current, ok := ge.players.Find(leaver.ID())
	if !ok || current != leaver {
		ge.mu.Unlock()
		return
	}
	ge.players = ge.players.Remove(leaver.ID())
	if err := ge.game.RemovePlayer(leaver.ID()); err != nil {
		ge.logger.Printf("game %s: removing %s: %v", ge.id, leaver.ID(), err)
	}
	ge.mu.Unlock()

	ge.broadcast(protocol.Leave, fmt.Sprintf("%s has left the game", leaver.Name()), nil, "", nil)
	ge.schedule()
}

func (ge *GameEngine) handle(msg protocol.InboundMessage) {
	sender, _ := ge.players.Find(msg.PlayerID)

	if msg.Command == protocol.Start && msg.PlayerID != ge.creatorID {
		ge.sendError(sender, ErrNotCreator)
		return
	}

	ge.mu.Lock()
	res, err := Apply(ge.game, msg)
	ge.mu.Unlock()

	if err != nil {
		ge.sendError(sender, err)
		return
	}
	if !msg.Command.Mutates() {
		ge.reply(sender, msg.Command, &res)
		return
	}

	ge.publish(msg.PlayerID, &res)
	ge.schedule()
}

func (ge *GameEngine) timeout(id string) {
	if id == "" || id != ge.game.RevealID() {
		return
	}
	ge.mu.Lock()
	res, err := ge.game.ForceRevealTimeout()
	ge.mu.Unlock()
	if err != nil {
		ge.logger.Printf("game %s: reveal %s: %v", ge.id, id, err)
		return
	}

	ge.publish("", &res)
	ge.schedule()
}

// schedule arms the reveal timer for a newly opened reveal and disarms it
// once the reveal is gone.
func (ge *GameEngine) schedule() {
	id := ge.game.RevealID()
	if id == ge.timerID {
		return
	}
	if ge.timer != nil {
		ge.timer.Stop()
		ge.timer = nil
	}
	ge.timerID = id
	if id == "" {
		return
	}

	wait := ge.game.Config.RevealTimeout
	if deadline, ok := ge.game.RevealDeadline(); ok {
		if left := time.Until(deadline); left < wait {
			wait = left
		}
	}
	ge.timer = time.AfterFunc(wait, func() {
		select {
		case ge.timeoutCh <- id:
		case <-ge.stopCh:
		}
	})
}

// publish sends every player their view after a change. Only the player
// who caused it gets the Result.
func (ge *GameEngine) publish(senderID string, res *game.Result) {
	cmd := protocol.State
	if ge.game.State == game.StateFinished {
		cmd = protocol.GameOver
	}
	ge.broadcast(cmd, "", nil, senderID, res)
}

func (ge *GameEngine) broadcast(cmd protocol.Cmd, text string, joiner *protocol.Player, senderID string, res *game.Result) {
	for _, p := range ge.players {
		msg := protocol.OutboundMessage{
			PlayerID: p.ID(),
			Command:  cmd,
			Message:  text,
			Joiner:   joiner,
		}
		if v, err := ge.game.StateForPlayer(p.ID()); err == nil {
			msg.State = &v
		}
		if p.ID() == senderID {
			msg.Result = res
		}
		if err := p.Send(msg); err != nil {
			ge.logger.Printf("game %s: sending to %s: %v", ge.id, p.ID(), err)
		}
	}
}

func (ge *GameEngine) reply(p players.Player, cmd protocol.Cmd, res *game.Result) {
	if p == nil {
		return
	}
	msg := protocol.OutboundMessage{PlayerID: p.ID(), Command: cmd, Result: res}
	if v, err := ge.game.StateForPlayer(p.ID()); err == nil {
		msg.State = &v
	}
	if err := p.Send(msg); err != nil {
		ge.logger.Printf("game %s: sending to %s: %v", ge.id, p.ID(), err)
	}
}

func (ge *GameEngine) sendError(p players.Player, err error) {
	if p == nil {
		ge.logger.Printf("game %s: %v", ge.id, err)
		return
	}
	msg := protocol.OutboundMessage{PlayerID: p.ID(), Command: protocol.Error, Error: err.Error()}
	if v, verr := ge.game.StateForPlayer(p.ID()); verr == nil {
		msg.State = &v
	}
	if err := p.Send(msg); err != nil {
		ge.logger.Printf("game %s: sending to %s: %v", ge.id, p.ID(), err)
	}
}
