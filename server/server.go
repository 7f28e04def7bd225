package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/doomlings/engine"
	"github.com/minaorangina/doomlings/game"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/store"
)

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	Status  string   `json:"status"`
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

// Config is what the server needs beyond its store.
type Config struct {
	Game           game.Config
	AllowedOrigins []string
	Logger         *log.Logger
	AccessLog      io.Writer
}

// GameServer is a game server
type GameServer struct {
	store    store.GameStore
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	http.Server
}

func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 0, 6)
	for i := 0; i < 6; i++ {
		code = append(code, letters[rand.Intn(len(letters))])
	}
	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(s store.GameStore, config Config) *GameServer {
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "[server] ", log.LstdFlags)
	}
	if config.AccessLog == nil {
		config.AccessLog = os.Stdout
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}

	g := &GameServer{store: s, config: config, logger: config.Logger}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(handlers.RecoveryHandler(handlers.RecoveryLogger(config.Logger)))
	router.Use(handlers.CORS(
		handlers.AllowedOrigins(config.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	))

	router.Post("/new", g.HandleNewGame)
	router.Post("/join", g.HandleJoinGame)
	router.Get("/game/{gameID}", g.HandleFindGame)
	router.Get("/game/{gameID}/players/{playerID}", g.HandlePlayerView)
	router.Get("/ws", g.HandleWS)

	g.Handler = handlers.CombinedLoggingHandler(config.AccessLog, router)

	return g
}

// checkOrigin matches the Origin header against the allowed origins.
// Non-browser clients send no Origin and are admitted.
func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}
	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	gameID := NewGameID()
	playerID := players.NewID()
	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:    gameID,
		CreatorID: playerID,
		GameOpts:  game.GameOpts{Config: g.config.Game},
		Logger:    g.logger,
	})
	if err != nil {
		g.internalError(w, err)
		return
	}

	if err := g.store.AddInactiveGame(ge); err != nil {
		ge.Stop()
		g.internalError(w, err)
		return
	}

	if err := g.store.AddPendingPlayer(gameID, playerID, data.Name); err != nil {
		g.internalError(w, err)
		return
	}

	g.writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{data.Name},
	})
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	g.writeJSON(w, http.StatusOK, GetGameRes{
		Status:  ge.PlayState().String(),
		GameID:  gameID,
		Players: ge.PlayerNames(),
	})
}

// HandlePlayerView returns the game as one seated player sees it.
func (g *GameServer) HandlePlayerView(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	playerID := chi.URLParam(r, "playerID")

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	view, err := ge.View(playerID)
	if errors.Is(err, game.ErrPlayerNotFound) {
		writeText(w, http.StatusNotFound, "unknown player ID")
		return
	}
	if err != nil {
		g.internalError(w, err)
		return
	}

	g.writeJSON(w, http.StatusOK, view)
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.GameID == "" {
		writeText(w, http.StatusBadRequest, "Missing game ID")
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	ge := g.store.FindInactiveGame(data.GameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(data.GameID))
		return
	}

	playerID := players.NewID()
	if err := g.store.AddPendingPlayer(data.GameID, playerID, data.Name); err != nil {
		g.internalError(w, err)
		return
	}

	g.writeJSON(w, http.StatusOK, PendingGameRes{
		PlayerID: playerID,
		GameID:   data.GameID,
		Name:     data.Name,
		Players:  append(ge.PlayerNames(), data.Name),
	})
}

func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(gameID))
		return
	}

	pendingPlayer := g.store.FindPendingPlayer(gameID, playerID)
	if pendingPlayer == nil {
		writeText(w, http.StatusBadRequest, "unknown player ID")
		return
	}

	rawConn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Println(err)
		return
	}

	player := players.NewWSPlayer(playerID, pendingPlayer.Name, rawConn, ge, g.logger)
	if err := g.store.AddPlayerToGame(gameID, player); err != nil {
		g.logger.Printf("could not add player to game: %v", err)
		rawConn.Close()
		return
	}
	player.Start()
}

func (g *GameServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		g.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func (g *GameServer) internalError(w http.ResponseWriter, err error) {
	g.logger.Println(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
}

func (g *GameServer) writeParseError(err error, w http.ResponseWriter) {
	g.logger.Println(err.Error())
	if err == io.EOF {
		writeText(w, http.StatusBadRequest, "Missing body")
		return
	}
	writeText(w, http.StatusBadRequest, "Malformed body")
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}
