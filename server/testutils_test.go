package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/doomlings/engine"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/store"
)

var quiet = log.New(io.Discard, "", 0)

func testConfig() Config {
	return Config{Logger: quiet, AccessLog: io.Discard}
}

func NewBasicStore() *store.InMemoryGameStore {
	return store.NewInMemoryGameStore()
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	if data == nil {
		data = []byte{}
	}
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func newTestGame(t *testing.T, opts engine.GameEngineOpts) *engine.GameEngine {
	t.Helper()

	if opts.Logger == nil {
		opts.Logger = quiet
	}
	game, err := engine.NewGameEngine(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(game.Stop)
	return game
}

func newServerWithGame(game *engine.GameEngine) *GameServer {
	s := NewBasicStore()
	s.AddInactiveGame(game)
	return NewServer(s, testConfig())
}

// newServerWithInactiveGame returns a GameServer with an inactive game
// and some hard-coded values
func newServerWithInactiveGame(t *testing.T, ps players.Players) (*GameServer, *store.InMemoryGameStore, string) {
	t.Helper()
	gameID := "some-pending-id"
	game := newTestGame(t, engine.GameEngineOpts{
		GameID:    gameID,
		CreatorID: "hersha-1",
		Players:   ps,
	})

	s := NewBasicStore()
	utils.AssertNoError(t, s.AddInactiveGame(game))
	utils.AssertNoError(t, s.AddPendingPlayer(gameID, "hersha-1", "Hersha"))
	utils.AssertNoError(t, s.AddPendingPlayer(gameID, "pending-player-id", "Penelope"))

	return NewServer(s, testConfig()), s, gameID
}

// newTestServer starts and returns a new server.
// The caller must call close to shut it down.
func newTestServer(s store.GameStore) *httptest.Server {
	return httptest.NewServer(NewServer(s, testConfig()))
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func assertPendingGameResponse(t *testing.T, body *bytes.Buffer, want string) PendingGameRes {
	t.Helper()
	bodyBytes, err := io.ReadAll(body)
	utils.AssertNoError(t, err)

	var got PendingGameRes
	err = json.Unmarshal(bodyBytes, &got)
	if err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
	if got.Name != want {
		t.Errorf("got %s, want %s", got.Name, want)
	}
	if len(got.GameID) == 0 {
		t.Error("expected a game id")
	}
	if len(got.PlayerID) == 0 {
		t.Error("expected a player id")
	}
	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)

	if err != nil {
		body := []byte{}
		status := 0
		if resp != nil {
			body, _ = io.ReadAll(resp.Body)
			status = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, status, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}
