package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/doomlings/engine"
	"github.com/minaorangina/doomlings/game"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerPOSTNewGame(t *testing.T) {
	t.Run("succeeds and returns expected data", func(t *testing.T) {
		data := mustMakeJson(t, NewGameReq{"Elton"})

		response := httptest.NewRecorder()
		request := newCreateGameRequest(data)

		s := NewBasicStore()
		server := NewServer(s, testConfig())
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusCreated)
		got := assertPendingGameResponse(t, response.Body, "Elton")
		utils.AssertTrue(t, got.Admin)

		ge := s.FindInactiveGame(got.GameID)
		require.NotNil(t, ge)
		t.Cleanup(ge.Stop)
		utils.AssertEqual(t, ge.CreatorID(), got.PlayerID)
		utils.AssertNotNil(t, s.FindPendingPlayer(got.GameID, got.PlayerID))
	})

	t.Run("returns 400 if the body is missing", func(t *testing.T) {
		response := httptest.NewRecorder()
		request := newCreateGameRequest([]byte{})

		server := NewServer(NewBasicStore(), testConfig())
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("returns 400 if the player's name is missing", func(t *testing.T) {
		response := httptest.NewRecorder()
		request := newCreateGameRequest(mustMakeJson(t, NewGameReq{}))

		server := NewServer(NewBasicStore(), testConfig())
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("Does not match on GET /new", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/new", nil)

		server := NewServer(NewBasicStore(), testConfig())
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusMethodNotAllowed)
	})
}

func TestJoinGame(t *testing.T) {
	t.Run("POST /join returns 200 for existing game", func(t *testing.T) {
		server, s, pendingID := newServerWithInactiveGame(t, players.SomePlayers())

		data := mustMakeJson(t, JoinGameReq{pendingID, "Heloise"})

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newJoinGameRequest(data))

		assertStatus(t, response.Code, http.StatusOK)
		got := assertPendingGameResponse(t, response.Body, "Heloise")
		utils.AssertEqual(t, got.Admin, false)
		assert.Equal(t, []string{"Harry", "Sally", "Heloise"}, got.Players)
		utils.AssertNotNil(t, s.FindPendingPlayer(pendingID, got.PlayerID))
	})

	t.Run("POST /join returns 400 if request data missing", func(t *testing.T) {
		response := httptest.NewRecorder()
		server := newServerWithGame(newTestGame(t, engine.GameEngineOpts{GameID: "some-game-id", Players: players.SomePlayers()}))

		server.ServeHTTP(response, newJoinGameRequest(nil))

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("POST /join returns 400 without a name", func(t *testing.T) {
		server, _, pendingID := newServerWithInactiveGame(t, players.SomePlayers())

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newJoinGameRequest(mustMakeJson(t, JoinGameReq{GameID: pendingID})))

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("POST /join returns 400 for an unknown game id", func(t *testing.T) {
		server, _, _ := newServerWithInactiveGame(t, players.SomePlayers())

		data := mustMakeJson(t, JoinGameReq{"some-game-id", "Heloise"})

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newJoinGameRequest(data))

		assertStatus(t, response.Code, http.StatusBadRequest)
	})
}

func TestServerGETGame(t *testing.T) {
	t.Run("returns an existing pending game", func(t *testing.T) {
		server, _, pendingID := newServerWithInactiveGame(t, players.SomePlayers())

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newGetGameRequest(pendingID))

		assertStatus(t, response.Code, http.StatusOK)
		utils.AssertEqual(t, response.Header().Get("Content-Type"), "application/json")

		var got GetGameRes
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&got))
		utils.AssertEqual(t, got.GameID, pendingID)
		utils.AssertEqual(t, got.Status, "idle")
		assert.Equal(t, []string{"Harry", "Sally"}, got.Players)
	})

	t.Run("returns a 404 if game doesn't exist", func(t *testing.T) {
		server := newServerWithGame(newTestGame(t, engine.GameEngineOpts{GameID: "12u34"}))

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newGetGameRequest("bad-game-id"))

		utils.AssertEqual(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns a seated player's view", func(t *testing.T) {
		harry := players.APlayer("harry", "Harry")
		server := newServerWithGame(newTestGame(t, engine.GameEngineOpts{GameID: "g1", Players: players.NewPlayers(harry)}))

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/game/g1/players/harry", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)
		var got game.PlayerView
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&got))
		utils.AssertEqual(t, got.State, game.StateLobby)
		utils.AssertEqual(t, len(got.Players), 1)

		response = httptest.NewRecorder()
		request, _ = http.NewRequest(http.MethodGet, "/game/g1/players/nobody", nil)
		server.ServeHTTP(response, request)
		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("allows cross-origin requests", func(t *testing.T) {
		server, _, pendingID := newServerWithInactiveGame(t, nil)

		response := httptest.NewRecorder()
		request := newGetGameRequest(pendingID)
		request.Header.Set("Origin", "http://example.com")
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)
		utils.AssertEqual(t, response.Header().Get("Access-Control-Allow-Origin"), "*")
	})
}

func TestWS(t *testing.T) {
	t.Run("Handles missing game details", func(t *testing.T) {
		server := newTestServer(NewBasicStore())
		defer server.Close()

		_, resp, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws", nil)
		utils.AssertErrored(t, err)
		utils.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
	})

	t.Run("Rejects if game doesn't exist", func(t *testing.T) {
		_, s, _ := newServerWithInactiveGame(t, nil)
		server := newTestServer(s)
		defer server.Close()

		_, resp, err := websocket.DefaultDialer.Dial(makeWSUrl(server.URL, "unknowngamelol", "hersha-1"), nil)

		utils.AssertErrored(t, err)
		utils.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
	})

	t.Run("Rejects players who never joined", func(t *testing.T) {
		_, s, gameID := newServerWithInactiveGame(t, nil)
		server := newTestServer(s)
		defer server.Close()

		_, resp, err := websocket.DefaultDialer.Dial(makeWSUrl(server.URL, gameID, "unknownhooman"), nil)

		utils.AssertErrored(t, err)
		body, _ := io.ReadAll(resp.Body)
		utils.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
		utils.AssertEqual(t, string(body), "unknown player ID")
	})

	t.Run("Checks the origin against the allowed origins", func(t *testing.T) {
		_, s, gameID := newServerWithInactiveGame(t, nil)
		config := testConfig()
		config.AllowedOrigins = []string{"http://good.example"}
		server := httptest.NewServer(NewServer(s, config))
		defer server.Close()

		t.Log("Given a browser on an origin that is not allowed")
		header := http.Header{"Origin": []string{"http://evil.example"}}
		_, resp, err := websocket.DefaultDialer.Dial(makeWSUrl(server.URL, gameID, "hersha-1"), header)

		t.Log("Then the upgrade is refused")
		utils.AssertErrored(t, err)
		require.NotNil(t, resp)
		utils.AssertEqual(t, resp.StatusCode, http.StatusForbidden)
		assert.Empty(t, s.FindGame(gameID).PlayerNames())

		t.Log("When the same player connects from an allowed origin")
		header = http.Header{"Origin": []string{"http://good.example"}}
		ws, _, err := websocket.DefaultDialer.Dial(makeWSUrl(server.URL, gameID, "hersha-1"), header)
		require.NoError(t, err)
		defer ws.Close()

		t.Log("Then they join")
		msg := readUntil(t, ws, protocol.NewJoiner)
		require.NotNil(t, msg.Joiner)
		utils.AssertEqual(t, msg.Joiner.Name, "Hersha")
	})

	t.Run("Connects, joins and starts the game", func(t *testing.T) {
		_, s, gameID := newServerWithInactiveGame(t, players.NewPlayers(players.APlayer("ron", "Ron")))
		server := newTestServer(s)
		defer server.Close()

		t.Log("Given the creator connects")
		ws := mustDialWS(t, makeWSUrl(server.URL, gameID, "hersha-1"))

		t.Log("Then they are announced")
		msg := readUntil(t, ws, protocol.NewJoiner)
		require.NotNil(t, msg.Joiner)
		utils.AssertEqual(t, msg.Joiner.Name, "Hersha")

		t.Log("When they start the game")
		err := ws.WriteJSON(protocol.InboundMessage{Command: protocol.Start})
		utils.AssertNoError(t, err)

		t.Log("Then they receive their opening hand")
		msg = readUntil(t, ws, protocol.State)
		require.NotNil(t, msg.State)
		utils.AssertEqual(t, msg.State.State, game.StatePlaying)
		utils.AssertEqual(t, len(msg.State.MyHand), 5)
		utils.AssertEqual(t, s.FindGame(gameID).PlayState(), engine.InProgress)
	})
}

func readUntil(t *testing.T, ws *websocket.Conn, cmd protocol.Cmd) protocol.OutboundMessage {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg protocol.OutboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", cmd, err)
		}
		if msg.Command == cmd {
			return msg
		}
	}
}
