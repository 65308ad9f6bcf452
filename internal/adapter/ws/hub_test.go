package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/memory"
	jwttokens "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/token/jwt"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/world/mock"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/auth"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/lobby"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/status"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, opts Options) string {
	t.Helper()
	store := memory.NewStore()
	registry := memory.NewSessionRegistry(store)
	tokens, err := jwttokens.NewSeatTokens(jwttokens.Config{Secret: []byte("hub-test-secret-0123456789abcdef")})
	require.NoError(t, err)

	opts.Registry = registry
	hub := NewHub(opts)
	n := 0
	hub.Bind(Handlers{
		Lobby: lobby.UseCase{
			Registry:    registry,
			Maps:        mock.Generator{},
			Tokens:      tokens,
			Broadcaster: hub,
			NewID: func() string {
				n++
				return fmt.Sprintf("id-%d", n)
			},
			Seed: func() int64 { return 3 },
		},
		Actions: action.UseCase{Registry: registry, Broadcaster: hub},
		Auth:    auth.VerifyUseCase{Tokens: tokens, Registry: registry},
		Status:  status.UseCase{Registry: registry},
	})

	server := httptest.NewServer(NewRouter(hub))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func send(t *testing.T, c *websocket.Conn, typ string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, c.WriteJSON(envelope{Type: typ, Payload: raw}))
}

// waitFor reads until a message of typ satisfies match.
func waitFor(t *testing.T, c *websocket.Conn, typ string, match func(json.RawMessage) bool) json.RawMessage {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var env envelope
		require.NoError(t, c.ReadJSON(&env))
		if env.Type == typ && (match == nil || match(env.Payload)) {
			return env.Payload
		}
	}
}

func phaseIs(phase game.Phase) func(json.RawMessage) bool {
	return func(raw json.RawMessage) bool {
		var s struct {
			Phase game.Phase `json:"phase"`
		}
		return json.Unmarshal(raw, &s) == nil && s.Phase == phase
	}
}

func ackGrant(t *testing.T, c *websocket.Conn, request string) lobby.SeatGrant {
	t.Helper()
	raw := waitFor(t, c, string(ports.EventAck), func(raw json.RawMessage) bool {
		return strings.Contains(string(raw), `"request":"`+request+`"`)
	})
	var ack struct {
		Data lobby.SeatGrant `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &ack))
	return ack.Data
}

func errorCodeOf(t *testing.T, c *websocket.Conn) string {
	t.Helper()
	var p errorPayload
	require.NoError(t, json.Unmarshal(waitFor(t, c, string(ports.EventError), nil), &p))
	return p.Code
}

func TestHub_LobbyFlowBroadcastsState(t *testing.T) {
	url := newTestServer(t, Options{})
	a, b := dial(t, url), dial(t, url)

	send(t, a, TypeCreateSession, createPayload{Name: "table", HostName: "Alice"})
	host := ackGrant(t, a, TypeCreateSession)
	require.NotEmpty(t, host.Token)
	waitFor(t, a, string(ports.EventState), phaseIs(game.PhaseLobby))

	send(t, b, TypeJoinSession, joinPayload{SessionID: host.SessionID, Name: "Bob"})
	guest := ackGrant(t, b, TypeJoinSession)
	assert.Equal(t, host.SessionID, guest.SessionID)

	send(t, a, TypeSetReady, nil)
	send(t, b, TypeSetReady, nil)
	waitFor(t, a, string(ports.EventAck), nil)
	waitFor(t, b, string(ports.EventAck), nil)
	send(t, a, TypeStartGame, nil)

	waitFor(t, a, string(ports.EventState), phaseIs(game.PhaseFactionSelect))
	waitFor(t, b, string(ports.EventState), phaseIs(game.PhaseFactionSelect))

	send(t, a, string(action.KindChooseFaction), action.ChooseFaction{Faction: game.FactionTerrans})
	raw := waitFor(t, b, string(ports.EventState), func(raw json.RawMessage) bool {
		return strings.Contains(string(raw), `"faction":"terrans"`)
	})
	assert.NotEmpty(t, raw)
}

func TestHub_RejoinReattachesSeat(t *testing.T) {
	url := newTestServer(t, Options{})
	a := dial(t, url)
	send(t, a, TypeCreateSession, createPayload{Name: "table", HostName: "Alice"})
	host := ackGrant(t, a, TypeCreateSession)

	again := dial(t, url)
	send(t, again, TypeRejoinSession, rejoinPayload{Token: host.Token})
	grant := ackGrant(t, again, TypeRejoinSession)
	assert.Equal(t, host.SeatID, grant.SeatID)
	waitFor(t, again, string(ports.EventState), phaseIs(game.PhaseLobby))

	bad := dial(t, url)
	send(t, bad, TypeRejoinSession, rejoinPayload{Token: "nope"})
	assert.Equal(t, "invalid_seat_token", errorCodeOf(t, bad))
}

func TestHub_CommandsNeedAttachedSeat(t *testing.T) {
	url := newTestServer(t, Options{})
	c := dial(t, url)

	send(t, c, string(action.KindEndTurn), nil)
	assert.Equal(t, "not_attached", errorCodeOf(t, c))

	send(t, c, "teleport", nil)
	assert.Equal(t, "unknown_command", errorCodeOf(t, c))

	send(t, c, TypeJoinSession, joinPayload{SessionID: "missing", Name: "Bob"})
	assert.Equal(t, "not_found", errorCodeOf(t, c))
}

func TestHub_RateLimitsConnection(t *testing.T) {
	url := newTestServer(t, Options{Rate: rate.Limit(0.001), Burst: 1})
	c := dial(t, url)

	send(t, c, TypeListSessions, nil)
	waitFor(t, c, string(ports.EventAck), nil)
	send(t, c, TypeListSessions, nil)
	assert.Equal(t, "rate_limited", errorCodeOf(t, c))
}

func TestHub_PublishFiltersBySessionAndSeat(t *testing.T) {
	hub := NewHub(Options{})
	mk := func(id, session, seat string) *conn {
		c := &conn{id: id, send: make(chan []byte, 4)}
		c.attach(session, seat)
		hub.conns[id] = c
		return c
	}
	a := mk("c1", "s1", "a")
	b := mk("c2", "s1", "b")
	other := mk("c3", "s2", "a")

	hub.Publish(ports.Event{SessionID: "s1", Type: ports.EventState, Payload: json.RawMessage(`{"v":1}`)})
	hub.Publish(ports.Event{SessionID: "s1", Seat: "b", Type: ports.EventError, Payload: json.RawMessage(`{"code":"x"}`)})

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 2)
	assert.Len(t, other.send, 0)

	var env envelope
	require.NoError(t, json.Unmarshal(<-a.send, &env))
	assert.Equal(t, "state", env.Type)
	assert.JSONEq(t, `{"v":1}`, string(env.Payload))
}

func TestHub_DropsSlowConnection(t *testing.T) {
	hub := NewHub(Options{})
	c := &conn{id: "slow", send: make(chan []byte, 1)}
	c.attach("s1", "a")
	hub.conns[c.id] = c

	hub.Publish(ports.Event{SessionID: "s1", Type: ports.EventState})
	hub.Publish(ports.Event{SessionID: "s1", Type: ports.EventState})
	assert.Equal(t, 0, hub.Connections())
	assert.True(t, c.isClosed())
	assert.False(t, c.enqueue([]byte("late")))
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(NewHub(Options{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
