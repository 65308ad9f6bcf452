package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/auth"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/lobby"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/status"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

const (
	DefaultRate  = rate.Limit(10)
	DefaultBurst = 20
)

type Options struct {
	Registry ports.SessionRegistry
	Logger   *zap.Logger
	// Rate and Burst bound inbound messages per connection.
	Rate  rate.Limit
	Burst int
	// CheckOrigin defaults to allowing every origin.
	CheckOrigin func(r *http.Request) bool
}

// Handlers are the use cases behind inbound messages. They are bound after
// construction since they publish through the hub.
type Handlers struct {
	Lobby   lobby.UseCase
	Actions action.UseCase
	Auth    auth.VerifyUseCase
	Status  status.UseCase
}

// Hub owns websocket connections and fans session events out to them.
type Hub struct {
	opts     Options
	upgrader websocket.Upgrader
	ctx      context.Context
	cancel   context.CancelFunc

	mu       sync.RWMutex
	handlers Handlers
	conns    map[string]*conn
}

func NewHub(opts Options) *Hub {
	if opts.Rate <= 0 {
		opts.Rate = DefaultRate
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		ctx:    ctx,
		cancel: cancel,
		conns:  map[string]*conn{},
	}
}

func (h *Hub) Bind(handlers Handlers) {
	h.mu.Lock()
	h.handlers = handlers
	h.mu.Unlock()
}

// Publish implements ports.Broadcaster.
func (h *Hub) Publish(event ports.Event) {
	msg, err := json.Marshal(outbound{Type: string(event.Type), Payload: event.Payload})
	if err != nil {
		h.opts.Logger.Error("marshal event failed", zap.String("session_id", event.SessionID), zap.Error(err))
		return
	}
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		sessionID, seatID := c.seat()
		if sessionID != event.SessionID {
			continue
		}
		if event.Seat != "" && seatID != event.Seat {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(msg) && !c.isClosed() {
			h.opts.Logger.Warn("dropping slow connection", zap.String("conn_id", c.id), zap.String("session_id", event.SessionID))
			h.drop(c)
		}
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &conn{
		id:      uuid.NewString(),
		ws:      wsConn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(h.opts.Rate, h.opts.Burst),
	}
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()

	go c.writePump()
	h.readPump(c)
}

// Close cancels in-flight handlers and drops every connection.
func (h *Hub) Close() {
	h.cancel()
	h.mu.RLock()
	all := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		all = append(all, c)
	}
	h.mu.RUnlock()
	for _, c := range all {
		h.drop(c)
	}
}

func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) drop(c *conn) {
	h.mu.Lock()
	delete(h.conns, c.id)
	h.mu.Unlock()
	if h.opts.Registry != nil {
		h.opts.Registry.UnbindConnection(c.id)
	}
	c.close()
}

func (h *Hub) readPump(c *conn) {
	defer h.drop(c)
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg inbound
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.opts.Logger.Debug("websocket read failed", zap.String("conn_id", c.id), zap.Error(err))
			}
			return
		}
		if !c.limiter.Allow() {
			h.reply(c, outbound{Type: string(ports.EventError), Payload: errorPayload{Request: msg.Type, Code: "rate_limited", Message: "too many messages"}})
			continue
		}
		h.dispatch(c, msg)
	}
}

func (h *Hub) dispatch(c *conn, msg inbound) {
	h.mu.RLock()
	handlers := h.handlers
	h.mu.RUnlock()
	ctx := h.ctx
	msg.Type = strings.TrimSpace(msg.Type)

	switch msg.Type {
	case TypeCreateSession:
		var p createPayload
		if !h.decode(c, msg, &p) {
			return
		}
		grant, err := handlers.Lobby.Create(ctx, lobby.CreateRequest{Name: p.Name, HostName: p.HostName})
		h.attachWithGrant(ctx, c, msg.Type, handlers, grant, err)
	case TypeJoinSession:
		var p joinPayload
		if !h.decode(c, msg, &p) {
			return
		}
		grant, err := handlers.Lobby.Join(ctx, lobby.JoinRequest{SessionID: p.SessionID, Name: p.Name})
		h.attachWithGrant(ctx, c, msg.Type, handlers, grant, err)
	case TypeRejoinSession:
		var p rejoinPayload
		if !h.decode(c, msg, &p) {
			return
		}
		seat, err := handlers.Auth.Execute(ctx, auth.VerifyRequest{Token: p.Token})
		if err != nil {
			h.replyError(c, msg.Type, err)
			return
		}
		grant, err := handlers.Lobby.Rejoin(ctx, lobby.RejoinRequest{SessionID: seat.SessionID, SeatID: seat.SeatID})
		h.attachWithGrant(ctx, c, msg.Type, handlers, grant, err)
	case TypeListSessions:
		list, err := handlers.Lobby.List(ctx)
		if err != nil {
			h.replyError(c, msg.Type, err)
			return
		}
		h.ack(c, msg.Type, map[string]any{"sessions": list})
	case TypeAddBot:
		var p addBotPayload
		sessionID, seatID, ok := h.requireAttached(c, msg)
		if !ok || !h.decode(c, msg, &p) {
			return
		}
		botID, err := handlers.Lobby.AddBot(ctx, lobby.AddBotRequest{SessionID: sessionID, SeatID: seatID, Name: p.Name})
		if err != nil {
			h.replyError(c, msg.Type, err)
			return
		}
		h.ack(c, msg.Type, map[string]string{"seat_id": botID})
	case TypeSetReady:
		var p readyPayload
		sessionID, seatID, ok := h.requireAttached(c, msg)
		if !ok || !h.decode(c, msg, &p) {
			return
		}
		ready := p.Ready == nil || *p.Ready
		if err := handlers.Lobby.Ready(ctx, lobby.ReadyRequest{SessionID: sessionID, SeatID: seatID, Ready: ready}); err != nil {
			h.replyError(c, msg.Type, err)
			return
		}
		h.ack(c, msg.Type, map[string]bool{"ready": ready})
	case TypeStartGame:
		sessionID, seatID, ok := h.requireAttached(c, msg)
		if !ok {
			return
		}
		if err := handlers.Lobby.Start(ctx, lobby.StartRequest{SessionID: sessionID, SeatID: seatID}); err != nil {
			h.replyError(c, msg.Type, err)
			return
		}
		h.ack(c, msg.Type, nil)
	default:
		h.command(ctx, c, handlers, msg)
	}
}

// command runs a game command. Accepted commands are answered by the state
// broadcast and rule rejections by the action use case's error event, so
// only transport failures are replied to here.
func (h *Hub) command(ctx context.Context, c *conn, handlers Handlers, msg inbound) {
	cmd, err := action.DecodeCommand(msg.Type, msg.Payload)
	if err != nil {
		h.replyError(c, msg.Type, err)
		return
	}
	sessionID, seatID, ok := h.requireAttached(c, msg)
	if !ok {
		return
	}
	_, err = handlers.Actions.Execute(ctx, action.Request{SessionID: sessionID, SeatID: seatID, Command: cmd})
	if err == nil {
		return
	}
	if _, ok := game.AsRejection(err); ok {
		return
	}
	h.replyError(c, msg.Type, err)
}

func (h *Hub) attachWithGrant(ctx context.Context, c *conn, request string, handlers Handlers, grant lobby.SeatGrant, err error) {
	if err != nil {
		h.replyError(c, request, err)
		return
	}
	c.attach(grant.SessionID, grant.SeatID)
	if h.opts.Registry != nil {
		h.opts.Registry.BindConnection(c.id, grant.SeatID)
	}
	h.ack(c, request, grant)
	view, err := handlers.Status.Execute(ctx, status.Request{SessionID: grant.SessionID})
	if err != nil {
		h.opts.Logger.Warn("initial state failed", zap.String("session_id", grant.SessionID), zap.Error(err))
		return
	}
	h.reply(c, outbound{Type: string(ports.EventState), Payload: view.State})
}

func (h *Hub) requireAttached(c *conn, msg inbound) (string, string, bool) {
	sessionID, seatID := c.seat()
	if sessionID == "" {
		h.reply(c, outbound{Type: string(ports.EventError), Payload: errorPayload{Request: msg.Type, Code: "not_attached", Message: "join or rejoin a session first"}})
		return "", "", false
	}
	return sessionID, seatID, true
}

func (h *Hub) decode(c *conn, msg inbound, out any) bool {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return true
	}
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		h.reply(c, outbound{Type: string(ports.EventError), Payload: errorPayload{Request: msg.Type, Code: "invalid_json", Message: "invalid payload"}})
		return false
	}
	return true
}

func (h *Hub) ack(c *conn, request string, data any) {
	h.reply(c, outbound{Type: string(ports.EventAck), Payload: ackPayload{Request: request, Data: data}})
}

func (h *Hub) replyError(c *conn, request string, err error) {
	code, message := errorCode(err)
	h.reply(c, outbound{Type: string(ports.EventError), Payload: errorPayload{Request: request, Code: code, Message: message}})
}

func (h *Hub) reply(c *conn, msg outbound) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.opts.Logger.Error("marshal reply failed", zap.Error(err))
		return
	}
	if !c.enqueue(b) {
		h.drop(c)
	}
}

func errorCode(err error) (string, string) {
	if rej, ok := game.AsRejection(err); ok {
		return string(rej.Code), rej.Message
	}
	switch {
	case errors.Is(err, action.ErrUnknownCommand):
		return "unknown_command", err.Error()
	case errors.Is(err, action.ErrInvalidCommandParams):
		return "invalid_command_params", err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid_seat_token", err.Error()
	case errors.Is(err, lobby.ErrSessionFull):
		return "session_full", err.Error()
	case errors.Is(err, lobby.ErrAlreadyStarted):
		return "already_started", err.Error()
	case errors.Is(err, lobby.ErrUnknownSeat):
		return "unknown_seat", err.Error()
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, lobby.ErrInvalidRequest):
		return "bad_request", err.Error()
	case errors.Is(err, ports.ErrNotFound):
		return "not_found", err.Error()
	case errors.Is(err, ports.ErrConflict):
		return "conflict", err.Error()
	default:
		return "internal_error", "internal error"
	}
}
