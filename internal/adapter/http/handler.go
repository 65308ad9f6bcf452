package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/auth"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/catalog"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/lobby"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/observe"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/replay"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/results"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/status"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const seatTokenHeader = "X-Seat-Token"

type Handler struct {
	AuthUC    auth.VerifyUseCase
	LobbyUC   lobby.UseCase
	ActionUC  action.UseCase
	StatusUC  status.UseCase
	ScoreUC   observe.UseCase
	ReplayUC  replay.UseCase
	ResultsUC results.UseCase
	CatalogUC catalog.UseCase
	KPI       kpiSnapshotProvider
	// AllowOrigin is the CORS origin, "*" when empty.
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	api := s.Group("/api")
	api.POST("/sessions", h.createSession)
	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/:id", h.sessionState)
	api.POST("/sessions/:id/join", h.join)
	api.POST("/sessions/:id/rejoin", h.rejoin)
	api.POST("/sessions/:id/seats", h.addBot)
	api.POST("/sessions/:id/ready", h.ready)
	api.POST("/sessions/:id/start", h.start)
	api.POST("/sessions/:id/commands", h.command)
	api.GET("/sessions/:id/score", h.score)
	api.GET("/sessions/:id/log", h.log)
	api.GET("/results", h.listResults)
	api.GET("/results/:id", h.getResult)
	api.GET("/catalog", h.catalogIndex)

	s.GET("/rules/*filepath", h.rulesFile)
	s.GET("/ops/kpi", h.kpi)
}

type createRequest struct {
	Name     string `json:"name"`
	HostName string `json:"host_name"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type addBotRequest struct {
	Name string `json:"name"`
}

type readyRequest struct {
	Ready *bool `json:"ready"`
}

type commandRequest struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params"`
}

func (h Handler) createSession(c context.Context, ctx *app.RequestContext) {
	var body createRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	grant, err := h.LobbyUC.Create(c, lobby.CreateRequest{Name: body.Name, HostName: body.HostName})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, grant)
}

func (h Handler) listSessions(c context.Context, ctx *app.RequestContext) {
	list, err := h.LobbyUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"sessions": list})
}

func (h Handler) sessionState(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) join(c context.Context, ctx *app.RequestContext) {
	var body joinRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	grant, err := h.LobbyUC.Join(c, lobby.JoinRequest{SessionID: ctx.Param("id"), Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, grant)
}

// rejoin rotates the token of a seat the caller already holds.
func (h Handler) rejoin(c context.Context, ctx *app.RequestContext) {
	seat, err := h.requireSeat(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	grant, err := h.LobbyUC.Rejoin(c, lobby.RejoinRequest{SessionID: seat.SessionID, SeatID: seat.SeatID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, grant)
}

func (h Handler) addBot(c context.Context, ctx *app.RequestContext) {
	seat, err := h.requireSeat(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body addBotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	botID, err := h.LobbyUC.AddBot(c, lobby.AddBotRequest{SessionID: seat.SessionID, SeatID: seat.SeatID, Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, map[string]string{"seat_id": botID})
}

func (h Handler) ready(c context.Context, ctx *app.RequestContext) {
	seat, err := h.requireSeat(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body readyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	ready := true
	if body.Ready != nil {
		ready = *body.Ready
	}
	if err := h.LobbyUC.Ready(c, lobby.ReadyRequest{SessionID: seat.SessionID, SeatID: seat.SeatID, Ready: ready}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]bool{"ready": ready})
}

func (h Handler) start(c context.Context, ctx *app.RequestContext) {
	seat, err := h.requireSeat(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.LobbyUC.Start(c, lobby.StartRequest{SessionID: seat.SessionID, SeatID: seat.SeatID}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"session_id": seat.SessionID})
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	seat, err := h.requireSeat(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	cmd, err := action.DecodeCommand(body.Kind, body.Params)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ActionUC.Execute(c, action.Request{SessionID: seat.SessionID, SeatID: seat.SeatID, Command: cmd})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) score(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoreUC.Execute(c, observe.Request{SessionID: ctx.Param("id"), SeatID: ctx.Query("seat")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) log(c context.Context, ctx *app.RequestContext) {
	since, err := queryInt(ctx, "since")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "since must be an integer")
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{SessionID: ctx.Param("id"), Since: since, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listResults(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	list, err := h.ResultsUC.List(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"results": list})
}

func (h Handler) getResult(c context.Context, ctx *app.RequestContext) {
	result, err := h.ResultsUC.Get(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, result)
}

func (h Handler) catalogIndex(c context.Context, ctx *app.RequestContext) {
	idx, err := h.CatalogUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, idx)
}

func (h Handler) rulesFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(ctx.Param("filepath"), "/")
	if path == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}
	b, err := h.CatalogUC.File(c, path)
	if err != nil {
		writeError(ctx, err)
		return
	}
	contentType := "text/markdown; charset=utf-8"
	if strings.HasSuffix(path, ".json") {
		contentType = "application/json"
	}
	ctx.Data(http.StatusOK, contentType, b)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

var ErrMissingSeatToken = errors.New("missing x-seat-token header")

// requireSeat resolves the seat token against the session in the path.
func (h Handler) requireSeat(c context.Context, ctx *app.RequestContext) (auth.VerifyResponse, error) {
	token := strings.TrimSpace(string(ctx.GetHeader(seatTokenHeader)))
	if token == "" {
		return auth.VerifyResponse{}, ErrMissingSeatToken
	}
	sessionID := strings.TrimSpace(ctx.Param("id"))
	if sessionID == "" {
		return auth.VerifyResponse{}, auth.ErrInvalidRequest
	}
	return h.AuthUC.Execute(c, auth.VerifyRequest{SessionID: sessionID, Token: token})
}

func writeError(ctx *app.RequestContext, err error) {
	if rej, ok := game.AsRejection(err); ok {
		writeRejection(ctx, rej)
		return
	}
	switch {
	case errors.Is(err, ErrMissingSeatToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_seat_token", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_seat_token", err.Error())
	case errors.Is(err, action.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, action.ErrInvalidCommandParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_command_params", err.Error())
	case errors.Is(err, lobby.ErrSessionFull):
		writeErrorBody(ctx, consts.StatusConflict, "session_full", err.Error())
	case errors.Is(err, lobby.ErrAlreadyStarted):
		writeErrorBody(ctx, consts.StatusConflict, "already_started", err.Error())
	case errors.Is(err, lobby.ErrUnknownSeat),
		errors.Is(err, observe.ErrUnknownSeat):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_seat", err.Error())
	case errors.Is(err, ports.ErrInvalidDocPath):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, lobby.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, results.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrForbidden):
		writeErrorBody(ctx, consts.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeRejection reports a rule refusal. The session did not change.
func writeRejection(ctx *app.RequestContext, rej *game.Rejection) {
	ctx.JSON(consts.StatusUnprocessableEntity, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":        string(rej.Code),
			"message":     rej.Message,
			"user_facing": rej.UserFacing,
		},
	})
}
