package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/metrics/inmemory"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/memory"
	jwttokens "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/token/jwt"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/world/mock"
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
)

type handlerFunc func(context.Context, *app.RequestContext)

func newTestHandler(t *testing.T) Handler {
	t.Helper()
	store := memory.NewStore()
	registry := memory.NewSessionRegistry(store)
	tokens, err := jwttokens.NewSeatTokens(jwttokens.Config{Secret: []byte("handler-test-secret-0123456789ab")})
	require.NoError(t, err)
	n := 0
	resultsUC := results.UseCase{Archive: memory.NewResultArchive(store), TxManager: memory.NewTxManager(store)}
	return Handler{
		AuthUC: auth.VerifyUseCase{Tokens: tokens, Registry: registry},
		LobbyUC: lobby.UseCase{
			Registry: registry,
			Maps:     mock.Generator{},
			Tokens:   tokens,
			NewID: func() string {
				n++
				return fmt.Sprintf("id-%d", n)
			},
			Seed: func() int64 { return 7 },
		},
		ActionUC:  action.UseCase{Registry: registry, Results: resultsUC, Metrics: inmemory.NewRecorder()},
		StatusUC:  status.UseCase{Registry: registry},
		ScoreUC:   observe.UseCase{Registry: registry},
		ReplayUC:  replay.UseCase{Registry: registry},
		ResultsUC: resultsUC,
		CatalogUC: catalog.UseCase{},
		KPI:       inmemory.NewRecorder(),
	}
}

func call(fn handlerFunc, sessionID, token, uri, body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if sessionID != "" {
		ctx.Params = param.Params{{Key: "id", Value: sessionID}}
	}
	if token != "" {
		ctx.Request.Header.Set(seatTokenHeader, token)
	}
	if uri != "" {
		ctx.Request.SetRequestURI(uri)
	}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	fn(context.Background(), ctx)
	return ctx
}

func decode(t *testing.T, ctx *app.RequestContext, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), out), string(ctx.Response.Body()))
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, ctx, &body)
	return body.Error.Code
}

// startedTable creates a two seat table and starts it.
func startedTable(t *testing.T, h Handler) (host, guest lobby.SeatGrant) {
	t.Helper()
	ctx := call(h.createSession, "", "", "", `{"name":"table","host_name":"Alice"}`)
	require.Equal(t, consts.StatusCreated, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	decode(t, ctx, &host)

	ctx = call(h.join, host.SessionID, "", "", `{"name":"Bob"}`)
	require.Equal(t, consts.StatusCreated, ctx.Response.StatusCode())
	decode(t, ctx, &guest)

	for _, g := range []lobby.SeatGrant{host, guest} {
		ctx = call(h.ready, g.SessionID, g.Token, "", "")
		require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	}
	ctx = call(h.start, host.SessionID, host.Token, "", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	return host, guest
}

func TestHandler_LobbyToFactionSelect(t *testing.T) {
	h := newTestHandler(t)
	host, _ := startedTable(t, h)

	ctx := call(h.sessionState, host.SessionID, "", "", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	var view status.Response
	decode(t, ctx, &view)
	assert.Equal(t, game.PhaseFactionSelect, view.Phase)

	ctx = call(h.listSessions, "", "", "", "")
	var list struct {
		Sessions []ports.SessionSummary `json:"sessions"`
	}
	decode(t, ctx, &list)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, 2, list.Sessions[0].Seats)
}

func TestHandler_CommandAcceptedAndRejected(t *testing.T) {
	h := newTestHandler(t)
	host, guest := startedTable(t, h)

	ctx := call(h.command, host.SessionID, host.Token, "", `{"kind":"choose_faction","params":{"faction":"terrans"}}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var resp action.Response
	decode(t, ctx, &resp)
	assert.Equal(t, game.PhaseFactionSelect, resp.Phase)

	ctx = call(h.command, guest.SessionID, guest.Token, "", `{"kind":"choose_faction","params":{"faction":"terrans"}}`)
	assert.Equal(t, consts.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = call(h.command, guest.SessionID, guest.Token, "", `{"kind":"build","params":{"hex":{"q":0,"r":0}}}`)
	require.Equal(t, consts.StatusUnprocessableEntity, ctx.Response.StatusCode())
	assert.Equal(t, string(game.CodeWrongPhase), errorCode(t, ctx))

	ctx = call(h.command, guest.SessionID, guest.Token, "", `{"kind":"teleport"}`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "unknown_command", errorCode(t, ctx))

	ctx = call(h.command, guest.SessionID, guest.Token, "", `{"kind":"build","params":"nope"}`)
	assert.Equal(t, "invalid_command_params", errorCode(t, ctx))

	ctx = call(h.command, guest.SessionID, guest.Token, "", `{`)
	assert.Equal(t, "invalid_json", errorCode(t, ctx))
}

func TestHandler_SeatTokenChecks(t *testing.T) {
	h := newTestHandler(t)
	host, _ := startedTable(t, h)

	ctx := call(h.command, host.SessionID, "", "", `{"kind":"end_turn"}`)
	assert.Equal(t, consts.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, "missing_seat_token", errorCode(t, ctx))

	ctx = call(h.command, host.SessionID, "garbage", "", `{"kind":"end_turn"}`)
	assert.Equal(t, "invalid_seat_token", errorCode(t, ctx))

	ctx = call(h.command, "other-session", host.Token, "", `{"kind":"end_turn"}`)
	assert.Equal(t, "invalid_seat_token", errorCode(t, ctx))
}

func TestHandler_RejoinRotatesToken(t *testing.T) {
	h := newTestHandler(t)
	host, _ := startedTable(t, h)

	ctx := call(h.rejoin, host.SessionID, host.Token, "", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var grant lobby.SeatGrant
	decode(t, ctx, &grant)
	assert.Equal(t, host.SeatID, grant.SeatID)
	assert.NotEmpty(t, grant.Token)
}

func TestHandler_LobbyErrors(t *testing.T) {
	h := newTestHandler(t)
	host, _ := startedTable(t, h)

	ctx := call(h.join, host.SessionID, "", "", `{"name":"Late"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())

	ctx = call(h.join, "missing", "", "", `{"name":"Carol"}`)
	assert.Equal(t, consts.StatusNotFound, ctx.Response.StatusCode())

	ctx = call(h.createSession, "", "", "", `{"name":""}`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "bad_request", errorCode(t, ctx))
}

func TestHandler_AddBot(t *testing.T) {
	h := newTestHandler(t)
	var host lobby.SeatGrant
	decode(t, call(h.createSession, "", "", "", `{"name":"table","host_name":"Alice"}`), &host)

	ctx := call(h.addBot, host.SessionID, host.Token, "", `{"name":"Robo"}`)
	require.Equal(t, consts.StatusCreated, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var body map[string]string
	decode(t, ctx, &body)
	assert.NotEmpty(t, body["seat_id"])
}

func TestHandler_ScoreAndLog(t *testing.T) {
	h := newTestHandler(t)
	host, _ := startedTable(t, h)

	ctx := call(h.score, host.SessionID, "", "/api/sessions/"+host.SessionID+"/score", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	var board observe.Response
	decode(t, ctx, &board)
	require.Len(t, board.Seats, 2)
	assert.Equal(t, game.StartingScore, board.Seats[0].Score)

	ctx = call(h.score, host.SessionID, "", "/api/sessions/"+host.SessionID+"/score?seat=nobody", "")
	assert.Equal(t, "unknown_seat", errorCode(t, ctx))

	ctx = call(h.log, host.SessionID, "", "/api/sessions/"+host.SessionID+"/log?since=1&limit=2", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	var log replay.Response
	decode(t, ctx, &log)
	require.Len(t, log.Entries, 2)
	assert.Equal(t, 2, log.Entries[0].Seq)

	ctx = call(h.log, host.SessionID, "", "/api/sessions/"+host.SessionID+"/log?since=x", "")
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
}

func TestHandler_ResultsAndCatalog(t *testing.T) {
	h := newTestHandler(t)

	ctx := call(h.listResults, "", "", "/api/results", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"results":[]}`, string(ctx.Response.Body()))

	ctx = call(h.getResult, "missing", "", "", "")
	assert.Equal(t, consts.StatusNotFound, ctx.Response.StatusCode())

	ctx = call(h.catalogIndex, "", "", "", "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	var idx catalog.Index
	decode(t, ctx, &idx)
	assert.Len(t, idx.Factions, len(game.FactionIDs()))

	ctx = &app.RequestContext{}
	ctx.Params = param.Params{{Key: "filepath", Value: "/"}}
	h.rulesFile(context.Background(), ctx)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())

	ctx = &app.RequestContext{}
	ctx.Params = param.Params{{Key: "filepath", Value: "/overview.md"}}
	h.rulesFile(context.Background(), ctx)
	assert.Equal(t, consts.StatusNotFound, ctx.Response.StatusCode())
}

func TestHandler_KPI(t *testing.T) {
	h := newTestHandler(t)
	ctx := call(h.kpi, "", "", "", "")
	assert.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	h.KPI = nil
	ctx = call(h.kpi, "", "", "", "")
	assert.Equal(t, "not_configured", errorCode(t, ctx))
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrMissingSeatToken, consts.StatusUnauthorized, "missing_seat_token"},
		{auth.ErrInvalidCredentials, consts.StatusUnauthorized, "invalid_seat_token"},
		{lobby.ErrSessionFull, consts.StatusConflict, "session_full"},
		{lobby.ErrAlreadyStarted, consts.StatusConflict, "already_started"},
		{fmt.Errorf("wrap: %w", ports.ErrNotFound), consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{ports.ErrInvalidDocPath, consts.StatusBadRequest, "invalid_filepath"},
		{results.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{game.RejectUser(game.CodeInsufficientQIC, "need QIC"), consts.StatusUnprocessableEntity, "insufficient_qic"},
		{assert.AnError, consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		assert.Equal(t, tc.status, ctx.Response.StatusCode(), tc.code)
		assert.Equal(t, tc.code, errorCode(t, ctx))
	}
}

func TestWriteRejection_CarriesUserFacing(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, game.RejectUser(game.CodeFederation, "power value below 7"))
	var body struct {
		ResultCode string `json:"result_code"`
		Error      struct {
			Code       string `json:"code"`
			UserFacing bool   `json:"user_facing"`
		} `json:"error"`
	}
	decode(t, ctx, &body)
	assert.Equal(t, "REJECTED", body.ResultCode)
	assert.Equal(t, string(game.CodeFederation), body.Error.Code)
	assert.True(t, body.Error.UserFacing)
}
