package replay

import (
	"context"
	"errors"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	defaultLimit = 50
	maxLimit     = 500
)

type UseCase struct {
	Registry ports.SessionRegistry
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || req.Since < 0 || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	var resp Response
	err := u.Registry.RunInSession(ctx, req.SessionID, func(s *game.Session) error {
		resp = Response{SessionID: s.ID, LatestSeq: s.LogSeq}
		resp.Entries, resp.Truncated = since(s.Log, req.Since, limit)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

func since(log []game.LogEntry, seq, limit int) ([]game.LogEntry, bool) {
	out := make([]game.LogEntry, 0, min(len(log), limit))
	truncated := len(log) > 0 && log[0].Seq > seq+1
	for _, e := range log {
		if e.Seq <= seq {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out, truncated
}
