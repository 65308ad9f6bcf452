package action

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/results"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

var (
	ErrInvalidRequest       = errors.New("invalid command request")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrInvalidCommandParams = errors.New("invalid command params")
)

type UseCase struct {
	Registry    ports.SessionRegistry
	Results     results.UseCase
	Metrics     ports.ActionMetrics
	Broadcaster ports.Broadcaster
	Bots        ports.BotKicker
	Logger      *zap.Logger
	Engine      Engine
	// SurfaceRejections sends every rejection back to the seat, not only
	// the user facing ones.
	SurfaceRejections bool
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.SeatID = strings.TrimSpace(req.SeatID)
	if req.SessionID == "" || req.SeatID == "" || req.Command == nil {
		return Response{}, ErrInvalidRequest
	}
	kind := string(req.Command.Kind())

	var (
		out      Response
		finished *ports.GameResult
	)
	err := u.Registry.RunInSession(ctx, req.SessionID, func(s *game.Session) error {
		wasOver := s.Phase == game.PhaseGameEnd
		if err := u.Engine.Apply(s, req.SeatID, req.Command); err != nil {
			return err
		}
		state, err := json.Marshal(s)
		if err != nil {
			return err
		}
		out = Response{SessionID: s.ID, Version: s.Version, Phase: s.Phase, State: state}
		if !wasOver && s.Phase == game.PhaseGameEnd {
			result := results.Summarize(s)
			finished = &result
		}
		return nil
	})
	if err != nil {
		u.reportRejection(req, kind, err)
		return Response{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordAccepted(kind)
	}
	u.publish(ports.Event{SessionID: out.SessionID, Type: ports.EventState, Payload: out.State})
	if finished != nil {
		if err := u.Results.Record(ctx, *finished); err != nil {
			u.logger().Error("archive result failed", zap.String("session_id", out.SessionID), zap.Error(err))
		}
	}
	if u.Bots != nil {
		u.Bots.Kick(out.SessionID)
	}
	return out, nil
}

func (u UseCase) reportRejection(req Request, kind string, err error) {
	rej, ok := game.AsRejection(err)
	if !ok {
		if u.Metrics != nil {
			u.Metrics.RecordFailure(kind)
		}
		if !errors.Is(err, ports.ErrNotFound) {
			u.logger().Warn("command failed", zap.String("session_id", req.SessionID), zap.String("kind", kind), zap.Error(err))
		}
		return
	}
	if u.Metrics != nil {
		u.Metrics.RecordRejected(kind, string(rej.Code))
	}
	u.logger().Debug("command rejected",
		zap.String("session_id", req.SessionID),
		zap.String("seat_id", req.SeatID),
		zap.String("kind", kind),
		zap.String("code", string(rej.Code)),
	)
	if !rej.UserFacing && !u.SurfaceRejections {
		return
	}
	payload, mErr := json.Marshal(rej)
	if mErr != nil {
		return
	}
	u.publish(ports.Event{SessionID: req.SessionID, Seat: req.SeatID, Type: ports.EventError, Payload: payload})
}

func (u UseCase) publish(e ports.Event) {
	if u.Broadcaster != nil {
		u.Broadcaster.Publish(e)
	}
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
