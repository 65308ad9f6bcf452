package status

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Registry ports.SessionRegistry
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	var resp Response
	err := u.Registry.RunInSession(ctx, req.SessionID, func(s *game.Session) error {
		state, err := json.Marshal(s)
		if err != nil {
			return err
		}
		resp = Response{
			SessionID:   s.ID,
			Version:     s.Version,
			Phase:       s.Phase,
			Round:       s.Round,
			CurrentSeat: s.CurrentSeat(),
			State:       state,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}
