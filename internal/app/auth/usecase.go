package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid seat credentials")
)

type VerifyRequest struct {
	SessionID string
	Token     string
}

type VerifyResponse struct {
	SessionID string
	SeatID    string
}

// VerifyUseCase resolves a seat token to the seat it controls. The token
// must belong to the requested session and the seat must still be bound to
// it in the registry.
type VerifyUseCase struct {
	Tokens   ports.SeatTokens
	Registry ports.SessionRegistry
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" || u.Tokens == nil || u.Registry == nil {
		return VerifyResponse{}, ErrInvalidRequest
	}

	claims, err := u.Tokens.Verify(req.Token)
	if err != nil {
		return VerifyResponse{}, ErrInvalidCredentials
	}
	if req.SessionID != "" && claims.SessionID != req.SessionID {
		return VerifyResponse{}, ErrInvalidCredentials
	}
	bound, err := u.Registry.SessionForSeat(ctx, claims.SeatID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return VerifyResponse{}, ErrInvalidCredentials
		}
		return VerifyResponse{}, err
	}
	if bound != claims.SessionID {
		return VerifyResponse{}, ErrInvalidCredentials
	}
	return VerifyResponse{SessionID: claims.SessionID, SeatID: claims.SeatID}, nil
}
