package ports

import "errors"

var ErrInvalidToken = errors.New("invalid seat token")

// SeatClaims says which seat of which session a token controls.
type SeatClaims struct {
	SessionID string
	SeatID    string
}

type SeatTokens interface {
	Issue(claims SeatClaims) (string, error)
	Verify(token string) (SeatClaims, error)
}
