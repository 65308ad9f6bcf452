package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

const defaultIssuer = "gaia-engine"

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// SeatTokens signs HS256 tokens naming a session and seat.
type SeatTokens struct {
	cfg Config
}

type seatClaims struct {
	gojwt.RegisteredClaims
	SessionID string `json:"sid"`
	SeatID    string `json:"seat"`
}

func NewSeatTokens(cfg Config) (SeatTokens, error) {
	if len(cfg.Secret) < 16 {
		return SeatTokens{}, errors.New("seat token secret must be at least 16 bytes")
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return SeatTokens{cfg: cfg}, nil
}

func (t SeatTokens) Issue(claims ports.SeatClaims) (string, error) {
	if strings.TrimSpace(claims.SessionID) == "" || strings.TrimSpace(claims.SeatID) == "" {
		return "", ports.ErrInvalidToken
	}
	now := t.cfg.Now()
	registered := gojwt.RegisteredClaims{
		Issuer:   t.cfg.Issuer,
		Subject:  claims.SeatID,
		IssuedAt: gojwt.NewNumericDate(now),
		ID:       uuid.NewString(),
	}
	if t.cfg.TTL > 0 {
		registered.ExpiresAt = gojwt.NewNumericDate(now.Add(t.cfg.TTL))
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, seatClaims{
		RegisteredClaims: registered,
		SessionID:        claims.SessionID,
		SeatID:           claims.SeatID,
	})
	signed, err := token.SignedString(t.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign seat token: %w", err)
	}
	return signed, nil
}

func (t SeatTokens) Verify(token string) (ports.SeatClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.SeatClaims{}, ports.ErrInvalidToken
	}
	var parsed seatClaims
	_, err := gojwt.ParseWithClaims(token, &parsed, func(*gojwt.Token) (any, error) {
		return t.cfg.Secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(t.cfg.Issuer),
		gojwt.WithTimeFunc(t.cfg.Now),
	)
	if err != nil {
		return ports.SeatClaims{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	if parsed.SessionID == "" || parsed.SeatID == "" {
		return ports.SeatClaims{}, ports.ErrInvalidToken
	}
	return ports.SeatClaims{SessionID: parsed.SessionID, SeatID: parsed.SeatID}, nil
}
