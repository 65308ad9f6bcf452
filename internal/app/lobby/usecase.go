package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

var (
	ErrInvalidRequest = errors.New("invalid lobby request")
	ErrSessionFull    = errors.New("session is full")
	ErrAlreadyStarted = errors.New("session already started")
	ErrUnknownSeat    = errors.New("seat not in session")
)

const maxNameLength = 40

type UseCase struct {
	Registry    ports.SessionRegistry
	Maps        ports.MapGenerator
	Tokens      ports.SeatTokens
	Broadcaster ports.Broadcaster
	Bots        ports.BotKicker
	Logger      *zap.Logger
	Now         func() time.Time
	NewID       func() string
	// Seed picks the setup seed of a new session.
	Seed func() int64
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (SeatGrant, error) {
	name := cleanName(req.Name)
	host := cleanName(req.HostName)
	if name == "" || host == "" {
		return SeatGrant{}, ErrInvalidRequest
	}
	s := game.NewSession(u.newID(), name, u.seed(), u.Now)
	seat := game.NewSeat(u.newID(), host, game.SeatHuman)
	s.AddSeat(seat)
	s.Logf(seat.ID, "join", host)
	if err := u.Registry.Create(ctx, s); err != nil {
		return SeatGrant{}, err
	}
	grant, err := u.grant(ctx, s.ID, seat.ID)
	if err != nil {
		return SeatGrant{}, err
	}
	u.logger().Info("session created", zap.String("session_id", s.ID), zap.String("seat_id", seat.ID))
	return grant, nil
}

func (u UseCase) Join(ctx context.Context, req JoinRequest) (SeatGrant, error) {
	name := cleanName(req.Name)
	if strings.TrimSpace(req.SessionID) == "" || name == "" {
		return SeatGrant{}, ErrInvalidRequest
	}
	seat := game.NewSeat(u.newID(), name, game.SeatHuman)
	if err := u.addSeat(ctx, req.SessionID, seat); err != nil {
		return SeatGrant{}, err
	}
	return u.grant(ctx, req.SessionID, seat.ID)
}

// Rejoin issues a fresh token for a human seat that is already in the
// session, so a dropped client can pick its seat back up.
func (u UseCase) Rejoin(ctx context.Context, req RejoinRequest) (SeatGrant, error) {
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.SeatID) == "" {
		return SeatGrant{}, ErrInvalidRequest
	}
	err := u.Registry.RunInSession(ctx, req.SessionID, func(s *game.Session) error {
		seat, ok := s.Seat(req.SeatID)
		if !ok || seat.IsBot() {
			return ErrUnknownSeat
		}
		return nil
	})
	if err != nil {
		return SeatGrant{}, err
	}
	return u.grant(ctx, req.SessionID, req.SeatID)
}

// AddBot seats a bot. Only seats of the session may add one.
func (u UseCase) AddBot(ctx context.Context, req AddBotRequest) (string, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return "", ErrInvalidRequest
	}
	if err := u.requireMember(ctx, req.SessionID, req.SeatID); err != nil {
		return "", err
	}
	name := cleanName(req.Name)
	if name == "" {
		name = "Bot"
	}
	seat := game.NewSeat(u.newID(), name, game.SeatBot)
	seat.Ready = true
	if err := u.addSeat(ctx, req.SessionID, seat); err != nil {
		return "", err
	}
	if err := u.Registry.BindSeat(ctx, seat.ID, req.SessionID); err != nil {
		return "", err
	}
	return seat.ID, nil
}

func (u UseCase) Ready(ctx context.Context, req ReadyRequest) error {
	return u.mutate(ctx, req.SessionID, func(s *game.Session) error {
		if s.Phase != game.PhaseLobby {
			return ErrAlreadyStarted
		}
		seat, ok := s.Seat(req.SeatID)
		if !ok {
			return ErrUnknownSeat
		}
		seat.Ready = req.Ready
		s.Logf(seat.ID, "ready", fmt.Sprint(req.Ready))
		return nil
	})
}

// Start generates the map and moves the session to faction selection.
func (u UseCase) Start(ctx context.Context, req StartRequest) error {
	if u.Maps == nil {
		return ErrInvalidRequest
	}
	err := u.mutate(ctx, req.SessionID, func(s *game.Session) error {
		if _, ok := s.Seat(req.SeatID); !ok {
			return ErrUnknownSeat
		}
		if s.Phase != game.PhaseLobby {
			return ErrAlreadyStarted
		}
		tiles, err := u.Maps.Generate(ctx, len(s.JoinOrder), s.Seed)
		if err != nil {
			return fmt.Errorf("generate map: %w", err)
		}
		if rej := s.Start(tiles); rej != nil {
			return rej
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.logger().Info("session started", zap.String("session_id", req.SessionID))
	return nil
}

func (u UseCase) List(ctx context.Context) ([]ports.SessionSummary, error) {
	return u.Registry.List(ctx)
}

func (u UseCase) addSeat(ctx context.Context, sessionID string, seat *game.Seat) error {
	return u.mutate(ctx, sessionID, func(s *game.Session) error {
		if s.Phase != game.PhaseLobby {
			return ErrAlreadyStarted
		}
		if len(s.JoinOrder) >= game.MaxSeats {
			return ErrSessionFull
		}
		if !s.AddSeat(seat) {
			return ports.ErrConflict
		}
		s.Logf(seat.ID, "join", seat.Name)
		return nil
	})
}

func (u UseCase) requireMember(ctx context.Context, sessionID, seatID string) error {
	return u.Registry.RunInSession(ctx, sessionID, func(s *game.Session) error {
		if _, ok := s.Seat(seatID); !ok {
			return ErrUnknownSeat
		}
		return nil
	})
}

// mutate runs fn under the session lock, then broadcasts the new state and
// wakes the bots.
func (u UseCase) mutate(ctx context.Context, sessionID string, fn func(s *game.Session) error) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidRequest
	}
	var state json.RawMessage
	err := u.Registry.RunInSession(ctx, sessionID, func(s *game.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		s.Touch()
		raw, err := json.Marshal(s)
		if err != nil {
			return err
		}
		state = raw
		return nil
	})
	if err != nil {
		return err
	}
	if u.Broadcaster != nil {
		u.Broadcaster.Publish(ports.Event{SessionID: sessionID, Type: ports.EventState, Payload: state})
	}
	if u.Bots != nil {
		u.Bots.Kick(sessionID)
	}
	return nil
}

func (u UseCase) grant(ctx context.Context, sessionID, seatID string) (SeatGrant, error) {
	if err := u.Registry.BindSeat(ctx, seatID, sessionID); err != nil {
		return SeatGrant{}, err
	}
	token, err := u.Tokens.Issue(ports.SeatClaims{SessionID: sessionID, SeatID: seatID})
	if err != nil {
		return SeatGrant{}, err
	}
	return SeatGrant{SessionID: sessionID, SeatID: seatID, Token: token}, nil
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) seed() int64 {
	if u.Seed != nil {
		return u.Seed()
	}
	return int64(uuid.New().ID())
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name
}
