package observe

import (
	"context"
	"errors"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

var (
	ErrInvalidRequest = errors.New("invalid score request")
	ErrUnknownSeat    = errors.New("unknown seat")
)

type UseCase struct {
	Registry ports.SessionRegistry
}

// Execute reads the live score board. Breakdown totals plus the starting
// score always equal each seat's score.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.SeatID = strings.TrimSpace(req.SeatID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	var resp Response
	err := u.Registry.RunInSession(ctx, req.SessionID, func(s *game.Session) error {
		resp = Response{SessionID: s.ID, Round: s.Round, Phase: s.Phase, Seats: []SeatScore{}}
		for _, seat := range s.OrderedSeats() {
			if req.SeatID != "" && seat.ID != req.SeatID {
				continue
			}
			row := SeatScore{
				SeatID:    seat.ID,
				Name:      seat.Name,
				Faction:   seat.Faction,
				Score:     seat.Score,
				Starting:  game.StartingScore,
				Breakdown: seat.Breakdown(),
			}
			if req.SeatID != "" {
				row.Ledger = append([]game.LedgerEntry(nil), seat.Ledger...)
			}
			resp.Seats = append(resp.Seats, row)
		}
		if req.SeatID != "" && len(resp.Seats) == 0 {
			return ErrUnknownSeat
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}
