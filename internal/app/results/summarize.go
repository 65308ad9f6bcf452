package results

import (
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

// Summarize ranks the seats of a finished session. Equal scores share a rank.
func Summarize(s *game.Session) ports.GameResult {
	seats := make([]ports.SeatResult, 0, len(s.Seats))
	for _, seat := range s.OrderedSeats() {
		seats = append(seats, ports.SeatResult{
			SeatID:    seat.ID,
			Name:      seat.Name,
			Kind:      seat.Kind,
			Faction:   seat.Faction,
			Score:     seat.Score,
			Breakdown: seat.Breakdown(),
		})
	}
	sort.SliceStable(seats, func(i, j int) bool { return seats[i].Score > seats[j].Score })
	for i := range seats {
		if i > 0 && seats[i].Score == seats[i-1].Score {
			seats[i].Rank = seats[i-1].Rank
			continue
		}
		seats[i].Rank = i + 1
	}
	return ports.GameResult{
		SessionID:  s.ID,
		Name:       s.Name,
		Rounds:     s.Round,
		FinishedAt: s.Now(),
		Seats:      seats,
	}
}
