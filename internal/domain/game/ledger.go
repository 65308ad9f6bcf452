package game

type ScoreCategory string

const (
	CategoryRoundMission      ScoreCategory = "round_mission"
	CategoryPassBonus         ScoreCategory = "pass_bonus"
	CategoryTechTile          ScoreCategory = "tech_tile"
	CategoryFinalMission      ScoreCategory = "final_mission"
	CategoryPowerReceivedCost ScoreCategory = "power_received_cost"
	CategoryVehicleReward     ScoreCategory = "vehicle_reward"
	CategoryTrackCompletion   ScoreCategory = "track_completion"
	CategoryOther             ScoreCategory = "other"
)

var ScoreCategories = []ScoreCategory{
	CategoryRoundMission,
	CategoryPassBonus,
	CategoryTechTile,
	CategoryFinalMission,
	CategoryPowerReceivedCost,
	CategoryVehicleReward,
	CategoryTrackCompletion,
	CategoryOther,
}

// StartingScore is the score every seat starts with. It is not a ledger
// entry, so Breakdown totals plus StartingScore equal Score.
const StartingScore = 10

type LedgerEntry struct {
	Round    int           `json:"round"`
	Category ScoreCategory `json:"category"`
	Amount   int           `json:"amount"`
	Reason   string        `json:"reason,omitempty"`
}

// AddScore is the only way score changes. Zero amounts are still recorded.
func (s *Seat) AddScore(category ScoreCategory, amount, round int, reason string) {
	s.Score += amount
	s.Ledger = append(s.Ledger, LedgerEntry{Round: round, Category: category, Amount: amount, Reason: reason})
}

// Breakdown sums the ledger per category.
func (s *Seat) Breakdown() map[ScoreCategory]int {
	out := make(map[ScoreCategory]int, len(ScoreCategories))
	for _, c := range ScoreCategories {
		out[c] = 0
	}
	for _, e := range s.Ledger {
		out[e.Category] += e.Amount
	}
	return out
}
