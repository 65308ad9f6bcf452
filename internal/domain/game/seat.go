package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

type SeatKind string

const (
	SeatHuman SeatKind = "human"
	SeatBot   SeatKind = "bot"
)

type OwnedTech struct {
	ID      TechID `json:"id"`
	Covered bool   `json:"covered,omitempty"`
}

type FederationRecord struct {
	Reward    FederationRewardID `json:"reward"`
	Hexes     []world.Hex        `json:"hexes"`
	Round     int                `json:"round"`
	FromTrack bool               `json:"from_track,omitempty"`
}

type Seat struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          SeatKind  `json:"kind"`
	Faction       FactionID `json:"faction,omitempty"`
	TurnOrderPref int       `json:"turn_order_pref,omitempty"`
	Ready         bool      `json:"ready"`

	Resources Resources     `json:"resources"`
	Power     PowerBowls    `json:"power"`
	Research  map[Track]int `json:"research"`

	TechTiles        []OwnedTech        `json:"tech_tiles,omitempty"`
	GreenFederations int                `json:"green_federations"`
	Federations      []FederationRecord `json:"federations,omitempty"`

	Score  int           `json:"score"`
	Ledger []LedgerEntry `json:"ledger,omitempty"`

	MainActionTaken       bool `json:"main_action_taken"`
	FollowUpBuild         bool `json:"follow_up_build,omitempty"`
	PendingTerraformSteps int  `json:"pending_terraform_steps,omitempty"`
	TempRange             int  `json:"temp_range,omitempty"`

	Passed       bool        `json:"passed"`
	UsedSpecials []SpecialID `json:"used_specials,omitempty"`
	Booster      BoosterID   `json:"booster,omitempty"`

	Gaiaformers     int         `json:"gaiaformers"`
	NavigationBonus int         `json:"navigation_bonus,omitempty"`
	EnteredVehicles []VehicleID `json:"entered_vehicles,omitempty"`
	// Types records planet types already settled, for one-time type bonuses.
	Types []world.PlanetType `json:"types,omitempty"`
}

func NewSeat(id, name string, kind SeatKind) *Seat {
	return &Seat{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Score:    StartingScore,
		Research: map[Track]int{},
	}
}

func (s *Seat) IsBot() bool {
	return s.Kind == SeatBot
}

// AssignFaction sets the faction and its starting supply. A chosen faction
// never changes.
func (s *Seat) AssignFaction(f Faction) bool {
	if s.Faction != "" {
		return false
	}
	s.Faction = f.ID
	s.Resources = f.Resources
	s.Power = f.Power
	s.Research = map[Track]int{}
	for _, t := range Tracks {
		s.Research[t] = f.Research[t]
	}
	if f.ID == FactionTerrans || f.ID == FactionBalTaks {
		s.Gaiaformers = 1
	}
	return true
}

// GainResources adds and clamps to the caps.
func (s *Seat) GainResources(r Resources) {
	s.Resources = s.Resources.Add(r).Clamp()
}

// Pay removes cost when the seat can afford it.
func (s *Seat) Pay(cost Resources) bool {
	if !s.Resources.Covers(cost) {
		return false
	}
	s.Resources = s.Resources.Sub(cost)
	return true
}

func (s *Seat) Level(t Track) int {
	return s.Research[t]
}

func (s *Seat) Range() int {
	return NavigationRange(s.Level(TrackNavigation)) + s.NavigationBonus + s.TempRange
}

func (s *Seat) HasTech(id TechID) bool {
	for _, t := range s.TechTiles {
		if t.ID == id {
			return true
		}
	}
	return false
}

// ActiveTech yields the owned tiles that are not covered.
func (s *Seat) ActiveTech() []TechTile {
	var out []TechTile
	for _, owned := range s.TechTiles {
		if owned.Covered {
			continue
		}
		if t, ok := LookupTech(owned.ID); ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *Seat) HasPassive(p PassiveID) bool {
	for _, t := range s.ActiveTech() {
		if t.Passive == p {
			return true
		}
	}
	return false
}

func (s *Seat) SpecialUsed(id SpecialID) bool {
	for _, u := range s.UsedSpecials {
		if u == id {
			return true
		}
	}
	return false
}

func (s *Seat) Entered(id VehicleID) bool {
	for _, v := range s.EnteredVehicles {
		if v == id {
			return true
		}
	}
	return false
}

func (s *Seat) HasType(t world.PlanetType) bool {
	for _, have := range s.Types {
		if have == t {
			return true
		}
	}
	return false
}

// ResetTurnFlags clears what only lasts one turn.
func (s *Seat) ResetTurnFlags() {
	s.MainActionTaken = false
	s.FollowUpBuild = false
	s.PendingTerraformSteps = 0
	s.TempRange = 0
}

// ResetRoundFlags clears what only lasts one round.
func (s *Seat) ResetRoundFlags() {
	s.ResetTurnFlags()
	s.Passed = false
	s.UsedSpecials = nil
}

func (s *Seat) Clone() *Seat {
	if s == nil {
		return nil
	}
	out := *s
	out.Research = cloneMap(s.Research)
	out.TechTiles = cloneSlice(s.TechTiles)
	if s.Federations != nil {
		out.Federations = make([]FederationRecord, len(s.Federations))
		for i, f := range s.Federations {
			f.Hexes = cloneSlice(f.Hexes)
			out.Federations[i] = f
		}
	}
	out.Ledger = cloneSlice(s.Ledger)
	out.UsedSpecials = cloneSlice(s.UsedSpecials)
	out.EnteredVehicles = cloneSlice(s.EnteredVehicles)
	out.Types = cloneSlice(s.Types)
	return &out
}
