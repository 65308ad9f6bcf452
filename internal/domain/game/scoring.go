package game

import (
	"sort"
	"strconv"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// Trigger scores the current round mission and active tech tiles for an
// event the seat caused times times.
func (s *Session) Trigger(seat *Seat, event Event, times int) {
	if s.Phase != PhaseMain || times <= 0 {
		return
	}
	if m, ok := s.Pools.CurrentMission(s.Round); ok && m.On == event {
		seat.AddScore(CategoryRoundMission, m.VP*times, s.Round, string(m.ID))
	}
	for _, t := range seat.ActiveTech() {
		if t.OnEvent == event {
			seat.AddScore(CategoryTechTile, t.EventVP*times, s.Round, string(t.ID))
		}
	}
}

// TriggerBuild fires the events of a finished build or upgrade.
func (s *Session) TriggerBuild(seat *Seat, kind world.StructureKind, planet world.PlanetType, terraformSteps int) {
	switch kind {
	case world.StructureMine:
		s.Trigger(seat, EventBuildMine, 1)
		if planet == world.PlanetGaia {
			s.Trigger(seat, EventBuildGaiaMine, 1)
		}
	case world.StructureTradingStation:
		s.Trigger(seat, EventBuildTradingStation, 1)
	case world.StructurePlanetaryInstitute, world.StructureAcademy:
		s.Trigger(seat, EventBuildBigBuilding, 1)
	}
	s.Trigger(seat, EventTerraformStep, terraformSteps)
}

// ScorePass records pass bonuses from the booster and advanced tiles.
// An entry is written even when it is worth nothing.
func (s *Session) ScorePass(seat *Seat) {
	if b, ok := LookupBooster(seat.Booster); ok && b.PassPer != "" {
		n := s.Count(seat.ID, b.PassPer)
		seat.AddScore(CategoryPassBonus, n*b.PassVP, s.Round, string(b.ID))
	}
	for _, t := range seat.ActiveTech() {
		if t.PassPer != "" {
			n := s.Count(seat.ID, t.PassPer)
			seat.AddScore(CategoryTechTile, n*t.PassVP, s.Round, string(t.ID))
		}
	}
}

// Standing is one seat's place in a final mission.
type Standing struct {
	Seat   string `json:"seat"`
	Value  int    `json:"value"`
	Points int    `json:"points"`
}

// RankFinalMission splits FinalMissionPayout across seats by value. Tied
// seats pool the places they cover and split them evenly, rounded down.
func RankFinalMission(values map[string]int, order []string) []Standing {
	standings := make([]Standing, 0, len(order))
	for _, id := range order {
		standings = append(standings, Standing{Seat: id, Value: values[id]})
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Value > standings[j].Value })
	for i := 0; i < len(standings); {
		j := i
		for j < len(standings) && standings[j].Value == standings[i].Value {
			j++
		}
		pool := 0
		for place := i; place < j && place < len(FinalMissionPayout); place++ {
			pool += FinalMissionPayout[place]
		}
		for k := i; k < j; k++ {
			standings[k].Points = pool / (j - i)
		}
		i = j
	}
	return standings
}

// ScoreEndGame applies final missions, track completion and leftovers once.
func (s *Session) ScoreEndGame() bool {
	if s.FinalScored {
		return false
	}
	s.FinalScored = true
	order := s.TurnOrder
	if len(order) == 0 {
		order = s.JoinOrder
	}
	for _, id := range s.Pools.FinalMissions {
		m, ok := LookupFinalMission(id)
		if !ok {
			continue
		}
		values := map[string]int{}
		for _, seatID := range order {
			values[seatID] = s.Count(seatID, m.Measure)
		}
		for _, st := range RankFinalMission(values, order) {
			s.Seats[st.Seat].AddScore(CategoryFinalMission, st.Points, s.Round, string(id)+" "+strconv.Itoa(st.Value))
		}
	}
	for _, seatID := range order {
		seat := s.Seats[seatID]
		for _, t := range Tracks {
			if lvl := seat.Level(t); lvl > 2 {
				seat.AddScore(CategoryTrackCompletion, 4*(lvl-2), s.Round, string(t))
			}
		}
		r := seat.Resources
		seat.AddScore(CategoryOther, (r.Credits+r.Ore+r.Knowledge)/3, s.Round, "leftover resources")
	}
	s.Logf("", "final_scoring", "")
	return true
}
