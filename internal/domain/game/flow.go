package game

import (
	"math/rand/v2"
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// Start leaves the lobby with the generated map. Every seat must be ready.
func (s *Session) Start(tiles []world.Tile) *Rejection {
	if s.Phase != PhaseLobby {
		return Reject(CodeWrongPhase, "game already started")
	}
	if len(s.JoinOrder) == 0 {
		return Reject(CodeInvalidOption, "no seats")
	}
	for _, id := range s.JoinOrder {
		if !s.Seats[id].Ready {
			return Reject(CodeInvalidOption, "seat %s not ready", id)
		}
	}
	s.Tiles = world.CloneTiles(tiles)
	s.TurnOrder = cloneSlice(s.JoinOrder)
	s.setupPools()
	s.placeVehicles()
	s.Phase = PhaseFactionSelect
	s.Logf("", "start", "")
	return nil
}

func (s *Session) setupPools() {
	rng := rand.New(rand.NewPCG(uint64(s.Seed), uint64(len(s.JoinOrder))))

	ids := BoosterIDs()
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	keep := ids[:min(len(ids), len(s.JoinOrder)+3)]
	sort.Slice(keep, func(i, j int) bool { return keep[i] < keep[j] })
	s.Pools.Boosters = keep

	missions := make([]MissionID, 0, len(roundMissions))
	for _, m := range roundMissions {
		missions = append(missions, m.ID)
	}
	rng.Shuffle(len(missions), func(i, j int) { missions[i], missions[j] = missions[j], missions[i] })
	s.Pools.RoundMissions = missions[:Rounds]

	finals := make([]FinalMissionID, 0, len(finalMissions))
	for _, m := range finalMissions {
		finals = append(finals, m.ID)
	}
	rng.Shuffle(len(finals), func(i, j int) { finals[i], finals[j] = finals[j], finals[i] })
	s.Pools.FinalMissions = finals[:2]

	s.Pools.StandardTech = StandardTechIDs()
	s.Pools.AdvancedTech = AdvancedTechIDs()
	s.Pools.PowerActionsUsed = map[PowerActionID]bool{}
	s.Pools.TrackTop = map[Track]string{}
	s.Pools.FederationRewards = map[FederationRewardID]int{}
	rewards := FederationRewardIDs()
	for _, id := range rewards {
		s.Pools.FederationRewards[id] = FederationRewardCopies
	}
	top := rewards[rng.IntN(len(rewards))]
	s.Pools.TerraformingTop = top
	s.Pools.FederationRewards[top]--
}

// placeVehicles puts each vehicle on the first empty space hex of sectors
// 1 to 4.
func (s *Session) placeVehicles() {
	s.Vehicles = nil
	for i, tmpl := range vehicleTemplates {
		for _, t := range s.Tiles {
			if t.Sector == i+1 && t.Type == world.PlanetSpace {
				v := tmpl.Clone()
				v.Hex = t.Hex
				s.Vehicles = append(s.Vehicles, v)
				break
			}
		}
	}
}

// ConfirmFactions orders seats by turn order preference and opens starting
// placement.
func (s *Session) ConfirmFactions() *Rejection {
	if s.Phase != PhaseFactionSelect {
		return Reject(CodeWrongPhase, "not selecting factions")
	}
	for _, id := range s.JoinOrder {
		if s.Seats[id].Faction == "" {
			return Reject(CodeInvalidOption, "seat %s has no faction", id)
		}
	}
	order := cloneSlice(s.JoinOrder)
	pref := func(id string) int {
		if p := s.Seats[id].TurnOrderPref; p > 0 {
			return p
		}
		return MaxSeats + 1
	}
	sort.SliceStable(order, func(i, j int) bool { return pref(order[i]) < pref(order[j]) })
	s.TurnOrder = order

	var queue []Placement
	var ivits []string
	for _, id := range order {
		if s.Seats[id].Is(FactionIvits) {
			ivits = append(ivits, id)
			continue
		}
		queue = append(queue, Placement{Seat: id, Structure: world.StructureMine})
	}
	for i := len(order) - 1; i >= 0; i-- {
		if !s.Seats[order[i]].Is(FactionIvits) {
			queue = append(queue, Placement{Seat: order[i], Structure: world.StructureMine})
		}
	}
	for _, id := range order {
		f, _ := LookupFaction(s.Seats[id].Faction)
		for extra := 2; extra < f.StartingMines; extra++ {
			queue = append(queue, Placement{Seat: id, Structure: world.StructureMine})
		}
	}
	for _, id := range ivits {
		queue = append(queue, Placement{Seat: id, Structure: world.StructurePlanetaryInstitute})
	}
	s.PlacementQueue = queue
	s.Phase = PhaseStartingPlacement
	s.Logf("", "factions_confirmed", "")
	return nil
}

// FactionTaken reports whether another seat already picked a faction with
// the same home planet.
func (s *Session) FactionTaken(seatID string, f Faction) bool {
	for id, seat := range s.Seats {
		if id == seatID || seat.Faction == "" {
			continue
		}
		if other, ok := LookupFaction(seat.Faction); ok && other.Home == f.Home {
			return true
		}
	}
	return false
}

// PlaceStarting puts the head placement on h.
func (s *Session) PlaceStarting(seatID string, h world.Hex) *Rejection {
	if s.Phase != PhaseStartingPlacement || len(s.PlacementQueue) == 0 {
		return Reject(CodeWrongPhase, "not placing")
	}
	head := s.PlacementQueue[0]
	if head.Seat != seatID {
		return Reject(CodeNotYourTurn, "placement belongs to %s", head.Seat)
	}
	seat := s.Seats[seatID]
	tile, ok := s.TileAt(h)
	if !ok || tile.Owner != "" || tile.Type != seat.HomeType() {
		return Reject(CodeInvalidTarget, "starting structures go on empty home planets")
	}
	tile.Owner = seatID
	tile.Structure = head.Structure
	s.RecordType(seat, tile.Type)
	s.PlacementQueue = s.PlacementQueue[1:]
	s.Logf(seatID, "place", string(head.Structure))
	if len(s.PlacementQueue) == 0 {
		s.PlacementQueue = nil
		s.Phase = PhaseBonusSelect
		for i := len(s.TurnOrder) - 1; i >= 0; i-- {
			s.BonusQueue = append(s.BonusQueue, s.TurnOrder[i])
		}
	}
	return nil
}

// RecordType notes a newly settled planet type. It reports whether the type
// is new for the seat.
func (s *Session) RecordType(seat *Seat, t world.PlanetType) bool {
	if !t.IsPlanet() || seat.HasType(t) {
		return false
	}
	seat.Types = append(seat.Types, t)
	return true
}

// SelectStartingBooster hands the head bonus selector a booster.
func (s *Session) SelectStartingBooster(seatID string, id BoosterID) *Rejection {
	if s.Phase != PhaseBonusSelect || len(s.BonusQueue) == 0 {
		return Reject(CodeWrongPhase, "not selecting boosters")
	}
	if s.BonusQueue[0] != seatID {
		return Reject(CodeNotYourTurn, "booster pick belongs to %s", s.BonusQueue[0])
	}
	if !s.Pools.TakeBooster(id) {
		return Reject(CodeInvalidOption, "booster %s not available", id)
	}
	s.Seats[seatID].Booster = id
	s.BonusQueue = s.BonusQueue[1:]
	s.Logf(seatID, "select_booster", string(id))
	if len(s.BonusQueue) == 0 {
		s.BonusQueue = nil
		s.Phase = PhaseMain
		s.StartRound(1)
	}
	return nil
}

// StartRound runs the gaia phase and income for round n.
func (s *Session) StartRound(n int) {
	s.Round = n
	s.Pools.PowerActionsUsed = map[PowerActionID]bool{}
	for _, seat := range s.Seats {
		seat.ResetRoundFlags()
	}
	s.gaiaPhase()
	s.Stage = StageIncome
	s.Logf("", "round_start", "")
	s.IncomeQueue = nil
	for _, seat := range s.OrderedSeats() {
		if choice, open := s.ApplyIncome(seat); open {
			s.IncomeQueue = append(s.IncomeQueue, choice)
		}
	}
	if len(s.IncomeQueue) == 0 {
		s.BeginActionPhase()
	}
}

func (s *Session) gaiaPhase() {
	for _, seat := range s.Seats {
		seat.Power.ReturnFromGaia(seat.Is(FactionTerrans))
	}
	for i := range s.Tiles {
		t := &s.Tiles[i]
		if t.Type == world.PlanetTransdim && t.Gaiaformer != "" {
			t.Type = world.PlanetGaia
		}
	}
}

func (s *Session) BeginActionPhase() {
	s.Stage = StageActions
	s.CurrentSeatIndex = 0
	if len(s.TurnOrder) == 0 {
		return
	}
	if s.Seats[s.TurnOrder[0]].Passed {
		s.AdvanceTurn()
		return
	}
	s.BeginTurn(s.TurnOrder[0])
}

// BeginTurn makes seatID the turn holder and snapshots the session.
func (s *Session) BeginTurn(seatID string) {
	if seat, ok := s.Seats[seatID]; ok {
		seat.ResetTurnFlags()
	}
	s.TakeSnapshot(seatID)
}

// CurrentSeat is whoever the session is waiting on for its main flow.
func (s *Session) CurrentSeat() string {
	switch s.Phase {
	case PhaseStartingPlacement:
		if len(s.PlacementQueue) > 0 {
			return s.PlacementQueue[0].Seat
		}
	case PhaseBonusSelect:
		if len(s.BonusQueue) > 0 {
			return s.BonusQueue[0]
		}
	case PhaseMain:
		if s.Stage == StageIncome {
			if len(s.IncomeQueue) > 0 {
				return s.IncomeQueue[0].Seat
			}
			return ""
		}
		if s.CurrentSeatIndex >= 0 && s.CurrentSeatIndex < len(s.TurnOrder) {
			return s.TurnOrder[s.CurrentSeatIndex]
		}
	}
	return ""
}

func (s *Session) AllPassed() bool {
	for _, id := range s.TurnOrder {
		if !s.Seats[id].Passed {
			return false
		}
	}
	return true
}

// AdvanceTurn hands the turn to the next seat that has not passed, or
// closes the round.
func (s *Session) AdvanceTurn() {
	if s.AllPassed() {
		s.EndRound()
		return
	}
	n := len(s.TurnOrder)
	for step := 1; step <= n; step++ {
		idx := (s.CurrentSeatIndex + step) % n
		if !s.Seats[s.TurnOrder[idx]].Passed {
			s.CurrentSeatIndex = idx
			s.BeginTurn(s.TurnOrder[idx])
			return
		}
	}
}

// EndRound expires open offers and moves to the next round or the end.
func (s *Session) EndRound() {
	s.ExpireOffers()
	s.Pending = nil
	s.Logf("", "round_end", "")
	for _, seat := range s.Seats {
		seat.Passed = false
	}
	if len(s.NextTurnOrder) == len(s.TurnOrder) {
		s.TurnOrder = s.NextTurnOrder
	}
	s.NextTurnOrder = nil
	if s.Round >= Rounds {
		s.Phase = PhaseGameEnd
		s.Stage = StageNone
		s.TurnStart = map[string]*Snapshot{}
		s.ScoreEndGame()
		return
	}
	s.StartRound(s.Round + 1)
}
