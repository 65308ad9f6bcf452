package game

import (
	"encoding/json"
	"testing"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreIsExact(t *testing.T) {
	s, a, b := newMainSession(
		owned(tile(0, 0, world.PlanetTerra), "a", world.StructureMine),
		tile(1, 0, world.PlanetTerra),
		owned(tile(2, 0, world.PlanetDesert), "b", world.StructureTradingStation),
	)
	s.Vehicles = []Vehicle{{ID: "eclipse", Hex: world.Hex{Q: 3, R: 0}}}
	s.Logf("a", "warmup", "")
	s.TakeSnapshot("a")

	wantSeats := map[string]*Seat{"a": a.Clone(), "b": b.Clone()}
	wantTiles := world.CloneTiles(s.Tiles)
	wantVehicles := cloneVehicles(s.Vehicles)
	wantLog := cloneSlice(s.Log)
	wantPools := s.Pools.Clone()

	a.Pay(Resources{Ore: 1, Credits: 2})
	s.Tiles[1].Owner = "a"
	s.Tiles[1].Structure = world.StructureMine
	s.Tiles[2].Satellites = append(s.Tiles[2].Satellites, "a")
	s.Vehicles[0].Occupants = append(s.Vehicles[0].Occupants, "a")
	s.Pools.PowerActionsUsed["power_ore2"] = true
	a.AddScore(CategoryOther, 3, 1, "x")
	b.Power.Charge(2)
	s.Pending = &ChooseReward{Seat: "a", Options: []FederationRewardID{"fed_vp12"}}
	s.QueueOffers([]PowerOffer{{From: "a", To: "b", Amount: 2, VPCost: 1}})
	s.Logf("a", "build", "")

	require.True(t, s.RestoreSnapshot("a"))
	assert.Equal(t, wantSeats, s.Seats)
	assert.Equal(t, wantTiles, s.Tiles)
	assert.Equal(t, wantVehicles, s.Vehicles)
	assert.Equal(t, wantPools, s.Pools)
	assert.Equal(t, wantLog, s.Log)
	assert.Nil(t, s.Pending)
	assert.Empty(t, s.Offers)

	before, err := json.Marshal(wantSeats)
	require.NoError(t, err)
	after, err := json.Marshal(s.Seats)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSnapshot_RestoreKeepsAnswersToEarlierOffers(t *testing.T) {
	s, a, b := newMainSession(
		owned(tile(0, 0, world.PlanetTerra), "a", world.StructureMine),
		tile(1, 0, world.PlanetTerra),
	)
	b.Score = 20
	s.QueueOffers([]PowerOffer{{From: "a", To: "b", Amount: 2, VPCost: 1}})
	s.TakeSnapshot("a")
	wantA := a.Clone()

	require.Nil(t, s.ResolveOffer("b", true, false))
	wantB := b.Clone()

	a.Pay(Resources{Ore: 1, Credits: 2})
	s.Tiles[1].Owner = "a"
	s.Tiles[1].Structure = world.StructureMine
	s.QueueOffers([]PowerOffer{{From: "a", To: "b", Amount: 3, VPCost: 2}})
	require.Len(t, s.Offers, 1)

	require.True(t, s.RestoreSnapshot("a"))
	assert.Equal(t, wantA, s.Seats["a"])
	assert.Equal(t, wantB, s.Seats["b"])
	assert.Equal(t, "", s.Tiles[1].Owner)
	assert.Empty(t, s.Offers)
	assert.Equal(t, "accept_power", s.Log[len(s.Log)-1].Action)
}

func TestSnapshot_RestoreReopensNothingAfterNewSnapshot(t *testing.T) {
	s, _, b := newMainSession(tile(0, 0, world.PlanetTerra))
	b.Score = 20
	s.QueueOffers([]PowerOffer{{From: "a", To: "b", Amount: 2, VPCost: 1}})
	require.Nil(t, s.ResolveOffer("b", false, false))
	s.TakeSnapshot("a")

	require.True(t, s.RestoreSnapshot("a"))
	assert.Empty(t, s.Offers)
}

func TestSnapshot_RestoreTwice(t *testing.T) {
	s, _, _ := newMainSession(tile(0, 0, world.PlanetTerra))
	s.Tiles[0].Owner = "a"
	require.True(t, s.RestoreSnapshot("a"))
	s.Tiles[0].Owner = "b"
	require.True(t, s.RestoreSnapshot("a"))
	assert.Equal(t, "", s.Tiles[0].Owner)
	assert.False(t, s.RestoreSnapshot("nobody"))
}

func TestRoundClosure_AllPassedAdvancesRound(t *testing.T) {
	s, a, b := newMainSession()
	a.Passed = true
	s.NextTurnOrder = []string{"b", "a"}
	s.AdvanceTurn()
	assert.Equal(t, "b", s.CurrentSeat())
	assert.Equal(t, 1, s.Round)

	b.Passed = true
	s.NextTurnOrder = []string{"a", "b"}
	s.AdvanceTurn()
	assert.Equal(t, 2, s.Round)
	assert.False(t, a.Passed)
	assert.False(t, b.Passed)
	assert.Equal(t, []string{"a", "b"}, s.TurnOrder)
}

func TestRoundClosure_GameEndsAfterLastRound(t *testing.T) {
	s, a, b := newMainSession()
	s.Round = Rounds
	a.Passed, b.Passed = true, true
	s.AdvanceTurn()
	assert.Equal(t, PhaseGameEnd, s.Phase)
	assert.True(t, s.FinalScored)
	assert.False(t, s.ScoreEndGame())
}

func TestEndRound_ExpiresOffers(t *testing.T) {
	s, _, _ := newMainSession()
	s.Offers = []PowerOffer{{ID: 1, From: "a", To: "b", Amount: 2, VPCost: 1}}
	s.EndRound()
	assert.Empty(t, s.Offers)
}

func TestSetupFlow_PlacementOrder(t *testing.T) {
	s := NewSession("s", "setup", 42, fixedNow)
	for _, id := range []string{"a", "b", "c"} {
		seat := NewSeat(id, id, SeatHuman)
		seat.Ready = true
		require.True(t, s.AddSeat(seat))
	}
	tiles := []world.Tile{
		tile(0, 0, world.PlanetTerra), tile(1, 0, world.PlanetTerra),
		tile(0, 2, world.PlanetDesert), tile(1, 2, world.PlanetDesert), tile(2, 2, world.PlanetDesert),
		tile(0, 4, world.PlanetOxide),
		tile(5, 5, world.PlanetSpace),
	}
	require.Nil(t, s.Start(tiles))
	assert.Equal(t, PhaseFactionSelect, s.Phase)
	assert.Len(t, s.Pools.Boosters, 6)
	assert.Len(t, s.Pools.RoundMissions, Rounds)
	assert.Len(t, s.Pools.FinalMissions, 2)
	require.Len(t, s.Vehicles, 1)

	for id, f := range map[string]FactionID{"a": FactionTerrans, "b": FactionXenos, "c": FactionIvits} {
		faction, _ := LookupFaction(f)
		s.Seats[id].AssignFaction(faction)
	}
	s.Seats["b"].TurnOrderPref = 1
	require.Nil(t, s.ConfirmFactions())
	assert.Equal(t, []string{"b", "a", "c"}, s.TurnOrder)

	var order []string
	for _, p := range s.PlacementQueue {
		order = append(order, p.Seat+":"+string(p.Structure))
	}
	assert.Equal(t, []string{
		"b:mine", "a:mine", "a:mine", "b:mine", "b:mine", "c:planetary_institute",
	}, order)

	require.NotNil(t, s.PlaceStarting("a", world.Hex{Q: 0, R: 0}))
	require.Nil(t, s.PlaceStarting("b", world.Hex{Q: 0, R: 2}))
	require.Nil(t, s.PlaceStarting("a", world.Hex{Q: 0, R: 0}))
	require.Nil(t, s.PlaceStarting("a", world.Hex{Q: 1, R: 0}))
	require.Nil(t, s.PlaceStarting("b", world.Hex{Q: 1, R: 2}))
	require.Nil(t, s.PlaceStarting("b", world.Hex{Q: 2, R: 2}))
	require.Nil(t, s.PlaceStarting("c", world.Hex{Q: 0, R: 4}))
	assert.Equal(t, PhaseBonusSelect, s.Phase)
	assert.Equal(t, []string{"c", "a", "b"}, s.BonusQueue)

	for _, id := range []string{"c", "a", "b"} {
		require.Nil(t, s.SelectStartingBooster(id, s.Pools.Boosters[0]))
	}
	assert.Equal(t, PhaseMain, s.Phase)
	assert.Equal(t, 1, s.Round)
}

func TestFactionTaken_SameHomePlanet(t *testing.T) {
	s := NewSession("s", "x", 1, fixedNow)
	a := NewSeat("a", "a", SeatHuman)
	b := NewSeat("b", "b", SeatHuman)
	s.AddSeat(a)
	s.AddSeat(b)
	terrans, _ := LookupFaction(FactionTerrans)
	lantids, _ := LookupFaction(FactionLantids)
	a.AssignFaction(terrans)
	assert.True(t, s.FactionTaken("b", lantids))
	assert.False(t, s.FactionTaken("a", lantids))
}

func TestLog_IsBounded(t *testing.T) {
	s := NewSession("s", "x", 1, fixedNow)
	s.LogCap = 3
	for i := 0; i < 5; i++ {
		s.Logf("", "tick", "")
	}
	require.Len(t, s.Log, 3)
	assert.Equal(t, 3, s.Log[0].Seq)
	assert.Equal(t, 5, s.LogSeq)
}

func TestSession_MarshalTagsPending(t *testing.T) {
	s, _, _ := newMainSession()
	s.Pending = &ChooseTechTile{Seat: "a", Standard: []TechID{"tech_vp7"}}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var out struct {
		Pending struct {
			Kind   string `json:"kind"`
			Target string `json:"target"`
		} `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "choose_tech_tile", out.Pending.Kind)
	assert.Equal(t, "a", out.Pending.Target)
}
