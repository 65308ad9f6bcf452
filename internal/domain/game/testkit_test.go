package game

import (
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func tile(q, r int, t world.PlanetType) world.Tile {
	return world.Tile{Hex: world.Hex{Q: q, R: r}, Sector: 1, Type: t}
}

// newMainSession builds a two seat session already in the action stage of
// round 1 with the given tiles.
func newMainSession(tiles ...world.Tile) (*Session, *Seat, *Seat) {
	s := NewSession("s1", "test", 7, fixedNow)
	a := NewSeat("a", "Alice", SeatHuman)
	b := NewSeat("b", "Bob", SeatHuman)
	s.AddSeat(a)
	s.AddSeat(b)
	fa, _ := LookupFaction(FactionTerrans)
	fb, _ := LookupFaction(FactionXenos)
	a.AssignFaction(fa)
	b.AssignFaction(fb)
	s.Tiles = tiles
	s.TurnOrder = []string{"a", "b"}
	s.Phase = PhaseMain
	s.Stage = StageActions
	s.Round = 1
	s.Pools = Pools{
		Boosters:          BoosterIDs(),
		StandardTech:      StandardTechIDs(),
		AdvancedTech:      AdvancedTechIDs(),
		PowerActionsUsed:  map[PowerActionID]bool{},
		FederationRewards: map[FederationRewardID]int{"fed_vp12": 1, "fed_vp7_ore2": 2},
		RoundMissions:     []MissionID{"mission_mine2", "mission_trading3", "mission_big5", "mission_federation5", "mission_gaia3", "mission_research2"},
		FinalMissions:     []FinalMissionID{"final_structures", "final_types"},
		TrackTop:          map[Track]string{},
	}
	s.BeginTurn("a")
	return s, a, b
}

func owned(t world.Tile, seat string, kind world.StructureKind) world.Tile {
	t.Owner = seat
	t.Structure = kind
	return t
}
