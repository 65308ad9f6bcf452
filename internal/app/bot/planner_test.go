package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

func tileAt(q, r int, t world.PlanetType) world.Tile {
	return world.Tile{Hex: world.Hex{Q: q, R: r}, Sector: 1, Type: t}
}

func mineOf(t world.Tile, seat string) world.Tile {
	t.Owner = seat
	t.Structure = world.StructureMine
	return t
}

// botGame is a two seat game in the action stage with bot a to move.
func botGame(kindB game.SeatKind, tiles ...world.Tile) *game.Session {
	s := game.NewSession("s1", "bots", 3, func() time.Time { return time.Unix(1700000000, 0).UTC() })
	a := game.NewSeat("a", "A", game.SeatBot)
	b := game.NewSeat("b", "B", kindB)
	s.AddSeat(a)
	s.AddSeat(b)
	fa, _ := game.LookupFaction(game.FactionTerrans)
	fb, _ := game.LookupFaction(game.FactionXenos)
	a.AssignFaction(fa)
	b.AssignFaction(fb)
	s.Tiles = tiles
	s.TurnOrder = []string{"a", "b"}
	s.Phase = game.PhaseMain
	s.Stage = game.StageActions
	s.Round = 1
	s.Pools = game.Pools{
		Boosters:          game.BoosterIDs(),
		StandardTech:      game.StandardTechIDs(),
		AdvancedTech:      game.AdvancedTechIDs(),
		PowerActionsUsed:  map[game.PowerActionID]bool{},
		FederationRewards: map[game.FederationRewardID]int{"fed_vp12": 1},
		RoundMissions:     []game.MissionID{"mission_mine2", "mission_trading3", "mission_big5", "mission_federation5", "mission_gaia3", "mission_research2"},
		FinalMissions:     []game.FinalMissionID{"final_structures", "final_types"},
		TrackTop:          map[game.Track]string{},
	}
	s.BeginTurn("a")
	return s
}

func TestPlanner_BuildsHomeBeforeTerraform(t *testing.T) {
	s := botGame(game.SeatHuman,
		mineOf(tileAt(0, 0, world.PlanetTerra), "a"),
		tileAt(1, 0, world.PlanetOxide),
		tileAt(0, 1, world.PlanetTerra),
		tileAt(8, 0, world.PlanetTerra),
	)
	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, "a", turn.SeatID)
	require.GreaterOrEqual(t, len(turn.Candidates), 3)
	assert.Equal(t, action.Build{Hex: world.Hex{Q: 0, R: 1}}, turn.Candidates[0])
	assert.Equal(t, action.Build{Hex: world.Hex{Q: 1, R: 0}}, turn.Candidates[1])
	assert.NotContains(t, turn.Candidates, action.Build{Hex: world.Hex{Q: 8, R: 0}}, "too far for one QIC")
	assert.IsType(t, action.Pass{}, turn.Candidates[len(turn.Candidates)-1])
}

func TestPlanner_EndsTurnAfterMainAction(t *testing.T) {
	s := botGame(game.SeatHuman)
	s.Seats["a"].MainActionTaken = true
	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, []action.Command{action.EndTurn{}}, turn.Candidates)
}

func TestPlanner_WaitsForHumans(t *testing.T) {
	s := botGame(game.SeatHuman)
	s.CurrentSeatIndex = 1
	_, ok := Planner{}.Next(s)
	assert.False(t, ok)
}

func TestPlanner_ResolvesInteractionOutOfTurn(t *testing.T) {
	s := botGame(game.SeatBot)
	s.Pending = &game.ChooseReward{Seat: "b", Options: []game.FederationRewardID{"fed_vp12"}}
	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, "b", turn.SeatID)
	assert.Equal(t, []action.Command{action.ChooseReward{Reward: "fed_vp12"}}, turn.Candidates)
}

func TestPlanner_TechTilePrefersLowestTrack(t *testing.T) {
	s := botGame(game.SeatHuman)
	s.Pending = &game.ChooseTechTile{Seat: "a", Standard: []game.TechID{"tech_gaia_vp3"}}
	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	require.Len(t, turn.Candidates, 2)
	pick := turn.Candidates[0].(action.ChooseTechTile)
	assert.Equal(t, game.TechID("tech_gaia_vp3"), pick.Tile)
	assert.Equal(t, 0, s.Seats["a"].Level(pick.Track))
}

func TestPlanner_AllBotTableConfirmsFactions(t *testing.T) {
	s := game.NewSession("s1", "bots", 3, nil)
	s.AddSeat(game.NewSeat("a", "A", game.SeatBot))
	s.AddSeat(game.NewSeat("b", "B", game.SeatBot))
	s.Phase = game.PhaseFactionSelect

	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, "a", turn.SeatID)
	assert.IsType(t, action.ChooseFaction{}, turn.Candidates[0])

	fa, _ := game.LookupFaction(game.FactionTerrans)
	fb, _ := game.LookupFaction(game.FactionXenos)
	s.Seats["a"].AssignFaction(fa)
	s.Seats["b"].AssignFaction(fb)
	turn, ok = Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, []action.Command{action.ConfirmFactions{}}, turn.Candidates)
}

func TestPlanner_TechTileFallsBackToAdvanced(t *testing.T) {
	s := botGame(game.SeatHuman)
	a := s.Seats["a"]
	a.GreenFederations = 1
	a.Research[game.TrackTerraforming] = game.AdvancedTrackLevel
	a.TechTiles = []game.OwnedTech{{ID: "tech_ore_qic"}}
	s.Pending = &game.ChooseTechTile{Seat: "a", Advanced: []game.TechID{"adv_pass_fed3"}}

	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	require.Len(t, turn.Candidates, 1)
	assert.Equal(t, action.ChooseTechTile{Tile: "adv_pass_fed3"}, turn.Candidates[0])

	require.NoError(t, action.Engine{}.Apply(s, "a", turn.Candidates[0]))
	turn, ok = Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, []action.Command{action.ConfirmCover{Tile: "tech_ore_qic"}}, turn.Candidates)
	require.NoError(t, action.Engine{}.Apply(s, "a", turn.Candidates[0]))

	assert.Nil(t, s.Pending)
	assert.Equal(t, 0, a.GreenFederations)
	assert.True(t, a.TechTiles[0].Covered)
}

func TestPlanner_AdvancedTileTakesStepWhenAffordable(t *testing.T) {
	s := botGame(game.SeatHuman)
	a := s.Seats["a"]
	a.GreenFederations = 1
	a.Research[game.TrackAI] = game.AdvancedTrackLevel - 1
	s.Pending = &game.ChooseTechTile{Seat: "a", Advanced: []game.TechID{"adv_pass_types1"}}

	turn, ok := Planner{}.Next(s)
	require.True(t, ok)
	assert.Equal(t, []action.Command{
		action.ChooseTechTile{Tile: "adv_pass_types1", Track: game.TrackAI},
		action.ChooseTechTile{Tile: "adv_pass_types1"},
	}, turn.Candidates)
}
