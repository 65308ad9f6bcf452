package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

func requireCode(t *testing.T, err error, code game.RejectCode) {
	t.Helper()
	rej, ok := game.AsRejection(err)
	require.True(t, ok, "expected rejection, got %v", err)
	assert.Equal(t, code, rej.Code)
}

func TestEngine_BuildUsesMainAction(t *testing.T) {
	s := newGame(
		structure(planet(0, 0, world.PlanetTerra), "a", world.StructureMine),
		planet(1, 0, world.PlanetTerra),
		planet(0, 1, world.PlanetTerra),
	)
	a := s.Seats["a"]
	before := a.Resources

	require.NoError(t, Engine{}.Apply(s, "a", Build{Hex: hex(1, 0)}))
	a = s.Seats["a"]
	assert.Equal(t, before.Ore-1, a.Resources.Ore)
	assert.Equal(t, before.Credits-2, a.Resources.Credits)
	assert.True(t, a.MainActionTaken)
	tile, _ := s.TileAt(hex(1, 0))
	assert.Equal(t, "a", tile.Owner)
	assert.Equal(t, game.StartingScore+2, a.Score, "round mission pays for the mine")
	require.NotEmpty(t, s.Log)
	assert.Equal(t, string(KindBuild), s.Log[len(s.Log)-1].Action)

	requireCode(t, Engine{}.Apply(s, "a", Build{Hex: hex(0, 1)}), game.CodeMainActionTaken)
}

func TestEngine_RejectionLeavesSessionUnchanged(t *testing.T) {
	s := newGame(
		structure(planet(0, 0, world.PlanetTerra), "a", world.StructureMine),
		planet(1, 0, world.PlanetTerra),
	)
	before, err := json.Marshal(s)
	require.NoError(t, err)

	requireCode(t, Engine{}.Apply(s, "b", Build{Hex: hex(1, 0)}), game.CodeNotYourTurn)
	requireCode(t, Engine{}.Apply(s, "a", Build{Hex: hex(9, 9)}), game.CodeInvalidTarget)
	requireCode(t, Engine{}.Apply(s, "a", Upgrade{Hex: hex(0, 0), To: world.StructureAcademy}), game.CodeInvalidTarget)

	after, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestEngine_UnknownSeatIsUserFacing(t *testing.T) {
	s := newGame()
	err := Engine{}.Apply(s, "ghost", EndTurn{})
	rej, ok := game.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, game.CodeNotYourSeat, rej.Code)
	assert.True(t, rej.UserFacing)
}

func TestEngine_EndTurnNeedsMainAction(t *testing.T) {
	s := newGame(
		structure(planet(0, 0, world.PlanetTerra), "a", world.StructureMine),
		planet(1, 0, world.PlanetTerra),
	)
	requireCode(t, Engine{}.Apply(s, "a", EndTurn{}), game.CodeMainActionMissing)

	require.NoError(t, Engine{}.Apply(s, "a", Build{Hex: hex(1, 0)}))
	require.NoError(t, Engine{}.Apply(s, "a", EndTurn{}))
	assert.Equal(t, "b", s.CurrentSeat())
	assert.False(t, s.Seats["b"].MainActionTaken)
}

func TestEngine_FreeActionsDoNotEndTurn(t *testing.T) {
	s := newGame()
	a := s.Seats["a"]
	credits := a.Resources.Credits

	require.NoError(t, Engine{}.Apply(s, "a", Convert{Conversion: ConvertOreCredit, Count: 1}))
	assert.Equal(t, credits+1, s.Seats["a"].Resources.Credits)
	assert.False(t, s.Seats["a"].MainActionTaken)
	assert.Equal(t, "a", s.CurrentSeat())
}

func TestEngine_OfferIsAnsweredOutOfTurn(t *testing.T) {
	s := newGame(
		structure(planet(0, 0, world.PlanetTerra), "a", world.StructureMine),
		planet(1, 0, world.PlanetTerra),
		structure(planet(2, 0, world.PlanetDesert), "b", world.StructureTradingStation),
		planet(3, 0, world.PlanetDesert),
	)
	require.NoError(t, Engine{}.Apply(s, "a", Build{Hex: hex(1, 0)}))
	offer, ok := s.NextOffer("b")
	require.True(t, ok)
	assert.Equal(t, 2, offer.Amount)
	assert.Equal(t, 1, offer.VPCost)

	require.NoError(t, Engine{}.Apply(s, "a", EndTurn{}))
	requireCode(t, Engine{}.Apply(s, "b", Build{Hex: hex(3, 0)}), game.CodePendingOpen)

	require.NoError(t, Engine{}.Apply(s, "b", RespondOffer{Accept: true}))
	b := s.Seats["b"]
	assert.Equal(t, game.StartingScore-1, b.Score)
	assert.Equal(t, -1, b.Breakdown()[game.CategoryPowerReceivedCost])
	_, ok = s.NextOffer("b")
	assert.False(t, ok)
}

func TestEngine_RespondWithoutOfferRejected(t *testing.T) {
	s := newGame()
	requireCode(t, Engine{}.Apply(s, "b", RespondOffer{Accept: true}), game.CodeNoPending)
}

func TestEngine_ResetRestoresTurnStart(t *testing.T) {
	s := newGame(
		structure(planet(0, 0, world.PlanetTerra), "a", world.StructureMine),
		planet(1, 0, world.PlanetTerra),
		structure(planet(2, 0, world.PlanetDesert), "b", world.StructureTradingStation),
	)
	before, err := json.Marshal(s)
	require.NoError(t, err)

	require.NoError(t, Engine{}.Apply(s, "a", Build{Hex: hex(1, 0)}))
	require.NoError(t, Engine{}.Apply(s, "a", ResetTurn{}))

	a := s.Seats["a"]
	assert.False(t, a.MainActionTaken)
	tile, _ := s.TileAt(hex(1, 0))
	assert.Empty(t, tile.Owner)
	assert.Empty(t, s.Offers)
	assert.Equal(t, string(KindResetTurn), s.Log[len(s.Log)-1].Action)

	var want, got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(before, &want))
	after, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(after, &got))
	for _, key := range []string{"seats", "tiles", "pools"} {
		assert.JSONEq(t, string(want[key]), string(got[key]), key)
	}

	require.NoError(t, Engine{}.Apply(s, "a", Build{Hex: hex(1, 0)}))
	require.NoError(t, Engine{}.Apply(s, "a", ResetTurn{}))
	tile, _ = s.TileAt(hex(1, 0))
	assert.Empty(t, tile.Owner)
}

func TestEngine_PassRotatesAndClosesRound(t *testing.T) {
	s := newGame()
	boosters := game.BoosterIDs()

	requireCode(t, Engine{}.Apply(s, "a", Pass{}), game.CodeInvalidOption)
	require.NoError(t, Engine{}.Apply(s, "a", Pass{Booster: boosters[0]}))
	assert.True(t, s.Seats["a"].Passed)
	assert.Equal(t, boosters[0], s.Seats["a"].Booster)
	assert.Equal(t, "b", s.CurrentSeat())
	assert.False(t, s.Pools.HasBooster(boosters[0]))

	require.NoError(t, Engine{}.Apply(s, "b", Pass{Booster: boosters[1]}))
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, []string{"a", "b"}, s.TurnOrder)
	assert.False(t, s.Seats["a"].Passed)
	assert.False(t, s.Seats["b"].Passed)
}

func TestEngine_UpgradeOpensTechChoice(t *testing.T) {
	s := newGame(structure(planet(0, 0, world.PlanetTerra), "a", world.StructureTradingStation))

	require.NoError(t, Engine{}.Apply(s, "a", Upgrade{Hex: hex(0, 0), To: world.StructureResearchLab}))
	require.NotNil(t, s.Pending)
	assert.Equal(t, "a", s.Pending.Target())
	requireCode(t, Engine{}.Apply(s, "a", EndTurn{}), game.CodePendingOpen)
	requireCode(t, Engine{}.Apply(s, "a", ChooseTechTile{Tile: "tech_missing"}), game.CodeInvalidOption)

	require.NoError(t, Engine{}.Apply(s, "a", ChooseTechTile{Tile: "tech_vp7", Track: game.TrackAI}))
	a := s.Seats["a"]
	assert.Nil(t, s.Pending)
	assert.True(t, a.HasTech("tech_vp7"))
	assert.Equal(t, 1, a.Level(game.TrackAI))
	assert.Equal(t, 7, a.Breakdown()[game.CategoryTechTile])
	require.NoError(t, Engine{}.Apply(s, "a", EndTurn{}))
}

func TestEngine_WrongPhase(t *testing.T) {
	s := newGame()
	requireCode(t, Engine{}.Apply(s, "a", ChooseFaction{Faction: game.FactionGleens}), game.CodeWrongPhase)
	requireCode(t, Engine{}.Apply(s, "a", AutoIncome{}), game.CodeWrongPhase)
}

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand("build", json.RawMessage(`{"hex":{"q":1,"r":-1}}`))
	require.NoError(t, err)
	assert.Equal(t, Build{Hex: hex(1, -1)}, cmd)

	cmd, err = DecodeCommand(" end_turn ", nil)
	require.NoError(t, err)
	assert.Equal(t, EndTurn{}, cmd)

	_, err = DecodeCommand("teleport", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = DecodeCommand("build", json.RawMessage(`{"hex":"nowhere"}`))
	assert.ErrorIs(t, err, ErrInvalidCommandParams)
}

func TestIsSupportedKind(t *testing.T) {
	for kind := range actionRegistry() {
		assert.True(t, IsSupportedKind(kind), kind)
	}
	assert.False(t, IsSupportedKind(Kind("teleport")))
}
