package bot

import (
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// Build candidate weights.
const (
	scoreHome          = 100
	scoreMaturedGaia   = 90
	scoreResourceCombo = 70
	scoreTerraform     = 50
	penaltyPerStep     = 10
	penaltyPerQIC      = 5
	maxRangeQIC        = 1
)

// Turn is the seat a bot should move for and the commands to try, best
// first. The executor revalidates each one.
type Turn struct {
	SeatID     string
	Candidates []action.Command
}

type Planner struct{}

// Next finds a bot seat the session waits on. Interactions come first since
// they may target a seat out of turn.
func (p Planner) Next(s *game.Session) (Turn, bool) {
	for _, id := range s.JoinOrder {
		seat := s.Seats[id]
		if !seat.IsBot() {
			continue
		}
		if cands := p.interaction(s, seat); len(cands) > 0 {
			return Turn{SeatID: id, Candidates: cands}, true
		}
	}
	switch s.Phase {
	case game.PhaseFactionSelect:
		return p.factionTurn(s)
	case game.PhaseGameEnd, game.PhaseLobby:
		return Turn{}, false
	}
	id := s.CurrentSeat()
	seat, ok := s.Seat(id)
	if !ok || !seat.IsBot() {
		return Turn{}, false
	}
	cands := p.Propose(s, seat)
	if len(cands) == 0 {
		return Turn{}, false
	}
	return Turn{SeatID: id, Candidates: cands}, true
}

func (p Planner) interaction(s *game.Session, seat *game.Seat) []action.Command {
	if _, ok := s.NextOffer(seat.ID); ok {
		return []action.Command{action.RespondOffer{Accept: true}}
	}
	if s.Pending == nil || s.Pending.Target() != seat.ID {
		return nil
	}
	switch pending := s.Pending.(type) {
	case *game.ChooseTechTile:
		var out []action.Command
		for _, id := range pending.Standard {
			tile, _ := game.LookupTech(id)
			track := tile.Track
			if track == "" {
				track = lowestTrack(s, seat)
			}
			if track != "" {
				out = append(out, action.ChooseTechTile{Tile: id, Track: track})
			}
			out = append(out, action.ChooseTechTile{Tile: id})
		}
		// Advanced tiles come last; they are the only way out when every
		// standard tile is already owned.
		for _, id := range pending.Advanced {
			tile, _ := game.LookupTech(id)
			if advancedStepFits(s, seat, tile.Track) {
				out = append(out, action.ChooseTechTile{Tile: id, Track: tile.Track})
			}
			out = append(out, action.ChooseTechTile{Tile: id})
		}
		return out
	case *game.ChooseReward:
		out := make([]action.Command, 0, len(pending.Options))
		for _, id := range pending.Options {
			out = append(out, action.ChooseReward{Reward: id})
		}
		return out
	case *game.ChooseCover:
		out := make([]action.Command, 0, len(pending.Options))
		for _, id := range pending.Options {
			out = append(out, action.ConfirmCover{Tile: id})
		}
		return out
	}
	return nil
}

// advancedStepFits reports whether the cover that follows an advanced tile
// can also take the track step. The top level needs a second green
// federation.
func advancedStepFits(s *game.Session, seat *game.Seat, track game.Track) bool {
	if seat.Level(track)+1 == game.MaxTrackLevel && seat.GreenFederations < 2 {
		return false
	}
	return s.CanAdvance(seat, track) == nil
}

func (p Planner) factionTurn(s *game.Session) (Turn, bool) {
	allChosen, allBots := true, true
	for _, id := range s.JoinOrder {
		seat := s.Seats[id]
		if !seat.IsBot() {
			allBots = false
		}
		if seat.Faction != "" {
			continue
		}
		allChosen = false
		if !seat.IsBot() {
			continue
		}
		var out []action.Command
		for _, fid := range game.FactionIDs() {
			f, _ := game.LookupFaction(fid)
			if !s.FactionTaken(id, f) {
				out = append(out, action.ChooseFaction{Faction: fid})
			}
		}
		return Turn{SeatID: id, Candidates: out}, len(out) > 0
	}
	// humans confirm mixed tables themselves
	if allChosen && allBots && len(s.JoinOrder) > 0 {
		return Turn{SeatID: s.JoinOrder[0], Candidates: []action.Command{action.ConfirmFactions{}}}, true
	}
	return Turn{}, false
}

// Propose lists the commands a bot would try for its own turn.
func (p Planner) Propose(s *game.Session, seat *game.Seat) []action.Command {
	switch s.Phase {
	case game.PhaseStartingPlacement:
		var out []action.Command
		for _, t := range s.Tiles {
			if t.Owner == "" && t.Type == seat.HomeType() {
				out = append(out, action.PlaceStructure{Hex: t.Hex})
			}
		}
		return out
	case game.PhaseBonusSelect:
		out := make([]action.Command, 0, len(s.Pools.Boosters))
		for _, id := range s.Pools.Boosters {
			out = append(out, action.SelectBooster{Booster: id})
		}
		return out
	case game.PhaseMain:
	default:
		return nil
	}
	if s.Stage == game.StageIncome {
		return []action.Command{action.AutoIncome{}, action.FinishIncome{}}
	}

	if seat.MainActionTaken {
		var out []action.Command
		if seat.FollowUpBuild {
			out = append(out, p.builds(s, seat)...)
		}
		return append(out, action.EndTurn{})
	}

	var out []action.Command
	out = append(out, p.upgrades(s, seat)...)
	out = append(out, p.builds(s, seat)...)
	if track := lowestTrack(s, seat); track != "" {
		out = append(out, action.Research{Track: track})
	}
	out = append(out, p.powerActions(s, seat)...)
	return append(out, p.pass(s))
}

// upgrades turns mines next to other seats into trading stations.
func (p Planner) upgrades(s *game.Session, seat *game.Seat) []action.Command {
	var out []action.Command
	for _, t := range s.Tiles {
		if t.Owner != seat.ID || t.Structure != world.StructureMine {
			continue
		}
		cost, rej := s.UpgradeCost(seat, t.Hex, world.StructureTradingStation)
		if rej != nil || cost.Credits != game.TradingStationNeighborCredits || !seat.Resources.Covers(cost) {
			continue
		}
		out = append(out, action.Upgrade{Hex: t.Hex, To: world.StructureTradingStation})
	}
	return out
}

type buildOption struct {
	hex   world.Hex
	score int
}

func (p Planner) builds(s *game.Session, seat *game.Seat) []action.Command {
	var options []buildOption
	for _, t := range s.Tiles {
		if !t.Type.IsPlanet() || t.Owner != "" {
			continue
		}
		cost, rej := s.ComputeBuildCost(seat, t.Hex)
		if rej != nil || cost.RangeQIC > maxRangeQIC || !seat.Resources.Covers(cost.Resources) {
			continue
		}
		if _, present := s.Distance(seat.ID, t.Hex); !present {
			continue
		}
		options = append(options, buildOption{hex: t.Hex, score: buildScore(seat, t, cost)})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].score > options[j].score })
	out := make([]action.Command, 0, len(options))
	for _, o := range options {
		out = append(out, action.Build{Hex: o.hex})
	}
	return out
}

func buildScore(seat *game.Seat, t world.Tile, cost game.BuildCost) int {
	var score int
	switch {
	case t.Type == seat.HomeType():
		score = scoreHome
	case cost.Gaiaformer:
		score = scoreMaturedGaia
	case t.Type == world.PlanetGaia:
		score = scoreResourceCombo
	default:
		score = scoreTerraform - penaltyPerStep*(cost.TerraformSteps-cost.FreeSteps)
	}
	return score - penaltyPerQIC*cost.Resources.QIC
}

// lowestTrack is the least advanced track the seat can still raise.
func lowestTrack(s *game.Session, seat *game.Seat) game.Track {
	var best game.Track
	for _, tr := range game.Tracks {
		if s.CanAdvance(seat, tr) != nil {
			continue
		}
		if best == "" || seat.Level(tr) < seat.Level(best) {
			best = tr
		}
	}
	return best
}

// powerActions lists the unused actions that pay plain resources.
func (p Planner) powerActions(s *game.Session, seat *game.Seat) []action.Command {
	var out []action.Command
	for _, id := range game.PowerActionIDs() {
		pa, _ := game.LookupPowerAction(id)
		if pa.Effect != game.EffectNone || pa.FreeSteps > 0 || pa.Grant.Resources.IsZero() {
			continue
		}
		if s.Pools.PowerActionsUsed[id] || !seat.Power.CanSpend(pa.Power) || seat.Resources.QIC < pa.QIC {
			continue
		}
		out = append(out, action.PowerAction{Action: id})
	}
	return out
}

func (p Planner) pass(s *game.Session) action.Command {
	if s.Round >= game.Rounds || len(s.Pools.Boosters) == 0 {
		return action.Pass{}
	}
	return action.Pass{Booster: s.Pools.Boosters[0]}
}
