package action

import (
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

const (
	lantidsSecondaryKnowledge = 2
	geodensNewTypeKnowledge   = 3
)

// requireAffordable rejects when cost cannot be paid. Missing QIC for reach
// is reported to the seat.
func requireAffordable(seat *game.Seat, cost game.Resources, rangeQIC int) error {
	if rangeQIC > 0 && seat.Resources.QIC < cost.QIC {
		return game.RejectUser(game.CodeInsufficientQIC, "need %d QIC to reach the target", cost.QIC)
	}
	if !seat.Resources.Covers(cost) {
		return game.Reject(game.CodeUnaffordable, "cannot pay %+v", cost)
	}
	return nil
}

func requireLimit(s *game.Session, seatID string, kind world.StructureKind) error {
	if s.StructureCount(seatID, kind) >= game.StructureLimits[kind] {
		return game.Reject(game.CodeLimitReached, "no %s left", kind)
	}
	return nil
}

type buildHandler struct{ BaseHandler }

func (buildHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(Build)
	cost, rej := ac.Session.ComputeBuildCost(ac.Seat, cmd.Hex)
	if rej != nil {
		return rej
	}
	if _, present := ac.Session.Distance(ac.SeatID, cmd.Hex); !present {
		return game.Reject(game.CodeOutOfRange, "seat has no presence to build from")
	}
	if err := requireLimit(ac.Session, ac.SeatID, world.StructureMine); err != nil {
		return err
	}
	if err := requireAffordable(ac.Seat, cost.Resources, cost.RangeQIC); err != nil {
		return err
	}
	ac.BuildCost = cost
	return nil
}

func (buildHandler) Apply(ac *Context) error {
	cmd := ac.Command.(Build)
	s, seat, cost := ac.Session, ac.Seat, ac.BuildCost
	seat.Pay(cost.Resources)
	tile, _ := s.TileAt(cmd.Hex)
	if cost.Secondary {
		tile.Secondary = seat.ID
		if seat.Is(game.FactionLantids) && s.StructureCount(seat.ID, world.StructurePlanetaryInstitute) > 0 {
			seat.GainResources(game.Resources{Knowledge: lantidsSecondaryKnowledge})
		}
	} else {
		tile.Owner = seat.ID
		tile.Structure = world.StructureMine
		if cost.Gaiaformer {
			tile.Gaiaformer = ""
			seat.Gaiaformers++
		}
		if s.RecordType(seat, tile.Type) && seat.Is(game.FactionGeodens) && s.StructureCount(seat.ID, world.StructurePlanetaryInstitute) > 0 {
			seat.GainResources(game.Resources{Knowledge: geodensNewTypeKnowledge})
		}
	}
	seat.PendingTerraformSteps = 0
	seat.FollowUpBuild = false
	s.TriggerBuild(seat, world.StructureMine, tile.Type, cost.TerraformSteps)
	ac.Offers = s.CollectOffers(seat.ID, cmd.Hex)
	ac.Detail = describe("mine at %d,%d", cmd.Hex.Q, cmd.Hex.R)
	return nil
}

type upgradeHandler struct{ BaseHandler }

func (upgradeHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(Upgrade)
	cost, rej := ac.Session.UpgradeCost(ac.Seat, cmd.Hex, cmd.To)
	if rej != nil {
		return rej
	}
	if err := requireLimit(ac.Session, ac.SeatID, cmd.To); err != nil {
		return err
	}
	if err := requireAffordable(ac.Seat, cost, 0); err != nil {
		return err
	}
	ac.Cost = cost
	return nil
}

func (upgradeHandler) Apply(ac *Context) error {
	cmd := ac.Command.(Upgrade)
	s, seat := ac.Session, ac.Seat
	seat.Pay(ac.Cost)
	tile, _ := s.TileAt(cmd.Hex)
	tile.Structure = cmd.To
	s.TriggerBuild(seat, cmd.To, tile.Type, 0)
	if cmd.To == world.StructureResearchLab || cmd.To == world.StructureAcademy {
		if choice := s.TechChoice(seat); choice != nil {
			s.Pending = choice
		}
	}
	ac.Offers = s.CollectOffers(seat.ID, cmd.Hex)
	ac.Detail = describe("%s at %d,%d", cmd.To, cmd.Hex.Q, cmd.Hex.R)
	return nil
}

type gaiaProjectHandler struct{ BaseHandler }

func (gaiaProjectHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(StartGaiaProject)
	s, seat := ac.Session, ac.Seat
	tile, ok := s.TileAt(cmd.Hex)
	if !ok || tile.Type != world.PlanetTransdim || tile.Gaiaformer != "" || tile.Owner != "" {
		return game.Reject(game.CodeInvalidTarget, "gaia projects need a free transdim planet")
	}
	if seat.Gaiaformers < 1 {
		return game.Reject(game.CodeUnaffordable, "no gaiaformer available")
	}
	tokens := game.GaiaProjectCost(seat.Level(game.TrackGaia))
	if tokens == 0 {
		return game.Reject(game.CodeInvalidOption, "gaia research required")
	}
	if seat.Power.Tokens() < tokens {
		return game.RejectUser(game.CodeInsufficientPower, "gaia project needs %d power tokens", tokens)
	}
	d, present := s.Distance(seat.ID, cmd.Hex)
	if !present {
		return game.Reject(game.CodeOutOfRange, "seat has no presence to reach from")
	}
	cost := game.Resources{QIC: game.RangeQIC(d, seat.Range())}
	if err := requireAffordable(seat, cost, cost.QIC); err != nil {
		return err
	}
	ac.Cost = cost
	return nil
}

func (gaiaProjectHandler) Apply(ac *Context) error {
	cmd := ac.Command.(StartGaiaProject)
	s, seat := ac.Session, ac.Seat
	seat.Pay(ac.Cost)
	seat.Power.MoveToGaia(game.GaiaProjectCost(seat.Level(game.TrackGaia)))
	seat.Gaiaformers--
	tile, _ := s.TileAt(cmd.Hex)
	tile.Gaiaformer = seat.ID
	ac.Detail = describe("gaia project at %d,%d", cmd.Hex.Q, cmd.Hex.R)
	return nil
}

type formFederationHandler struct{ BaseHandler }

func (formFederationHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(FormFederation)
	plan, rej := ac.Session.PlanFederation(ac.Seat, cmd.Buildings, cmd.Satellites)
	if rej != nil {
		return rej
	}
	ac.Federation = plan
	return nil
}

func (formFederationHandler) Apply(ac *Context) error {
	ac.Session.FormFederation(ac.Seat, ac.Federation)
	ac.Detail = describe("federation of %d buildings, %d satellites", len(ac.Federation.Buildings), len(ac.Federation.Satellites))
	return nil
}
