package action

import (
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

const (
	boosterRangeBonus = 3
	techChargeAmount  = 4
)

type specialActionHandler struct{ BaseHandler }

func (specialActionHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(SpecialAction)
	s, seat := ac.Session, ac.Seat
	available := false
	for _, id := range s.Specials(seat) {
		if id == cmd.Action {
			available = true
		}
	}
	if !available {
		return game.Reject(game.CodeAlreadyUsed, "special %q not available", cmd.Action)
	}
	if cmd.Action != game.SpecialIvitsStation {
		return nil
	}
	if cmd.Hex == nil {
		return game.Reject(game.CodeInvalidTarget, "station needs a hex")
	}
	tile, ok := s.TileAt(*cmd.Hex)
	if !ok || tile.Type != world.PlanetSpace || tile.Station || tile.Owner != "" {
		return game.Reject(game.CodeInvalidTarget, "station needs empty space")
	}
	d, present := s.Distance(seat.ID, *cmd.Hex)
	if !present || d > seat.Range() {
		return game.Reject(game.CodeOutOfRange, "station out of range")
	}
	return nil
}

func (specialActionHandler) Apply(ac *Context) error {
	cmd := ac.Command.(SpecialAction)
	s, seat := ac.Session, ac.Seat
	seat.UsedSpecials = append(seat.UsedSpecials, cmd.Action)
	switch cmd.Action {
	case game.SpecialBoosterTerraform:
		seat.PendingTerraformSteps++
		seat.FollowUpBuild = true
	case game.SpecialBoosterRange:
		seat.TempRange += boosterRangeBonus
		seat.FollowUpBuild = true
	case game.SpecialTechCharge:
		seat.Power.Charge(techChargeAmount)
	case game.SpecialAdvancedOre:
		seat.GainResources(game.Resources{Ore: 3})
	case game.SpecialAcademyQIC:
		seat.GainResources(game.Resources{QIC: 1})
	case game.SpecialIvitsStation:
		tile, _ := s.TileAt(*cmd.Hex)
		tile.Station = true
		tile.Owner = seat.ID
	}
	ac.Detail = string(cmd.Action)
	return nil
}

type enterVehicleHandler struct{ BaseHandler }

func findVehicle(s *game.Session, id game.VehicleID) int {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			return i
		}
	}
	return -1
}

func (enterVehicleHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(EnterVehicle)
	s, seat := ac.Session, ac.Seat
	idx := findVehicle(s, cmd.Vehicle)
	if idx < 0 {
		return game.Reject(game.CodeInvalidTarget, "unknown vehicle %q", cmd.Vehicle)
	}
	if seat.Entered(cmd.Vehicle) {
		return game.Reject(game.CodeAlreadyUsed, "already entered %s", cmd.Vehicle)
	}
	d, present := s.Distance(seat.ID, s.Vehicles[idx].Hex)
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

func (enterVehicleHandler) Apply(ac *Context) error {
	cmd := ac.Command.(EnterVehicle)
	s, seat := ac.Session, ac.Seat
	v := &s.Vehicles[findVehicle(s, cmd.Vehicle)]
	seat.Pay(ac.Cost)
	first := len(v.Occupants) == 0
	v.Occupants = append(v.Occupants, seat.ID)
	seat.EnteredVehicles = append(seat.EnteredVehicles, v.ID)
	seat.NavigationBonus += v.NavigationBonus
	v.Reward.ApplyTo(seat, game.CategoryVehicleReward, string(v.ID), s.Round)
	if first {
		v.FirstBonus.ApplyTo(seat, game.CategoryVehicleReward, string(v.ID)+" first", s.Round)
	}
	ac.Detail = string(v.ID)
	return nil
}
