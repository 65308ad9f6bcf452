package action

import (
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type chooseFactionHandler struct{ BaseHandler }

func (chooseFactionHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(ChooseFaction)
	if ac.Seat.Faction != "" {
		return game.Reject(game.CodeAlreadyUsed, "faction already chosen")
	}
	f, ok := game.LookupFaction(cmd.Faction)
	if !ok {
		return game.Reject(game.CodeInvalidOption, "unknown faction %q", cmd.Faction)
	}
	if ac.Session.FactionTaken(ac.SeatID, f) {
		return game.Reject(game.CodeAlreadyUsed, "home planet %s already taken", f.Home)
	}
	if cmd.TurnOrderPref < 0 || cmd.TurnOrderPref > game.MaxSeats {
		return game.Reject(game.CodeInvalidOption, "turn order preference out of range")
	}
	if cmd.TurnOrderPref > 0 {
		for id, seat := range ac.Session.Seats {
			if id != ac.SeatID && seat.TurnOrderPref == cmd.TurnOrderPref {
				return game.Reject(game.CodeAlreadyUsed, "turn order %d already requested", cmd.TurnOrderPref)
			}
		}
	}
	return nil
}

func (chooseFactionHandler) Apply(ac *Context) error {
	cmd := ac.Command.(ChooseFaction)
	f, _ := game.LookupFaction(cmd.Faction)
	ac.Seat.AssignFaction(f)
	ac.Seat.TurnOrderPref = cmd.TurnOrderPref
	ac.Detail = string(f.ID)
	return nil
}

type confirmFactionsHandler struct{ BaseHandler }

func (confirmFactionsHandler) Apply(ac *Context) error {
	return rejected(ac.Session.ConfirmFactions())
}

type placeStructureHandler struct{ BaseHandler }

func (placeStructureHandler) Apply(ac *Context) error {
	cmd := ac.Command.(PlaceStructure)
	return rejected(ac.Session.PlaceStarting(ac.SeatID, cmd.Hex))
}

type selectBoosterHandler struct{ BaseHandler }

func (selectBoosterHandler) Apply(ac *Context) error {
	cmd := ac.Command.(SelectBooster)
	return rejected(ac.Session.SelectStartingBooster(ac.SeatID, cmd.Booster))
}
