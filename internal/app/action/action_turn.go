package action

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

type passHandler struct{ BaseHandler }

func (passHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(Pass)
	s := ac.Session
	if ac.Seat.Passed {
		return game.Reject(game.CodeAlreadyUsed, "already passed")
	}
	if s.Round >= game.Rounds {
		if cmd.Booster != "" {
			return game.Reject(game.CodeInvalidOption, "no booster is taken in the last round")
		}
		return nil
	}
	if len(s.Pools.Boosters) == 0 && cmd.Booster == "" {
		return nil
	}
	if !s.Pools.HasBooster(cmd.Booster) {
		return game.Reject(game.CodeInvalidOption, "booster %q not available", cmd.Booster)
	}
	return nil
}

func (passHandler) Apply(ac *Context) error {
	cmd := ac.Command.(Pass)
	s, seat := ac.Session, ac.Seat
	s.ScorePass(seat)
	if s.Round < game.Rounds {
		s.Pools.ReturnBooster(seat.Booster)
		seat.Booster = ""
		if cmd.Booster != "" && s.Pools.TakeBooster(cmd.Booster) {
			seat.Booster = cmd.Booster
		}
	}
	seat.Passed = true
	s.NextTurnOrder = append(s.NextTurnOrder, seat.ID)
	ac.Detail = string(cmd.Booster)
	ac.Then = s.AdvanceTurn
	return nil
}

type endTurnHandler struct{ BaseHandler }

func (endTurnHandler) Precheck(ac *Context) error {
	if !ac.Seat.MainActionTaken {
		return game.Reject(game.CodeMainActionMissing, "take a main action first")
	}
	if blocked(ac.Session, ac.SeatID) {
		return game.Reject(game.CodePendingOpen, "resolve the open interaction first")
	}
	return nil
}

func (endTurnHandler) Apply(ac *Context) error {
	ac.Then = ac.Session.AdvanceTurn
	return nil
}

type resetTurnHandler struct{ BaseHandler }

func (resetTurnHandler) Precheck(ac *Context) error {
	if _, ok := ac.Session.TurnStart[ac.SeatID]; !ok {
		return game.Reject(game.CodeNoSnapshot, "nothing to reset")
	}
	return nil
}

func (resetTurnHandler) Apply(ac *Context) error {
	s := ac.Session
	if !s.RestoreSnapshot(ac.SeatID) {
		return game.Reject(game.CodeNoSnapshot, "nothing to reset")
	}
	s.Logf(ac.SeatID, string(KindResetTurn), "")
	// a later reset keeps this entry
	s.TakeSnapshot(ac.SeatID)
	return nil
}
