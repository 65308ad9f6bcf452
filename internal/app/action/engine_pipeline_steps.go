package action

import (
	"fmt"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

// rejected keeps a nil *game.Rejection from turning into a non-nil error.
func rejected(r *game.Rejection) error {
	if r == nil {
		return nil
	}
	return r
}

func (e Engine) ValidateCommand(s *game.Session, seatID string, cmd Command) (Context, error) {
	if s == nil || cmd == nil {
		return Context{}, ErrInvalidRequest
	}
	seat, ok := s.Seat(seatID)
	if !ok {
		return Context{}, game.RejectUser(game.CodeNotYourSeat, "seat %q is not part of this game", seatID)
	}
	return Context{Session: s, SeatID: seatID, Seat: seat, Command: cmd}, nil
}

func (e Engine) ResolveSpec(ac *Context) error {
	spec, ok := actionRegistry()[ac.Command.Kind()]
	if !ok {
		return game.Reject(game.CodeUnknownCommand, "unknown command %q", ac.Command.Kind())
	}
	ac.Spec = spec
	return nil
}

func (e Engine) CheckPhase(ac *Context) error {
	s := ac.Session
	allowed := false
	for _, p := range ac.Spec.Phases {
		if p == s.Phase {
			allowed = true
		}
	}
	if !allowed {
		return game.Reject(game.CodeWrongPhase, "%s not allowed in %s", ac.Spec.Kind, s.Phase)
	}
	if ac.Spec.Stage != game.StageNone && ac.Spec.Stage != s.Stage {
		return game.Reject(game.CodeWrongPhase, "%s not allowed during %s", ac.Spec.Kind, s.Stage)
	}
	return nil
}

func (e Engine) CheckGate(ac *Context) error {
	s := ac.Session
	switch ac.Spec.Gate {
	case GateAnySeat:
		return nil
	case GatePlacement, GateBonus, GateIncome, GateTurn:
		if s.CurrentSeat() != ac.SeatID {
			return game.Reject(game.CodeNotYourTurn, "waiting for %s", s.CurrentSeat())
		}
		return nil
	case GatePending:
		if s.Pending == nil || s.Pending.Target() != ac.SeatID || s.Pending.Kind() != ac.Spec.Pending {
			return game.Reject(game.CodeNoPending, "no %s open for seat", ac.Spec.Pending)
		}
		return nil
	case GateOffer:
		if _, ok := s.NextOffer(ac.SeatID); !ok {
			return game.Reject(game.CodeNoPending, "no open offer for seat")
		}
		return nil
	}
	return game.Reject(game.CodeUnknownCommand, "unknown gate")
}

// blocked reports whether an interaction targets the seat.
func blocked(s *game.Session, seatID string) bool {
	if s.Pending != nil && s.Pending.Target() == seatID {
		return true
	}
	_, open := s.NextOffer(seatID)
	return open
}

func (e Engine) CheckMainAction(ac *Context) error {
	if !ac.Spec.Main {
		return nil
	}
	if blocked(ac.Session, ac.SeatID) {
		return game.Reject(game.CodePendingOpen, "resolve the open interaction first")
	}
	if !ac.Seat.MainActionTaken {
		return nil
	}
	if ac.Spec.Kind == KindBuild && ac.Seat.FollowUpBuild {
		return nil
	}
	return game.Reject(game.CodeMainActionTaken, "main action already taken this turn")
}

func (e Engine) RunPrecheck(ac *Context) error {
	return ac.Spec.Handler.Precheck(ac)
}

func (e Engine) ApplyAndPlan(ac *Context) error {
	return ac.Spec.Handler.Apply(ac)
}

// Bookkeep marks the main action, logs, hands out power offers and runs the
// turn transition.
func (e Engine) Bookkeep(ac *Context) {
	s := ac.Session
	if ac.Spec.Main {
		ac.Seat.MainActionTaken = true
	}
	if !ac.Spec.Quiet {
		s.Logf(ac.SeatID, string(ac.Spec.Kind), ac.Detail)
	}
	if len(ac.Offers) > 0 {
		s.QueueOffers(ac.Offers)
	}
	if ac.Then != nil {
		ac.Then()
	}
	s.Touch()
}

func describe(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
