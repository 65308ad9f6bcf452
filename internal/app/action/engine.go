package action

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

// Engine applies commands to a session. It holds no state; the caller owns
// the session lock.
type Engine struct{}

// Apply runs one command. The error is nil on success and a *game.Rejection
// when the command was refused, in which case the session is unchanged.
func (e Engine) Apply(s *game.Session, seatID string, cmd Command) error {
	ac, err := e.ValidateCommand(s, seatID, cmd)
	if err != nil {
		return err
	}
	if err := e.ResolveSpec(&ac); err != nil {
		return err
	}
	if err := e.CheckPhase(&ac); err != nil {
		return err
	}
	if err := e.CheckGate(&ac); err != nil {
		return err
	}
	if err := e.CheckMainAction(&ac); err != nil {
		return err
	}
	if err := e.RunPrecheck(&ac); err != nil {
		return err
	}
	if err := e.ApplyAndPlan(&ac); err != nil {
		return err
	}
	e.Bookkeep(&ac)
	return nil
}
