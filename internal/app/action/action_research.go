package action

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

type researchHandler struct{ BaseHandler }

func (researchHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(Research)
	if rej := ac.Session.CanAdvance(ac.Seat, cmd.Track); rej != nil {
		return rej
	}
	cost := game.Resources{Knowledge: game.ResearchCost}
	if !ac.Seat.Resources.Covers(cost) {
		return game.Reject(game.CodeUnaffordable, "research needs %d knowledge", game.ResearchCost)
	}
	ac.Cost = cost
	return nil
}

func (researchHandler) Apply(ac *Context) error {
	cmd := ac.Command.(Research)
	ac.Seat.Pay(ac.Cost)
	ac.Session.AdvanceTrack(ac.Seat, cmd.Track)
	ac.Detail = describe("%s to %d", cmd.Track, ac.Seat.Level(cmd.Track))
	return nil
}
