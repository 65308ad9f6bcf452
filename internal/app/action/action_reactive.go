package action

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

type respondOfferHandler struct{ BaseHandler }

func (respondOfferHandler) Apply(ac *Context) error {
	cmd := ac.Command.(RespondOffer)
	return rejected(ac.Session.ResolveOffer(ac.SeatID, cmd.Accept, cmd.TokenFirst))
}

type chooseRewardHandler struct{ BaseHandler }

func (chooseRewardHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(ChooseReward)
	pending := ac.Session.Pending.(*game.ChooseReward)
	for _, id := range pending.Options {
		if id != cmd.Reward {
			continue
		}
		if !pending.Rescore && ac.Session.Pools.FederationRewards[id] < 1 {
			return game.Reject(game.CodeInvalidOption, "%s is gone", id)
		}
		return nil
	}
	return game.Reject(game.CodeInvalidOption, "%s is not an option", cmd.Reward)
}

func (chooseRewardHandler) Apply(ac *Context) error {
	cmd := ac.Command.(ChooseReward)
	s, seat := ac.Session, ac.Seat
	pending := s.Pending.(*game.ChooseReward)
	s.Pending = nil
	if pending.Rescore {
		s.RescoreFederation(seat, cmd.Reward)
	} else {
		s.Pools.FederationRewards[cmd.Reward]--
		s.GrantFederation(seat, cmd.Reward, pending.Hexes, false)
	}
	ac.Detail = string(cmd.Reward)
	return nil
}

type chooseTechTileHandler struct{ BaseHandler }

func (chooseTechTileHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(ChooseTechTile)
	s, seat := ac.Session, ac.Seat
	pending := s.Pending.(*game.ChooseTechTile)
	tile, ok := game.LookupTech(cmd.Tile)
	if !ok || !offered(pending, cmd.Tile) {
		return game.Reject(game.CodeInvalidOption, "%s is not an option", cmd.Tile)
	}
	if tile.Advanced {
		if seat.GreenFederations < 1 {
			return game.RejectUser(game.CodeInvalidOption, "advanced tiles need a green federation")
		}
		if seat.Level(tile.Track) < game.AdvancedTrackLevel {
			return game.Reject(game.CodeInvalidOption, "%s needs %s level %d", tile.ID, tile.Track, game.AdvancedTrackLevel)
		}
		if len(game.CoverOptions(seat)) == 0 {
			return game.Reject(game.CodeInvalidOption, "no standard tile to cover")
		}
		if cmd.Track != "" && cmd.Track != tile.Track {
			return game.Reject(game.CodeInvalidOption, "%s only advances %s", tile.ID, tile.Track)
		}
		return nil
	}
	if _, rej := s.StepTrack(seat, tile, cmd.Track); rej != nil {
		return rej
	}
	return nil
}

func offered(p *game.ChooseTechTile, id game.TechID) bool {
	for _, t := range p.Standard {
		if t == id {
			return true
		}
	}
	for _, t := range p.Advanced {
		if t == id {
			return true
		}
	}
	return false
}

func (chooseTechTileHandler) Apply(ac *Context) error {
	cmd := ac.Command.(ChooseTechTile)
	s, seat := ac.Session, ac.Seat
	tile, _ := game.LookupTech(cmd.Tile)
	ac.Detail = string(tile.ID)
	if tile.Advanced {
		s.Pending = &game.ChooseCover{Seat: seat.ID, Advanced: tile.ID, Track: cmd.Track, Options: game.CoverOptions(seat)}
		return nil
	}
	s.Pending = nil
	s.GainTech(seat, tile)
	if cmd.Track != "" {
		s.AdvanceTrack(seat, cmd.Track)
	}
	return nil
}

type confirmCoverHandler struct{ BaseHandler }

func (confirmCoverHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(ConfirmCover)
	seat := ac.Seat
	pending := ac.Session.Pending.(*game.ChooseCover)
	found := false
	for _, id := range pending.Options {
		if id == cmd.Tile {
			found = true
		}
	}
	if !found {
		return game.Reject(game.CodeInvalidOption, "%s cannot be covered", cmd.Tile)
	}
	if seat.GreenFederations < 1 {
		return game.RejectUser(game.CodeInvalidOption, "advanced tiles need a green federation")
	}
	if pending.Track == "" {
		return nil
	}
	if seat.Level(pending.Track)+1 == game.MaxTrackLevel && seat.GreenFederations < 2 {
		return game.RejectUser(game.CodeInvalidOption, "covering and the top level each need a green federation")
	}
	return rejected(ac.Session.CanAdvance(seat, pending.Track))
}

func (confirmCoverHandler) Apply(ac *Context) error {
	cmd := ac.Command.(ConfirmCover)
	s, seat := ac.Session, ac.Seat
	pending := s.Pending.(*game.ChooseCover)
	advanced, _ := game.LookupTech(pending.Advanced)
	if !s.CoverTech(seat, advanced, cmd.Tile) {
		return game.Reject(game.CodeInvalidOption, "%s cannot be covered", cmd.Tile)
	}
	s.Pending = nil
	if pending.Track != "" && s.CanAdvance(seat, pending.Track) == nil {
		s.AdvanceTrack(seat, pending.Track)
	}
	ac.Detail = string(advanced.ID) + " over " + string(cmd.Tile)
	return nil
}
