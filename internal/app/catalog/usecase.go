package catalog

import (
	"context"
	"encoding/json"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type Index struct {
	Factions          []game.Faction          `json:"factions"`
	Boosters          []game.Booster          `json:"boosters"`
	TechTiles         []game.TechTile         `json:"tech_tiles"`
	FederationRewards []game.FederationReward `json:"federation_rewards"`
	PowerActions      []game.PowerAction      `json:"power_actions"`
	Tracks            []game.Track            `json:"tracks"`
	Docs              json.RawMessage         `json:"docs,omitempty"`
}

type UseCase struct {
	Docs ports.RulesDocs
}

// Index lists the static game components, plus the docs index when a
// docs provider is wired.
func (u UseCase) Index(ctx context.Context) (Index, error) {
	out := Index{Tracks: append([]game.Track(nil), game.Tracks...)}
	for _, id := range game.FactionIDs() {
		if f, ok := game.LookupFaction(id); ok {
			out.Factions = append(out.Factions, f)
		}
	}
	for _, id := range game.BoosterIDs() {
		if b, ok := game.LookupBooster(id); ok {
			out.Boosters = append(out.Boosters, b)
		}
	}
	for _, id := range append(game.StandardTechIDs(), game.AdvancedTechIDs()...) {
		if t, ok := game.LookupTech(id); ok {
			out.TechTiles = append(out.TechTiles, t)
		}
	}
	for _, id := range game.FederationRewardIDs() {
		if r, ok := game.LookupFederationReward(id); ok {
			out.FederationRewards = append(out.FederationRewards, r)
		}
	}
	for _, id := range game.PowerActionIDs() {
		if a, ok := game.LookupPowerAction(id); ok {
			out.PowerActions = append(out.PowerActions, a)
		}
	}
	if u.Docs != nil {
		docs, err := u.Docs.Index(ctx)
		if err != nil {
			return Index{}, err
		}
		out.Docs = docs
	}
	return out, nil
}

func (u UseCase) File(ctx context.Context, path string) ([]byte, error) {
	if u.Docs == nil {
		return nil, ports.ErrNotFound
	}
	return u.Docs.File(ctx, path)
}
