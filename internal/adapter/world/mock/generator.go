package mock

import (
	"context"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// Generator hands out a fixed layout, or a single home sector of every
// wheel type when Tiles is empty.
type Generator struct {
	Tiles []world.Tile
	Err   error
}

func (g Generator) Generate(_ context.Context, _ int, _ int64) ([]world.Tile, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	if len(g.Tiles) > 0 {
		return world.CloneTiles(g.Tiles), nil
	}
	hexes := world.Spiral(world.Hex{}, world.SectorRadius)
	out := make([]world.Tile, 0, len(hexes))
	for i, h := range hexes {
		t := world.PlanetSpace
		if i < len(world.TerraformWheel) {
			t = world.TerraformWheel[i]
		}
		out = append(out, world.Tile{Hex: h, Type: t})
	}
	return out, nil
}
