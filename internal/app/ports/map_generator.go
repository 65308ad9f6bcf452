package ports

import (
	"context"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// MapGenerator produces the starting tiles for a game. The layout is
// opaque to the rules.
type MapGenerator interface {
	Generate(ctx context.Context, seats int, seed int64) ([]world.Tile, error)
}
