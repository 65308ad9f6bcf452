package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

var ErrInvalidSeats = errors.New("invalid seat count")

type Config struct {
	PlanetsPerSector int
	Store            LayoutStore
}

// LayoutStore caches generated layouts so a seed always yields the same map,
// even across generator changes.
type LayoutStore interface {
	GetLayout(ctx context.Context, seats int, seed int64) ([]world.Tile, bool, error)
	SaveLayout(ctx context.Context, seats int, seed int64, tiles []world.Tile) error
}

type Generator struct {
	cfg Config
}

func DefaultConfig() Config {
	return Config{PlanetsPerSector: 6}
}

func NewGenerator(cfg Config) Generator {
	def := DefaultConfig()
	if cfg.PlanetsPerSector <= 0 {
		cfg.PlanetsPerSector = def.PlanetsPerSector
	}
	cfg.PlanetsPerSector = min(cfg.PlanetsPerSector, len(world.Spiral(world.Hex{}, world.SectorRadius)))
	return Generator{cfg: cfg}
}

func (g Generator) Generate(ctx context.Context, seats int, seed int64) ([]world.Tile, error) {
	if seats < 1 || seats > game.MaxSeats {
		return nil, ErrInvalidSeats
	}
	if g.cfg.Store != nil {
		if cached, ok, err := g.cfg.Store.GetLayout(ctx, seats, seed); err != nil {
			return nil, err
		} else if ok {
			return cached, nil
		}
	}
	tiles := g.layout(seats, seed)
	if g.cfg.Store != nil {
		if err := g.cfg.Store.SaveLayout(ctx, seats, seed, tiles); err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

func (g Generator) layout(seats int, seed int64) []world.Tile {
	count := min(world.SectorCount(seats), len(world.SectorCenters))
	out := make([]world.Tile, 0, count*len(world.Spiral(world.Hex{}, world.SectorRadius)))
	for i := 0; i < count; i++ {
		out = append(out, g.sector(i, seed)...)
	}
	return out
}

func (g Generator) sector(index int, seed int64) []world.Tile {
	hexes := world.Spiral(world.SectorCenters[index], world.SectorRadius)
	order := make([]int, len(hexes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tileSeed(hexes[order[a]], seed) < tileSeed(hexes[order[b]], seed)
	})

	types := make([]world.PlanetType, len(hexes))
	for i := range types {
		types[i] = world.PlanetSpace
	}
	offset := int(uint64(seed) % uint64(len(world.TerraformWheel)))
	for slot := 0; slot < g.cfg.PlanetsPerSector; slot++ {
		types[order[slot]] = planetForSlot(index, slot, offset, g.cfg.PlanetsPerSector)
	}

	tiles := make([]world.Tile, 0, len(hexes))
	for i, h := range hexes {
		tiles = append(tiles, world.Tile{Hex: h, Sector: index, Type: types[i]})
	}
	return tiles
}

// planetForSlot rotates the wheel per sector so every home type shows up
// on each map. The last slot of a sector is gaia or transdim, alternating.
func planetForSlot(sector, slot, offset, perSector int) world.PlanetType {
	if perSector > 1 && slot == perSector-1 {
		if sector%2 == 0 {
			return world.PlanetTransdim
		}
		return world.PlanetGaia
	}
	wheel := world.TerraformWheel
	return wheel[(sector*3+slot+offset)%len(wheel)]
}

func tileSeed(h world.Hex, seed int64) uint64 {
	return uint64(int64(h.Q))*73856093 ^ uint64(int64(h.R))*19349663 ^ uint64(seed)*83492791
}

func marshalTiles(tiles []world.Tile) ([]byte, error) {
	return json.Marshal(tiles)
}

func unmarshalTiles(data []byte) ([]world.Tile, error) {
	out := []world.Tile{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
