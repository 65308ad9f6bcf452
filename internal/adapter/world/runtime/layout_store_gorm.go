package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/gorm/model"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormLayoutStore struct {
	db *gorm.DB
}

func NewGormLayoutStore(db *gorm.DB) GormLayoutStore {
	return GormLayoutStore{db: db}
}

func (s GormLayoutStore) GetLayout(ctx context.Context, seats int, seed int64) ([]world.Tile, bool, error) {
	var row model.MapLayout
	err := s.db.WithContext(ctx).
		Where(&model.MapLayout{Seats: int32(seats), Seed: seed}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	tiles, err := unmarshalTiles(row.Tiles)
	if err != nil {
		return nil, false, err
	}
	return tiles, true, nil
}

func (s GormLayoutStore) SaveLayout(ctx context.Context, seats int, seed int64, tiles []world.Tile) error {
	b, err := marshalTiles(tiles)
	if err != nil {
		return err
	}
	row := model.MapLayout{
		Seats:     int32(seats),
		Seed:      seed,
		Tiles:     b,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seats"}, {Name: "seed"}},
		DoNothing: true,
	}).Create(&row).Error
}
