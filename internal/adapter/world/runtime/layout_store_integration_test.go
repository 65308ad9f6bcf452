package runtime

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormrepo "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/gorm"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/migrations"
)

func TestGenerator_GormLayoutStoreCachesLayouts(t *testing.T) {
	dsn := os.Getenv("GAIA_DB_DSN")
	if dsn == "" {
		t.Skip("GAIA_DB_DSN is required for integration test")
	}
	db, err := gormrepo.OpenPostgres(dsn, gormrepo.Options{})
	require.NoError(t, err)
	ctx := context.Background()
	_, err = gormrepo.ApplyMigrations(ctx, db, migrations.Files)
	require.NoError(t, err)
	require.NoError(t, db.Exec("DELETE FROM map_layouts WHERE seed = ?", int64(-4242)).Error)

	g := NewGenerator(Config{Store: NewGormLayoutStore(db)})
	first, err := g.Generate(ctx, 2, -4242)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("map_layouts").Where("seed = ?", int64(-4242)).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	second, err := g.Generate(ctx, 2, -4242)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NoError(t, db.Table("map_layouts").Where("seed = ?", int64(-4242)).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
