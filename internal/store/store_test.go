package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/athena/internal/config"
	"github.com/udisondev/athena/internal/data"
	"github.com/udisondev/athena/internal/db/sqlite"
	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/testutil"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	inv := testutil.SampleInventory(t)

	m := NewMemory(inv)
	got, err := m.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, inv.Counts(), got.Counts())

	extra, err := model.NewItem("Extra", model.CategoryCore, 0, "", model.Stats{AtkFlat: 1})
	require.NoError(t, err)
	require.NoError(t, m.SaveItem(ctx, extra))

	replaced, err := model.NewItem("Getsuga Tangle", model.CategoryCore, 0, "", model.Stats{AtkFlat: 2})
	require.NoError(t, err)
	require.NoError(t, m.SaveItem(ctx, replaced))

	got, err = m.LoadInventory(ctx)
	require.NoError(t, err)
	cores := got.Cores()
	require.Len(t, cores, 4)
	assert.Equal(t, "Getsuga Tangle", cores[0].Name())
	assert.Equal(t, 2.0, cores[0].Stats().AtkFlat)
	assert.Equal(t, "Extra", cores[3].Name())

	require.NoError(t, m.DeleteItem(ctx, model.CategoryCore, "Extra"))
	assert.ErrorIs(t, m.DeleteItem(ctx, model.CategoryCore, "Extra"), model.ErrItemNotFound)
	assert.ErrorIs(t, m.SaveItem(ctx, nil), model.ErrInvalidInput)

	// The seed inventory is not touched.
	assert.Equal(t, 3, inv.Counts().Cores)
	assert.NoError(t, m.Close())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.InventoryConfig
		wantLen  int
		wantType ItemStore
	}{
		{"builtin", config.InventoryConfig{Source: config.SourceBuiltin}, 12, &Memory{}},
		{"file", config.InventoryConfig{Source: config.SourceFile, Path: filepath.Join(dir, "inv.yaml")}, 0, &data.FileStore{}},
		{"sqlite", config.InventoryConfig{Source: config.SourceSQLite, Path: filepath.Join(dir, "inv.db")}, 0, &sqlite.Store{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg, config.DatabaseConfig{})
			require.NoError(t, err)
			defer s.Close()

			assert.IsType(t, tt.wantType, s)
			inv, err := s.LoadInventory(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, inv.Len())
		})
	}

	_, err := Open(ctx, config.InventoryConfig{Source: "redis"}, config.DatabaseConfig{})
	assert.Error(t, err)
}
