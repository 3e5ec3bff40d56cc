package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/athena/internal/data"
	"github.com/udisondev/athena/internal/model"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "items.db")

	var err error
	s.store, err = Open(s.ctx, s.path)
	s.Require().NoError(err)
}

func (s *StoreSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *StoreSuite) saveSample() {
	for _, def := range data.SampleItemDefs() {
		item, err := def.Item()
		s.Require().NoError(err)
		s.Require().NoError(s.store.SaveItem(s.ctx, item))
	}
}

func (s *StoreSuite) TestEmpty() {
	inv, err := s.store.LoadInventory(s.ctx)
	s.Require().NoError(err)
	s.Zero(inv.Len())
}

func (s *StoreSuite) TestSaveAndLoadInOrder() {
	s.saveSample()

	inv, err := s.store.LoadInventory(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.InventoryCounts{Stamps: 7, Cores: 3, WeaponStamps: 2}, inv.Counts())

	want := data.SampleItemDefs()
	got := inv.Items()
	s.Require().Len(got, len(want))
	for i := range want {
		expected, err := want[i].Item()
		s.Require().NoError(err)
		s.Equal(expected.Def(), got[i].Def(), "item #%d", i)
	}
}

func (s *StoreSuite) TestUpsert() {
	s.saveSample()

	updated, err := model.ItemDef{Name: "Getsuga Tangle", Category: "core",
		Stats: map[string]float64{"atk_flat": 600}}.Item()
	s.Require().NoError(err)
	s.Require().NoError(s.store.SaveItem(s.ctx, updated))

	inv, err := s.store.LoadInventory(s.ctx)
	s.Require().NoError(err)
	s.Equal(12, inv.Len())
	cores := inv.Cores()
	s.Equal("Getsuga Tangle", cores[0].Name(), "position is kept")
	s.Equal(model.Stats{AtkFlat: 600}, cores[0].Stats())
}

func (s *StoreSuite) TestDelete() {
	s.saveSample()

	s.Require().NoError(s.store.DeleteItem(s.ctx, model.CategoryStamp, "RBM_2 (Lv15)"))
	s.ErrorIs(s.store.DeleteItem(s.ctx, model.CategoryStamp, "RBM_2 (Lv15)"), model.ErrItemNotFound)
	s.ErrorIs(s.store.DeleteItem(s.ctx, model.CategoryCore, "RBM_1 (Lv30)"), model.ErrItemNotFound, "category is part of the key")

	inv, err := s.store.LoadInventory(s.ctx)
	s.Require().NoError(err)
	s.Len(inv.StampsForSlot(1), 2)
}

func (s *StoreSuite) TestReopenKeepsData() {
	s.saveSample()
	s.Require().NoError(s.store.Close())

	var err error
	s.store, err = Open(s.ctx, s.path)
	s.Require().NoError(err)

	inv, err := s.store.LoadInventory(s.ctx)
	s.Require().NoError(err)
	s.Equal(12, inv.Len())
}

func (s *StoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.LoadInventory(ctx)
	s.ErrorIs(err, context.Canceled)
	s.ErrorIs(s.store.SaveItem(ctx, nil), context.Canceled)
}

func (s *StoreSuite) TestOpenRequiresPath() {
	_, err := Open(s.ctx, "  ")
	s.Error(err)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
