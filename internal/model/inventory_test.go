package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, name string, category Category, slot int) *Item {
	t.Helper()
	item, err := NewItem(name, category, slot, "", Stats{})
	require.NoError(t, err, "NewItem(%s)", name)
	return item
}

func TestInventory_AddAndGroup(t *testing.T) {
	inv := NewInventory()

	require.NoError(t, inv.Add(newTestItem(t, "RBM_1", CategoryStamp, 1)))
	require.NoError(t, inv.Add(newTestItem(t, "RBM_2", CategoryStamp, 1)))
	require.NoError(t, inv.Add(newTestItem(t, "RBM_3", CategoryStamp, 2)))
	require.NoError(t, inv.Add(newTestItem(t, "Getsuga Tangle", CategoryCore, 0)))
	require.NoError(t, inv.Add(newTestItem(t, "Sundering Slash", CategoryWeaponStamp, 0)))

	assert.Len(t, inv.StampsForSlot(1), 2)
	assert.Len(t, inv.StampsForSlot(2), 1)
	assert.Empty(t, inv.StampsForSlot(3))
	assert.Nil(t, inv.StampsForSlot(0))
	assert.Nil(t, inv.StampsForSlot(4))
	assert.Len(t, inv.Cores(), 1)
	assert.Len(t, inv.WeaponStamps(), 1)
	assert.Equal(t, InventoryCounts{Stamps: 3, Cores: 1, WeaponStamps: 1}, inv.Counts())
	assert.Equal(t, 5, inv.Len())

	names := make([]string, 0, inv.Len())
	for _, it := range inv.Items() {
		names = append(names, it.Name())
	}
	assert.Equal(t, []string{"RBM_1", "RBM_2", "RBM_3", "Getsuga Tangle", "Sundering Slash"}, names)
}

func TestInventory_Duplicate(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(newTestItem(t, "Same", CategoryCore, 0)))

	err := inv.Add(newTestItem(t, "Same", CategoryCore, 0))
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// same name, different category is allowed
	assert.NoError(t, inv.Add(newTestItem(t, "Same", CategoryWeaponStamp, 0)))
	assert.ErrorIs(t, inv.Add(nil), ErrInvalidInput)
}

func TestInventory_Remove(t *testing.T) {
	inv, err := NewInventoryFrom(
		newTestItem(t, "A", CategoryStamp, 2),
		newTestItem(t, "B", CategoryStamp, 2),
		newTestItem(t, "C", CategoryCore, 0),
	)
	require.NoError(t, err)

	require.NoError(t, inv.Remove(CategoryStamp, "A"))
	slot2 := inv.StampsForSlot(2)
	require.Len(t, slot2, 1)
	assert.Equal(t, "B", slot2[0].Name())

	_, ok := inv.Get(CategoryStamp, "A")
	assert.False(t, ok)

	assert.ErrorIs(t, inv.Remove(CategoryStamp, "A"), ErrItemNotFound)
	assert.ErrorIs(t, inv.Remove(CategoryWeaponStamp, "C"), ErrItemNotFound)
	assert.Equal(t, 2, inv.Len())
}

func TestInventory_SnapshotsAreIndependent(t *testing.T) {
	inv, err := NewInventoryFrom(newTestItem(t, "C1", CategoryCore, 0))
	require.NoError(t, err)

	cores := inv.Cores()
	require.NoError(t, inv.Add(newTestItem(t, "C2", CategoryCore, 0)))

	assert.Len(t, cores, 1, "snapshot must not observe later additions")
	assert.Len(t, inv.Cores(), 2)
}

func TestInventory_ConcurrentAccess(t *testing.T) {
	inv := NewInventory()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			item, err := NewItem("core-"+string(rune('A'+i%26))+string(rune('a'+i/26)), CategoryCore, 0, "", Stats{})
			if err == nil {
				_ = inv.Add(item)
			}
		}()
		go func() {
			defer wg.Done()
			_ = inv.Counts()
			_ = inv.Items()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, inv.Counts().Cores)
}
