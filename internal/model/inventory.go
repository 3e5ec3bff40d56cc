package model

import (
	"fmt"
	"slices"
	"sync"
)

// Inventory — набор предметов, сгруппированный по категориям (stamps по слотам, cores, weapon stamps).
// Явное значение вместо глобального состояния: загружается при старте и передаётся в optimize/evaluate.
//
// Thread-safe: все методы защищены sync.RWMutex, геттеры возвращают копии слайсов.
type Inventory struct {
	mu sync.RWMutex

	stamps       [StampSlots][]*Item
	cores        []*Item
	weaponStamps []*Item
	order        []*Item // insertion order across categories
}

// InventoryCounts holds per-category item counts.
type InventoryCounts struct {
	Stamps       int `json:"stamps"`
	Cores        int `json:"cores"`
	WeaponStamps int `json:"weapon_stamps"`
}

// NewInventory создаёт пустой инвентарь.
func NewInventory() *Inventory {
	return &Inventory{}
}

// NewInventoryFrom создаёт инвентарь из списка предметов.
// Returns error on the first nil or duplicate item.
func NewInventoryFrom(items ...*Item) (*Inventory, error) {
	inv := NewInventory()
	for _, it := range items {
		if err := inv.Add(it); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// Add добавляет предмет.
// Returns ErrDuplicateItem if an item with the same name exists in the category.
func (inv *Inventory) Add(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item cannot be nil", ErrInvalidInput)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.findLocked(item.category, item.name) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item)
	}

	list := inv.listLocked(item.category, item.slot)
	if list == nil {
		return fmt.Errorf("%w: item %s has no inventory group", ErrInvalidInput, item)
	}
	*list = append(*list, item)
	inv.order = append(inv.order, item)
	return nil
}

// Remove удаляет предмет по категории и имени.
func (inv *Inventory) Remove(category Category, name string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item := inv.findLocked(category, name)
	if item == nil {
		return fmt.Errorf("%w: %s:%s", ErrItemNotFound, category, name)
	}

	list := inv.listLocked(item.category, item.slot)
	*list = slices.DeleteFunc(*list, func(it *Item) bool { return it == item })
	inv.order = slices.DeleteFunc(inv.order, func(it *Item) bool { return it == item })
	return nil
}

// Get возвращает предмет по категории и имени.
func (inv *Inventory) Get(category Category, name string) (*Item, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	item := inv.findLocked(category, name)
	return item, item != nil
}

// StampsForSlot возвращает stamps в слоте (1..3). Для неверного слота — nil.
func (inv *Inventory) StampsForSlot(slot int) []*Item {
	if slot < 1 || slot > StampSlots {
		return nil
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.stamps[slot-1])
}

// Cores возвращает все cores.
func (inv *Inventory) Cores() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.cores)
}

// WeaponStamps возвращает все weapon stamps.
func (inv *Inventory) WeaponStamps() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.weaponStamps)
}

// Items возвращает все предметы в порядке добавления.
func (inv *Inventory) Items() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.order)
}

// Len returns the total number of items.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.order)
}

// Counts returns per-category counts.
func (inv *Inventory) Counts() InventoryCounts {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	c := InventoryCounts{Cores: len(inv.cores), WeaponStamps: len(inv.weaponStamps)}
	for _, s := range inv.stamps {
		c.Stamps += len(s)
	}
	return c
}

func (inv *Inventory) listLocked(category Category, slot int) *[]*Item {
	switch category {
	case CategoryStamp:
		if slot < 1 || slot > StampSlots {
			return nil
		}
		return &inv.stamps[slot-1]
	case CategoryCore:
		return &inv.cores
	case CategoryWeaponStamp:
		return &inv.weaponStamps
	default:
		return nil
	}
}

func (inv *Inventory) findLocked(category Category, name string) *Item {
	for _, it := range inv.order {
		if it.category == category && it.name == name {
			return it
		}
	}
	return nil
}
