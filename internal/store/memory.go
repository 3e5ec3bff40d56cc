package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/udisondev/athena/internal/model"
)

// Memory keeps items in process memory. Changes are lost on exit.
type Memory struct {
	mu    sync.Mutex
	items []*model.Item
}

// NewMemory creates a store seeded with the items of inv (may be nil).
func NewMemory(inv *model.Inventory) *Memory {
	m := &Memory{}
	if inv != nil {
		m.items = inv.Items()
	}
	return m
}

// LoadInventory returns a fresh inventory of the stored items.
func (m *Memory) LoadInventory(ctx context.Context) (*model.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.NewInventoryFrom(m.items...)
}

// SaveItem adds item or replaces the item with the same category and name in place.
func (m *Memory) SaveItem(ctx context.Context, item *model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: nil item", model.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(item.Category(), item.Name()); i >= 0 {
		m.items[i] = item
		return nil
	}
	m.items = append(m.items, item)
	return nil
}

// DeleteItem removes an item; model.ErrItemNotFound if absent.
func (m *Memory) DeleteItem(ctx context.Context, category model.Category, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(category, name)
	if i < 0 {
		return fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func (m *Memory) indexLocked(category model.Category, name string) int {
	for i, it := range m.items {
		if it.Category() == category && it.Name() == name {
			return i
		}
	}
	return -1
}
