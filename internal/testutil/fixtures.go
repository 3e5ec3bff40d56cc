// Package testutil holds fixtures shared by athena tests.
package testutil

import (
	"testing"

	"github.com/udisondev/athena/internal/data"
	"github.com/udisondev/athena/internal/model"
)

// Базовые значения атаки персонажа из стартового примера.
const (
	SampleCharBaseAtk   = 605
	SampleWeaponBaseAtk = 908
)

// SampleTeam — командные баффы стартового примера.
var SampleTeam = model.TeamConfig{
	BuffAtkPct:     0.60,
	BuffAtkFlat:    540,
	BuffCritDamage: 0.23,
	BuffDmgBonus:   0.40,
}

// SampleInventory returns a fresh inventory of the built-in sample items.
func SampleInventory(t testing.TB) *model.Inventory {
	t.Helper()
	inv, err := data.BuildInventory(data.SampleItemDefs())
	if err != nil {
		t.Fatalf("building sample inventory: %v", err)
	}
	return inv
}

// MustGet returns an inventory item or fails the test.
func MustGet(t testing.TB, inv *model.Inventory, category model.Category, name string) *model.Item {
	t.Helper()
	item, ok := inv.Get(category, name)
	if !ok {
		t.Fatalf("item %s:%s not in inventory", category, name)
	}
	return item
}

// Item builds a validated item or fails the test.
func Item(t testing.TB, name string, category model.Category, slot int, setName string, stats model.Stats, effects ...model.Effect) *model.Item {
	t.Helper()
	item, err := model.NewItem(name, category, slot, setName, stats, effects...)
	if err != nil {
		t.Fatalf("creating item %q: %v", name, err)
	}
	return item
}

// Effect builds a validated effect or fails the test.
func Effect(t testing.TB, trigger model.Trigger, kind model.EffectKind, value float64) model.Effect {
	t.Helper()
	e, err := model.NewEffect(trigger, kind, value)
	if err != nil {
		t.Fatalf("creating effect: %v", err)
	}
	return e
}
