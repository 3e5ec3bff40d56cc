package model

import (
	"fmt"
	"slices"
	"strings"
)

// Category — категория экипируемого предмета.
type Category uint8

const (
	CategoryUnknown     Category = iota
	CategoryStamp                // slotted, slots 1..3
	CategoryCore                 // one per build
	CategoryWeaponStamp          // one per build
)

// StampSlots is the number of stamp slots in a build.
const StampSlots = 3

// String returns the persisted category name.
func (c Category) String() string {
	switch c {
	case CategoryStamp:
		return "stamp"
	case CategoryCore:
		return "core"
	case CategoryWeaponStamp:
		return "weapon_stamp"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(c))
	}
}

// ParseCategory parses a persisted category name.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "stamp":
		return CategoryStamp, nil
	case "core":
		return CategoryCore, nil
	case "weapon_stamp":
		return CategoryWeaponStamp, nil
	default:
		return CategoryUnknown, fmt.Errorf("%w: unknown item category %q", ErrInvalidInput, s)
	}
}

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryStamp, CategoryCore, CategoryWeaponStamp}
}

// Item — экипируемый предмет: категория, слот (только для stamp), сет, статы и эффекты.
// Неизменяем после создания.
type Item struct {
	name     string
	category Category
	slot     int // 1..3 for stamps, 0 otherwise
	setName  string
	stats    Stats
	effects  []Effect
}

// NewItem создаёт предмет с валидацией.
//
// Validation:
//   - name must not be blank or contain '/'
//   - stamp requires slot 1..3
//   - core and weapon_stamp require slot 0
func NewItem(name string, category Category, slot int, setName string, stats Stats, effects ...Effect) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrInvalidInput)
	}
	if strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: item name %q cannot contain '/'", ErrInvalidInput, name)
	}

	switch category {
	case CategoryStamp:
		if slot < 1 || slot > StampSlots {
			return nil, fmt.Errorf("%w: stamp %q slot must be 1..%d, got %d", ErrInvalidInput, name, StampSlots, slot)
		}
	case CategoryCore, CategoryWeaponStamp:
		if slot != 0 {
			return nil, fmt.Errorf("%w: %s %q cannot have a slot, got %d", ErrInvalidInput, category, name, slot)
		}
	default:
		return nil, fmt.Errorf("%w: item %q has category %s", ErrInvalidInput, name, category)
	}

	for i, e := range effects {
		if _, err := NewEffect(e.Trigger, e.Kind, e.Value); err != nil {
			return nil, fmt.Errorf("item %q effect #%d: %w", name, i, err)
		}
	}

	return &Item{
		name:     name,
		category: category,
		slot:     slot,
		setName:  strings.TrimSpace(setName),
		stats:    stats,
		effects:  slices.Clone(effects),
	}, nil
}

// Name возвращает имя предмета (уникально в пределах категории).
func (i *Item) Name() string { return i.name }

// Category возвращает категорию предмета.
func (i *Item) Category() Category { return i.category }

// Slot возвращает слот stamp (0 для core / weapon_stamp).
func (i *Item) Slot() int { return i.slot }

// SetName возвращает имя сета ("" если предмет не входит в сет).
func (i *Item) SetName() string { return i.setName }

// Stats возвращает статы предмета.
func (i *Item) Stats() Stats { return i.stats }

// Effects returns a copy of the item's effects.
func (i *Item) Effects() []Effect { return slices.Clone(i.effects) }

// AppendEffects appends the item's effects to dst.
func (i *Item) AppendEffects(dst []Effect) []Effect {
	return append(dst, i.effects...)
}

// String returns "category:name".
func (i *Item) String() string {
	return i.category.String() + ":" + i.name
}

// ItemDef is the persisted item representation.
// Stats may omit any subset of recognized fields.
type ItemDef struct {
	Name     string             `yaml:"name" json:"name"`
	Category string             `yaml:"category" json:"category"`
	Slot     int                `yaml:"slot,omitempty" json:"slot,omitempty"`
	SetName  string             `yaml:"set_name,omitempty" json:"set_name,omitempty"`
	Stats    map[string]float64 `yaml:"stats,omitempty" json:"stats,omitempty"`
	Effects  []EffectDef        `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// Item validates the definition and builds the item.
func (d ItemDef) Item() (*Item, error) {
	category, err := ParseCategory(d.Category)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", d.Name, err)
	}
	stats, err := NewStats(d.Stats)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", d.Name, err)
	}
	effects := make([]Effect, 0, len(d.Effects))
	for i, ed := range d.Effects {
		e, err := ed.Effect()
		if err != nil {
			return nil, fmt.Errorf("item %q effect #%d: %w", d.Name, i, err)
		}
		effects = append(effects, e)
	}
	return NewItem(d.Name, category, d.Slot, d.SetName, stats, effects...)
}

// Def returns the persisted form of the item.
func (i *Item) Def() ItemDef {
	d := ItemDef{
		Name:     i.name,
		Category: i.category.String(),
		Slot:     i.slot,
		SetName:  i.setName,
	}
	if m := i.stats.Map(); len(m) > 0 {
		d.Stats = m
	}
	for _, e := range i.effects {
		d.Effects = append(d.Effects, e.Def())
	}
	return d
}
