package model

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Stat field names used by persisted item definitions.
const (
	StatAtkFlat         = "atk_flat"
	StatAtkPct          = "atk_pct"
	StatBaseAtkMult     = "base_atk_mult"
	StatCritRate        = "crit_rate"
	StatCritDamage      = "crit_dmg"
	StatSlashDamage     = "slash_dmg"
	StatAllDamage       = "all_dmg"
	StatWeaponStatBoost = "weapon_stat_boost"
)

var statNames = []string{
	StatAtkFlat,
	StatAtkPct,
	StatBaseAtkMult,
	StatCritRate,
	StatCritDamage,
	StatSlashDamage,
	StatAllDamage,
	StatWeaponStatBoost,
}

// Stats — аддитивный вектор бонусов персонажа.
// Значение неизменяемо: Add возвращает новый экземпляр.
type Stats struct {
	AtkFlat         float64 `json:"atk_flat"`          // flat ATK
	AtkPct          float64 `json:"atk_pct"`           // ATK %
	BaseAtkMult     float64 `json:"base_atk_mult"`     // +X% base ATK (character + weapon)
	CritRate        float64 `json:"crit_rate"`
	CritDamage      float64 `json:"crit_dmg"`
	SlashDamage     float64 `json:"slash_dmg"`         // slash damage type bonus
	AllDamage       float64 `json:"all_dmg"`           // all damage type bonus
	WeaponStatBoost float64 `json:"weapon_stat_boost"` // weapon base ATK boost
}

// StatNames returns recognized stat names in canonical order.
func StatNames() []string {
	return slices.Clone(statNames)
}

// NewStats строит Stats из map "имя поля → значение".
// Отсутствующие поля равны нулю, неизвестные имена отклоняются с ErrInvalidInput.
func NewStats(values map[string]float64) (Stats, error) {
	var s Stats
	for _, name := range slices.Sorted(maps.Keys(values)) {
		v := values[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Stats{}, fmt.Errorf("%w: stat %q is not a finite number", ErrInvalidInput, name)
		}
		p := s.field(name)
		if p == nil {
			return Stats{}, fmt.Errorf("%w: unknown stat %q", ErrInvalidInput, name)
		}
		*p = v
	}
	return s, nil
}

func (s *Stats) field(name string) *float64 {
	switch name {
	case StatAtkFlat:
		return &s.AtkFlat
	case StatAtkPct:
		return &s.AtkPct
	case StatBaseAtkMult:
		return &s.BaseAtkMult
	case StatCritRate:
		return &s.CritRate
	case StatCritDamage:
		return &s.CritDamage
	case StatSlashDamage:
		return &s.SlashDamage
	case StatAllDamage:
		return &s.AllDamage
	case StatWeaponStatBoost:
		return &s.WeaponStatBoost
	default:
		return nil
	}
}

// Get returns the value of a named stat.
func (s Stats) Get(name string) (float64, bool) {
	p := s.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Add returns the pointwise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		AtkFlat:         s.AtkFlat + o.AtkFlat,
		AtkPct:          s.AtkPct + o.AtkPct,
		BaseAtkMult:     s.BaseAtkMult + o.BaseAtkMult,
		CritRate:        s.CritRate + o.CritRate,
		CritDamage:      s.CritDamage + o.CritDamage,
		SlashDamage:     s.SlashDamage + o.SlashDamage,
		AllDamage:       s.AllDamage + o.AllDamage,
		WeaponStatBoost: s.WeaponStatBoost + o.WeaponStatBoost,
	}
}

// SumStats folds blocks with Add. An empty fold is the zero block.
func SumStats(blocks ...Stats) Stats {
	var total Stats
	for _, b := range blocks {
		total = total.Add(b)
	}
	return total
}

// Map returns the non-zero fields keyed by stat name.
func (s Stats) Map() map[string]float64 {
	out := make(map[string]float64)
	for _, name := range statNames {
		if v, _ := s.Get(name); v != 0 {
			out[name] = v
		}
	}
	return out
}

// IsZero reports whether every field is zero.
func (s Stats) IsZero() bool {
	return s == Stats{}
}
