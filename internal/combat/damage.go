package combat

import (
	"fmt"

	"github.com/udisondev/athena/internal/model"
)

// Scenario is one build to evaluate: exactly one stamp per slot, one core, one weapon stamp.
// Stamps may be given in any slot order.
type Scenario struct {
	CharBaseAtk   float64
	WeaponBaseAtk float64
	Stamps        [model.StampSlots]*model.Item
	Core          *model.Item
	WeaponStamp   *model.Item
	Team          model.TeamConfig
}

// Result is the damage of one special-attack cast plus the final stats that produced it.
type Result struct {
	Damage          float64   `json:"damage"`
	FinalAttack     float64   `json:"final_attack"`
	FinalCritRate   float64   `json:"final_crit_rate"`
	FinalCritDamage float64   `json:"final_crit_damage"`
	Breakdown       Breakdown `json:"breakdown"`
}

// Breakdown holds intermediate values of the formula for diagnostics.
type Breakdown struct {
	TotalStats     model.Stats `json:"total_stats"`
	BaseAttack     float64     `json:"base_attack"`
	BondDamage     float64     `json:"bond_damage"`
	CritFactor     float64     `json:"crit_factor"`
	DamageMult     float64     `json:"damage_mult"`
	MotionValue    float64     `json:"motion_value"`
	ExtraHitRatio  float64     `json:"extra_hit_ratio"`
	MainHit        float64     `json:"main_hit"`
	ActiveSets     []string    `json:"active_sets,omitempty"`
	EffectsApplied int         `json:"effects_applied"`
}

// Evaluator computes scenario damage. Safe for concurrent use once constructed.
type Evaluator struct {
	sets    SetBonusTable
	effects *EffectRegistry
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSetBonuses replaces the set bonus table.
func WithSetBonuses(t SetBonusTable) Option {
	return func(e *Evaluator) { e.sets = t }
}

// WithEffectRegistry replaces the effect registry.
func WithEffectRegistry(r *EffectRegistry) Option {
	return func(e *Evaluator) { e.effects = r }
}

// NewEvaluator creates an Evaluator with the default set table and effect registry.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		sets:    DefaultSetBonuses(),
		effects: DefaultEffectRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.effects == nil {
		e.effects = NewEffectRegistry()
	}
	return e
}

var defaultEvaluator = NewEvaluator()

// Default returns the shared default Evaluator.
func Default() *Evaluator { return defaultEvaluator }

// Evaluate runs s through the default Evaluator.
func Evaluate(s Scenario) (Result, error) {
	return defaultEvaluator.Evaluate(s)
}

// ValidateScenario checks that s holds one stamp per slot 1..3, a core and a weapon stamp.
func ValidateScenario(s Scenario) error {
	var seen [model.StampSlots]bool
	for i, st := range s.Stamps {
		if st == nil {
			return fmt.Errorf("%w: stamp #%d is missing", model.ErrInvalidInput, i+1)
		}
		if st.Category() != model.CategoryStamp {
			return fmt.Errorf("%w: %s is not a stamp", model.ErrInvalidInput, st)
		}
		slot := st.Slot()
		if slot < 1 || slot > model.StampSlots {
			return fmt.Errorf("%w: stamp %s has slot %d", model.ErrInvalidInput, st, slot)
		}
		if seen[slot-1] {
			return fmt.Errorf("%w: slot %d is occupied twice", model.ErrInvalidInput, slot)
		}
		seen[slot-1] = true
	}
	if s.Core == nil {
		return fmt.Errorf("%w: core is missing", model.ErrInvalidInput)
	}
	if s.Core.Category() != model.CategoryCore {
		return fmt.Errorf("%w: %s is not a core", model.ErrInvalidInput, s.Core)
	}
	if s.WeaponStamp == nil {
		return fmt.Errorf("%w: weapon stamp is missing", model.ErrInvalidInput)
	}
	if s.WeaponStamp.Category() != model.CategoryWeaponStamp {
		return fmt.Errorf("%w: %s is not a weapon stamp", model.ErrInvalidInput, s.WeaponStamp)
	}
	return nil
}

// Evaluate computes the damage of one special-attack cast for s.
// Returns an error wrapping model.ErrInvalidInput if s is not a legal build.
func (e *Evaluator) Evaluate(s Scenario) (Result, error) {
	if err := ValidateScenario(s); err != nil {
		return Result{}, err
	}

	// 1. Aggregate stats and effects: stamps, core, weapon stamp.
	items := [model.StampSlots + 2]*model.Item{s.Stamps[0], s.Stamps[1], s.Stamps[2], s.Core, s.WeaponStamp}
	var total model.Stats
	effects := make([]model.Effect, 0, 8)
	for _, it := range items {
		total = total.Add(it.Stats())
		effects = it.AppendEffects(effects)
	}

	// 2. Set bonuses.
	total, effects, activeSets := e.sets.Apply(s.Stamps[:], total, effects)

	// 3. Attack.
	weaponAtk := s.WeaponBaseAtk * (1 + total.WeaponStatBoost)
	baseAtk := (s.CharBaseAtk + weaponAtk) * (1 + total.BaseAtkMult)
	finalAtk := baseAtk*(1+total.AtkPct+s.Team.BuffAtkPct) + total.AtkFlat + s.Team.BuffAtkFlat

	// 4. Critical. Bond tier is read before the overflow clamp.
	critRate := BaseCritRate + total.CritRate
	bondDmg := bondDamageBonus(critRate)
	critDmg := BaseCritDamage + total.CritDamage + BondCritDamageBonus + s.Team.BuffCritDamage
	critRate, critDmg = applyCritOverflow(critRate, critDmg)
	critFactor := 1 + critRate*critDmg

	// 5. Damage bucket: all additive bonuses share one multiplier.
	dmgMult := 1 + total.SlashDamage + total.AllDamage + bondDmg + s.Team.BuffDmgBonus + MarkBonus

	// 6-7. Motion value and extra hits.
	mods, applied := e.effects.Resolve(effects, total)
	mv := SpecialAttackMV + mods.MotionValueBonus

	// 8-9. Extra hits inherit every multiplier of the main hit.
	mainHit := finalAtk * critFactor * dmgMult * ResistanceMult * mv
	damage := mainHit * (1 + mods.ExtraHitRatio)

	return Result{
		Damage:          damage,
		FinalAttack:     finalAtk,
		FinalCritRate:   critRate,
		FinalCritDamage: critDmg,
		Breakdown: Breakdown{
			TotalStats:     total,
			BaseAttack:     baseAtk,
			BondDamage:     bondDmg,
			CritFactor:     critFactor,
			DamageMult:     dmgMult,
			MotionValue:    mv,
			ExtraHitRatio:  mods.ExtraHitRatio,
			MainHit:        mainHit,
			ActiveSets:     activeSets,
			EffectsApplied: applied,
		},
	}, nil
}

// bondDamageBonus returns the tiered bond damage bonus for critRate, including the all-type bonus.
func bondDamageBonus(critRate float64) float64 {
	bond := BondDamageBase
	switch {
	case critRate >= BondTier2CritRate:
		bond = BondDamageTier2
	case critRate >= BondTier1CritRate:
		bond = BondDamageTier1
	}
	return bond + BondAllTypeBonus
}

// applyCritOverflow converts critical rate above the cap into critical damage and clamps the rate.
func applyCritOverflow(critRate, critDmg float64) (float64, float64) {
	if critRate <= CritRateCap {
		return critRate, critDmg
	}
	surplus := critRate - CritRateCap
	return CritRateCap, critDmg + surplus*CritOverflowRatio
}
