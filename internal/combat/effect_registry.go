package combat

import "github.com/udisondev/athena/internal/model"

// Modifiers accumulates resolved effect values for one cast.
type Modifiers struct {
	MotionValueBonus float64 // added to SpecialAttackMV
	ExtraHitRatio    float64 // extra hits as a fraction of the main hit
}

// Accumulator folds one effect value into m.
type Accumulator func(m *Modifiers, value float64)

type effectKey struct {
	trigger model.Trigger
	kind    model.EffectKind
}

// EffectRegistry maps (trigger, kind) to an accumulator.
// Pairs without a registered accumulator do not contribute to a cast.
//
// Not safe for concurrent Register; build it once, then share it read-only.
type EffectRegistry struct {
	handlers map[effectKey]Accumulator
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{handlers: make(map[effectKey]Accumulator)}
}

// DefaultEffectRegistry returns the registry of effects that act on a special cast.
func DefaultEffectRegistry() *EffectRegistry {
	r := NewEffectRegistry()
	r.Register(model.TriggerOnSpecialCast, model.EffectBuffMVPct, func(m *Modifiers, v float64) {
		m.MotionValueBonus += v
	})
	r.Register(model.TriggerOnSpecialCast, model.EffectExtraHitMult, func(m *Modifiers, v float64) {
		m.ExtraHitRatio += v
	})
	return r
}

// Register sets the accumulator for (trigger, kind), replacing any previous one.
func (r *EffectRegistry) Register(trigger model.Trigger, kind model.EffectKind, acc Accumulator) {
	r.handlers[effectKey{trigger: trigger, kind: kind}] = acc
}

// Lookup returns the accumulator for (trigger, kind).
func (r *EffectRegistry) Lookup(trigger model.Trigger, kind model.EffectKind) (Accumulator, bool) {
	acc, ok := r.handlers[effectKey{trigger: trigger, kind: kind}]
	return acc, ok
}

// Resolve folds effects whose condition holds for totals.
// Returns the modifiers and the number of effects that contributed.
func (r *EffectRegistry) Resolve(effects []model.Effect, totals model.Stats) (Modifiers, int) {
	var (
		m       Modifiers
		applied int
	)
	for _, e := range effects {
		acc, ok := r.handlers[effectKey{trigger: e.Trigger, kind: e.Kind}]
		if !ok || !e.Holds(totals) {
			continue
		}
		acc(&m, e.Value)
		applied++
	}
	return m, applied
}
