package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/athena/internal/model"
)

func TestEffectRegistry(t *testing.T) {
	r := DefaultEffectRegistry()

	_, ok := r.Lookup(model.TriggerOnSpecialCast, model.EffectBuffMVPct)
	assert.True(t, ok)
	_, ok = r.Lookup(model.TriggerOnSpecialCast, model.EffectExtraHitMult)
	assert.True(t, ok)
	_, ok = r.Lookup(model.TriggerPassive, model.EffectExtraHitMult)
	assert.False(t, ok)

	effects := []model.Effect{
		{Trigger: model.TriggerOnSpecialCast, Kind: model.EffectBuffMVPct, Value: 0.28},
		{Trigger: model.TriggerOnSpecialCast, Kind: model.EffectBuffMVPct, Value: 0.875},
		{Trigger: model.TriggerOnSpecialCast, Kind: model.EffectExtraHitMult, Value: 1.78},
		{Trigger: model.TriggerPassive, Kind: model.EffectExtraHitMult, Value: 9},
		{Trigger: model.TriggerOnSpecialCast, Kind: model.EffectExtraHitMult, Value: 3,
			Condition: func(model.Stats) bool { return false }},
	}
	m, applied := r.Resolve(effects, model.Stats{})
	assert.Equal(t, 3, applied)
	assert.InDelta(t, 1.155, m.MotionValueBonus, 1e-12)
	assert.InDelta(t, 1.78, m.ExtraHitRatio, 1e-12)

	m, applied = NewEffectRegistry().Resolve(effects, model.Stats{})
	assert.Zero(t, applied)
	assert.Equal(t, Modifiers{}, m)
}
