package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrigger(t *testing.T) {
	for _, tr := range []Trigger{TriggerOnSpecialCast, TriggerPassive} {
		got, err := ParseTrigger(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, got)
	}

	_, err := ParseTrigger("on_hit")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "UNKNOWN(9)", Trigger(9).String())
}

func TestParseEffectKind(t *testing.T) {
	for _, k := range []EffectKind{EffectExtraHitMult, EffectBuffMVPct} {
		got, err := ParseEffectKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseEffectKind("heal")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewEffect(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		kind    EffectKind
		value   float64
		wantErr bool
	}{
		{"valid", TriggerOnSpecialCast, EffectExtraHitMult, 0.40, false},
		{"negative value", TriggerPassive, EffectBuffMVPct, -0.1, false},
		{"unknown trigger", TriggerUnknown, EffectBuffMVPct, 0.1, true},
		{"trigger out of range", Trigger(7), EffectBuffMVPct, 0.1, true},
		{"unknown kind", TriggerPassive, EffectUnknown, 0.1, true},
		{"NaN", TriggerPassive, EffectBuffMVPct, math.NaN(), true},
		{"Inf", TriggerPassive, EffectBuffMVPct, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := NewEffect(tt.trigger, tt.kind, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, eff.Value)
			assert.Nil(t, eff.Condition)
		})
	}
}

func TestEffectDef(t *testing.T) {
	def := EffectDef{Trigger: "on_special_cast", Type: "buff_mv_pct", Value: 0.15}
	eff, err := def.Effect()
	require.NoError(t, err)
	assert.Equal(t, TriggerOnSpecialCast, eff.Trigger)
	assert.Equal(t, EffectBuffMVPct, eff.Kind)

	gated := eff.When(func(Stats) bool { return false })
	assert.Equal(t, def, gated.Def(), "conditions are not persisted")

	_, err = EffectDef{Trigger: "passive", Type: "nope"}.Effect()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
