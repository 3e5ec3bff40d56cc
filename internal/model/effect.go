package model

import (
	"fmt"
	"math"
)

// Trigger describes when an effect fires.
type Trigger uint8

const (
	TriggerUnknown       Trigger = iota
	TriggerOnSpecialCast         // fires on casting the special attack
	TriggerPassive               // always on
)

// String returns the persisted trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerOnSpecialCast:
		return "on_special_cast"
	case TriggerPassive:
		return "passive"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParseTrigger parses a persisted trigger name.
func ParseTrigger(s string) (Trigger, error) {
	switch s {
	case "on_special_cast":
		return TriggerOnSpecialCast, nil
	case "passive":
		return TriggerPassive, nil
	default:
		return TriggerUnknown, fmt.Errorf("%w: unknown effect trigger %q", ErrInvalidInput, s)
	}
}

// EffectKind describes what an effect modifies.
type EffectKind uint8

const (
	EffectUnknown      EffectKind = iota
	EffectExtraHitMult            // extra hit as a ratio of the main hit
	EffectBuffMVPct               // added to the skill motion value
)

// String returns the persisted effect type name.
func (k EffectKind) String() string {
	switch k {
	case EffectExtraHitMult:
		return "extra_hit_mult"
	case EffectBuffMVPct:
		return "buff_mv_pct"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// ParseEffectKind parses a persisted effect type name.
func ParseEffectKind(s string) (EffectKind, error) {
	switch s {
	case "extra_hit_mult":
		return EffectExtraHitMult, nil
	case "buff_mv_pct":
		return EffectBuffMVPct, nil
	default:
		return EffectUnknown, fmt.Errorf("%w: unknown effect type %q", ErrInvalidInput, s)
	}
}

// Condition gates an effect on the aggregated stats of the build it is part of.
type Condition func(totals Stats) bool

// Effect — условный числовой модификатор предмета.
// Эффекты — данные: их интерпретирует калькулятор через реестр (trigger, kind).
type Effect struct {
	Trigger   Trigger
	Kind      EffectKind
	Value     float64
	Condition Condition // nil means always active
}

// NewEffect validates trigger and kind and returns an unconditional effect.
func NewEffect(trigger Trigger, kind EffectKind, value float64) (Effect, error) {
	if trigger == TriggerUnknown || trigger > TriggerPassive {
		return Effect{}, fmt.Errorf("%w: effect trigger %s", ErrInvalidInput, trigger)
	}
	if kind == EffectUnknown || kind > EffectBuffMVPct {
		return Effect{}, fmt.Errorf("%w: effect type %s", ErrInvalidInput, kind)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Effect{}, fmt.Errorf("%w: effect value is not a finite number", ErrInvalidInput)
	}
	return Effect{Trigger: trigger, Kind: kind, Value: value}, nil
}

// When returns a copy of e gated by cond.
func (e Effect) When(cond Condition) Effect {
	e.Condition = cond
	return e
}

// Holds reports whether the effect's condition is met for totals.
func (e Effect) Holds(totals Stats) bool {
	return e.Condition == nil || e.Condition(totals)
}

// EffectDef is the persisted form of an Effect. Conditions are not persisted.
type EffectDef struct {
	Trigger string  `yaml:"trigger" json:"trigger"`
	Type    string  `yaml:"type" json:"type"`
	Value   float64 `yaml:"value" json:"value"`
}

// Effect parses the definition.
func (d EffectDef) Effect() (Effect, error) {
	trigger, err := ParseTrigger(d.Trigger)
	if err != nil {
		return Effect{}, err
	}
	kind, err := ParseEffectKind(d.Type)
	if err != nil {
		return Effect{}, err
	}
	return NewEffect(trigger, kind, d.Value)
}

// Def returns the persisted form of e.
func (e Effect) Def() EffectDef {
	return EffectDef{Trigger: e.Trigger.String(), Type: e.Kind.String(), Value: e.Value}
}
