package combat

import "github.com/udisondev/athena/internal/model"

// Known set names.
const (
	SetRisingBlackMoon = "Rising Black Moon"
	SetBeastTyrant     = "Beast Tyrant"
)

// SetBonusRule unlocks Apply when at least MinCount equipped stamps share SetName.
// Apply receives the aggregated stats and effects and returns the updated pair.
type SetBonusRule struct {
	SetName  string
	MinCount int
	Apply    func(stats model.Stats, effects []model.Effect) (model.Stats, []model.Effect)
}

// SetBonusTable is an ordered list of rules. Each rule is checked independently,
// so two sets may both apply to one build.
type SetBonusTable []SetBonusRule

// DefaultSetBonuses returns the built-in set bonus rules.
func DefaultSetBonuses() SetBonusTable {
	return SetBonusTable{
		risingBlackMoon3pc(),
		beastTyrant3pc(),
	}
}

// Apply counts set names among stamps and applies every rule whose threshold is met.
// Returns updated stats, effects and the names of the rules that applied (table order).
func (t SetBonusTable) Apply(stamps []*model.Item, stats model.Stats, effects []model.Effect) (model.Stats, []model.Effect, []string) {
	if len(t) == 0 {
		return stats, effects, nil
	}

	var active []string
	for _, rule := range t {
		if rule.Apply == nil || countSet(stamps, rule.SetName) < rule.MinCount {
			continue
		}
		stats, effects = rule.Apply(stats, effects)
		active = append(active, rule.SetName)
	}
	return stats, effects, active
}

func countSet(stamps []*model.Item, setName string) int {
	if setName == "" {
		return 0
	}
	n := 0
	for _, s := range stamps {
		if s != nil && s.SetName() == setName {
			n++
		}
	}
	return n
}

// Rising Black Moon 3pc: +11% slash, +18% base ATK, special attack +28% motion value.
func risingBlackMoon3pc() SetBonusRule {
	return SetBonusRule{
		SetName:  SetRisingBlackMoon,
		MinCount: 3,
		Apply: func(s model.Stats, effects []model.Effect) (model.Stats, []model.Effect) {
			s.SlashDamage += 0.11
			s.BaseAtkMult += 0.18
			effects = append(effects, model.Effect{
				Trigger: model.TriggerOnSpecialCast,
				Kind:    model.EffectBuffMVPct,
				Value:   0.28,
			})
			return s, effects
		},
	}
}

// Beast Tyrant 3pc: +16% base ATK, plus three stacking bonuses averaged over a 66% uptime.
func beastTyrant3pc() SetBonusRule {
	return SetBonusRule{
		SetName:  SetBeastTyrant,
		MinCount: 3,
		Apply: func(s model.Stats, effects []model.Effect) (model.Stats, []model.Effect) {
			s.BaseAtkMult += 0.16
			s.AtkPct += uptimeShare(0.34, 0.66)
			s.CritRate += uptimeShare(0.36, 0.66)
			s.AllDamage += uptimeShare(0.23, 0.66)
			return s, effects
		},
	}
}

// uptimeShare weights one third of source by uptime.
func uptimeShare(source, uptime float64) float64 {
	return (source / 3) * uptime
}
