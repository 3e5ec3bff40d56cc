package data

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/athena/internal/model"
)

// sampleItemDefs — стартовый инвентарь Ichigo (значения сняты с игровых предметов).
var sampleItemDefs = []model.ItemDef{
	// Rising Black Moon
	{Name: "RBM_1 (Lv30)", Category: "stamp", Slot: 1, SetName: "Rising Black Moon",
		Stats: map[string]float64{"atk_flat": 630, "atk_pct": 0.21, "crit_dmg": 0.153}},
	{Name: "RBM_2 (Lv15)", Category: "stamp", Slot: 1, SetName: "Rising Black Moon",
		Stats: map[string]float64{"atk_flat": 369, "slash_dmg": 0.117, "crit_rate": 0.038, "crit_dmg": 0.076}},
	{Name: "RBM_3 (Lv15)", Category: "stamp", Slot: 2, SetName: "Rising Black Moon",
		Stats: map[string]float64{"atk_flat": 247, "crit_rate": 0.038, "atk_pct": 0.05}},
	{Name: "RBM_4 (Lv1)", Category: "stamp", Slot: 3, SetName: "Rising Black Moon",
		Stats: map[string]float64{"crit_rate": 0.038, "atk_pct": 0.025}},

	// Beast Tyrant
	{Name: "BT_1 (Lv25)", Category: "stamp", Slot: 1, SetName: "Beast Tyrant",
		Stats: map[string]float64{"atk_flat": 585, "atk_pct": 0.23, "crit_dmg": 0.153}},
	{Name: "BT_2 (Lv25)", Category: "stamp", Slot: 2, SetName: "Beast Tyrant",
		Stats: map[string]float64{"crit_rate": 0.276, "crit_dmg": 0.153, "atk_pct": 0.025}},
	{Name: "BT_3 (Lv25)", Category: "stamp", Slot: 3, SetName: "Beast Tyrant",
		Stats: map[string]float64{"atk_pct": 0.23, "crit_rate": 0.076}},

	// Cores
	{Name: "Getsuga Tangle", Category: "core",
		Stats: map[string]float64{"atk_flat": 543, "slash_dmg": 0.20}},
	{Name: "Waiting for You", Category: "core",
		Stats:   map[string]float64{"atk_flat": 332, "all_dmg": 0.099},
		Effects: []model.EffectDef{{Trigger: "on_special_cast", Type: "buff_mv_pct", Value: 0.875}}},
	{Name: "Gather Up! 13", Category: "core",
		Stats:   map[string]float64{"atk_flat": 100, "all_dmg": 0.064},
		Effects: []model.EffectDef{{Trigger: "on_special_cast", Type: "extra_hit_mult", Value: 0.4375}}},

	// Weapon stamps
	{Name: "Power of Hollowfication", Category: "weapon_stamp",
		Stats:   map[string]float64{"crit_rate": 0.15, "weapon_stat_boost": 0.50},
		Effects: []model.EffectDef{{Trigger: "on_special_cast", Type: "extra_hit_mult", Value: 1.78}}},
	{Name: "Sundering Slash", Category: "weapon_stamp",
		Stats: map[string]float64{"base_atk_mult": 0.15, "weapon_stat_boost": 0.25}},
}

// SampleItemDefs returns the built-in sample item definitions.
func SampleItemDefs() []model.ItemDef {
	out := make([]model.ItemDef, len(sampleItemDefs))
	copy(out, sampleItemDefs)
	return out
}

// LoadSampleInventory строит инвентарь из встроенных sample-предметов.
func LoadSampleInventory() (*model.Inventory, error) {
	inv, err := BuildInventory(sampleItemDefs)
	if err != nil {
		return nil, fmt.Errorf("loading sample inventory: %w", err)
	}
	c := inv.Counts()
	slog.Info("loaded sample inventory", "stamps", c.Stamps, "cores", c.Cores, "weapon_stamps", c.WeaponStamps)
	return inv, nil
}

// BuildInventory validates defs and adds them to a new inventory in order.
func BuildInventory(defs []model.ItemDef) (*model.Inventory, error) {
	inv := model.NewInventory()
	for i := range defs {
		item, err := defs[i].Item()
		if err != nil {
			return nil, err
		}
		if err := inv.Add(item); err != nil {
			return nil, err
		}
	}
	return inv, nil
}
