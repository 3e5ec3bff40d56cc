package model

// TeamConfig — баффы от команды, добавляемые в формулу урона.
// Read-only input of one evaluation.
type TeamConfig struct {
	BuffAtkPct     float64 `yaml:"buff_atk_pct" json:"buff_atk_pct" env:"BUFF_ATK_PCT"`
	BuffAtkFlat    float64 `yaml:"buff_atk_flat" json:"buff_atk_flat" env:"BUFF_ATK_FLAT"`
	BuffCritDamage float64 `yaml:"buff_crit_dmg" json:"buff_crit_dmg" env:"BUFF_CRIT_DMG"`
	BuffDmgBonus   float64 `yaml:"buff_dmg_bonus" json:"buff_dmg_bonus" env:"BUFF_DMG_BONUS"`
}
