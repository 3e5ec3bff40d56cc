package combat

// Formula constants for one special-attack cast.
const (
	// BaseCritRate is the character's innate critical rate.
	BaseCritRate = 0.05
	// BaseCritDamage is the character's innate critical damage.
	BaseCritDamage = 0.50

	// Bond passive: tiered damage bonus by critical rate, plus a flat all-type bonus.
	BondDamageBase      = 0.08
	BondDamageTier1     = 0.12 // crit rate >= BondTier1CritRate
	BondDamageTier2     = 0.16 // crit rate >= BondTier2CritRate
	BondTier1CritRate   = 0.20
	BondTier2CritRate   = 0.40
	BondAllTypeBonus    = 0.15
	BondCritDamageBonus = 0.30

	// CritRateCap is the critical rate above which the surplus converts to critical damage.
	CritRateCap = 1.0
	// CritOverflowRatio converts surplus critical rate into critical damage.
	CritOverflowRatio = 1.75

	// MarkBonus is the external mark damage bonus, assumed always active.
	MarkBonus = 0.25
	// ResistanceMult is the debuffed enemy resistance multiplier.
	ResistanceMult = 1.72
	// SpecialAttackMV is the base motion value of one special-attack cast.
	SpecialAttackMV = 3.35
)
