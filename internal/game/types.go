package game

// DamageType identifies what a die does when it wins an exchange. Slash,
// Pierce and Blunt are offensive; Block and Evade are defensive.
type DamageType string

const (
	DamageSlash  DamageType = "slash"
	DamagePierce DamageType = "pierce"
	DamageBlunt  DamageType = "blunt"
	DamageBlock  DamageType = "block"
	DamageEvade  DamageType = "evade"
)

// IsAttack reports whether the type deals damage when unopposed.
func (t DamageType) IsAttack() bool {
	return t == DamageSlash || t == DamagePierce || t == DamageBlunt
}

// IsDefensive reports whether the type only contests incoming dice.
func (t DamageType) IsDefensive() bool {
	return t == DamageBlock || t == DamageEvade
}

// CardType drives execution priority and how a card is resolved.
type CardType string

const (
	CardMelee          CardType = "melee"
	CardOffensive      CardType = "offensive"
	CardRanged         CardType = "ranged"
	CardMassSummation  CardType = "mass_summation"
	CardMassIndividual CardType = "mass_individual"
	CardOnPlay         CardType = "on_play"
	CardItem           CardType = "item"
)

// IsMass reports whether the card resolves against every enemy at once.
func (t CardType) IsMass() bool {
	return t == CardMassSummation || t == CardMassIndividual
}

// Card flags understood by the resolution pipeline.
const (
	FlagUnchangeable = "unchangeable"
	FlagFriendly     = "friendly"
	FlagOffensive    = "offensive"
)

// Attribute and skill keys. Attribute-derived roll bonuses divide by three
// (a 6 Strength unit rolls attack dice at +2).
const (
	AttrStrength   = "strength"
	AttrEndurance  = "endurance"
	AttrAcrobatics = "acrobatics"
	AttrLuck       = "luck"

	SkillSpeed = "speed"
)

// Modifier keys recomputed by every stat-recalculation pass. Mechanics
// contribute to these through the OnCalculateStats filter.
const (
	ModPowerAttack = "power_attack"
	ModPowerBlock  = "power_block"
	ModPowerEvade  = "power_evade"
	ModPowerAll    = "power_all"

	ModPowerSlash  = "power_slash"
	ModPowerPierce = "power_pierce"
	ModPowerBlunt  = "power_blunt"

	ModPowerLight  = "power_light"
	ModPowerMedium = "power_medium"
	ModPowerHeavy  = "power_heavy"
	ModPowerRanged = "power_ranged"

	ModInitiative      = "initiative"
	ModDamageDeal      = "damage_deal"
	ModDamageTake      = "damage_take"
	ModStaggerTake     = "stagger_take"
	ModDamageThreshold = "damage_threshold"

	ModDisableBlock = "disable_block"
	ModDisableEvade = "disable_evade"

	ModHPMax      = "hp_max"
	ModSPMax      = "sp_max"
	ModStaggerMax = "stagger_max"
)

// WeaponClass selects which weapon power modifier applies to attack rolls.
type WeaponClass string

const (
	WeaponLight  WeaponClass = "light"
	WeaponMedium WeaponClass = "medium"
	WeaponHeavy  WeaponClass = "heavy"
	WeaponRanged WeaponClass = "ranged"
)

// PowerMod returns the modifier key granted by the weapon class.
func (c WeaponClass) PowerMod() string {
	switch c {
	case WeaponLight:
		return ModPowerLight
	case WeaponMedium:
		return ModPowerMedium
	case WeaponHeavy:
		return ModPowerHeavy
	case WeaponRanged:
		return ModPowerRanged
	}
	return ""
}

// Weapon is an equippable definition. The bound passive is looked up in the
// mechanic registry by id; unknown ids mean the weapon grants no passive.
type Weapon struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Class     WeaponClass `json:"class"`
	PassiveID string      `json:"passive_id"`
}

// Modifier is a flat+percent pair. Percent always applies through
// GetModdedValue so truncation behaves identically everywhere.
type Modifier struct {
	Flat int `json:"flat"`
	Pct  int `json:"pct"`
}
