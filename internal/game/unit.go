package game

// ActiveSlot is one rolled speed die for the current round, carrying the
// candidate card and target the unit committed during planning.
type ActiveSlot struct {
	Speed          int    `json:"speed"`
	Card           *Card  `json:"card,omitempty"`
	TargetUnit     int    `json:"target_unit"`
	TargetSlot     int    `json:"target_slot"`
	IsAggro        bool   `json:"is_aggro,omitempty"`
	DestroyOnSpeed bool   `json:"destroy_on_speed,omitempty"`
	Stunned        bool   `json:"stunned,omitempty"`
	SourceEffect   string `json:"source_effect,omitempty"`
	Locked         bool   `json:"locked,omitempty"`
	Consumed       bool   `json:"consumed,omitempty"`

	// Redirection results, recomputed every round.
	ForceClash    bool `json:"force_clash,omitempty"`
	ForceOneSided bool `json:"force_onesided,omitempty"`
}

// HasTarget reports whether the slot declared an enemy (unit, slot) pair.
func (s *ActiveSlot) HasTarget() bool {
	return s != nil && s.TargetUnit >= 0 && s.TargetSlot >= 0
}

// Unit is the central mutable aggregate: a full character sheet plus the
// transient combat state the resolution pipeline mutates.
type Unit struct {
	Name  string `json:"name"`
	Level int    `json:"level"`

	CurrentHP      int `json:"current_hp"`
	MaxHP          int `json:"max_hp"`
	CurrentSP      int `json:"current_sp"`
	MaxSP          int `json:"max_sp"`
	CurrentStagger int `json:"current_stagger"`
	MaxStagger     int `json:"max_stagger"`

	Attributes  map[string]int         `json:"attributes"`
	Skills      map[string]int         `json:"skills"`
	Resistances map[DamageType]float64 `json:"resistances"`

	Passives      []string `json:"passives,omitempty"`
	Talents       []string `json:"talents,omitempty"`
	Augmentations []string `json:"augmentations,omitempty"`
	WeaponID      string   `json:"weapon_id,omitempty"`
	Deck          []string `json:"deck,omitempty"`

	Statuses        map[string][]StatusEntry `json:"statuses,omitempty"`
	DelayedStatuses []DelayedStatus          `json:"delayed_statuses,omitempty"`

	// Modifiers is rebuilt from scratch by every stat-recalculation pass;
	// mechanics contribute through the OnCalculateStats filter.
	Modifiers map[string]Modifier `json:"modifiers,omitempty"`

	ActiveSlots []*ActiveSlot `json:"active_slots,omitempty"`
	StoredDice  []Die         `json:"stored_dice,omitempty"`
	CounterDice []Die         `json:"counter_dice,omitempty"`

	CardCooldowns map[string]CooldownList `json:"card_cooldowns,omitempty"`

	// Memory is mechanic-local scratch space keyed by convention. Mechanic
	// instances are process-wide singletons; any per-unit state they need
	// lives here or in Statuses.
	Memory map[string]float64 `json:"memory,omitempty"`

	DeathCount     int `json:"death_count,omitempty"`
	OverkillDamage int `json:"overkill_damage,omitempty"`

	// CurrentCard points at the card being resolved right now. Transient,
	// never persisted.
	CurrentCard *Card `json:"-"`
}

// NewUnit builds a unit with empty-but-usable maps.
func NewUnit(name string, level int) *Unit {
	return &Unit{
		Name:          name,
		Level:         level,
		Attributes:    map[string]int{},
		Skills:        map[string]int{},
		Resistances:   map[DamageType]float64{},
		Statuses:      map[string][]StatusEntry{},
		Modifiers:     map[string]Modifier{},
		CardCooldowns: map[string]CooldownList{},
		Memory:        map[string]float64{},
	}
}

// IsDead reports whether HP is exhausted. HP may go negative internally
// during a pipeline step before the unit is treated as unconscious.
func (u *Unit) IsDead() bool { return u.CurrentHP <= 0 }

// IsStaggered reports whether the stagger pool is empty. A staggered unit
// loses its speed dice and takes doubled damage until restored.
func (u *Unit) IsStaggered() bool { return u.CurrentStagger <= 0 }

// Attribute returns a raw attribute score, zero when absent.
func (u *Unit) Attribute(name string) int { return u.Attributes[name] }

// Skill returns a raw skill score, zero when absent.
func (u *Unit) Skill(name string) int { return u.Skills[name] }

// Mod returns the recomputed modifier pair for a key.
func (u *Unit) Mod(name string) Modifier { return u.Modifiers[name] }

// ModFlag reports whether a modifier key is set non-zero, used for on/off
// effects such as disable_block.
func (u *Unit) ModFlag(name string) bool {
	m := u.Modifiers[name]
	return m.Flat != 0 || m.Pct != 0
}

// StatBonus applies the named modifier pair to an attribute-derived base,
// producing the integer delta a roll records.
func (u *Unit) StatBonus(name string, base int) int {
	m := u.Modifiers[name]
	return GetModdedValue(base, m.Flat, m.Pct)
}

// Attribute-derived roll bases. Six points of an attribute are worth +2.
func (u *Unit) PowerAttackBase() int { return SafeIntDiv(u.Attribute(AttrStrength), 3) }
func (u *Unit) PowerBlockBase() int  { return SafeIntDiv(u.Attribute(AttrEndurance), 3) }
func (u *Unit) PowerEvadeBase() int  { return SafeIntDiv(u.Attribute(AttrAcrobatics), 3) }

// Resistance returns the base multiplier against a damage type, defaulting
// to neutral when the sheet does not list the type.
func (u *Unit) Resistance(t DamageType) float64 {
	if r, ok := u.Resistances[t]; ok {
		return r
	}
	return 1.0
}

// RestoreStagger adds to the stagger pool, clamped to its maximum. Won
// evade clashes feed this.
func (u *Unit) RestoreStagger(amount int) {
	if amount <= 0 {
		return
	}
	u.CurrentStagger = Clamp(u.CurrentStagger+amount, 0, u.MaxStagger)
}

// ClearCombatState drops the per-combat transient fields when a battle
// ends. Sheet data, statuses and cooldowns survive.
func (u *Unit) ClearCombatState() {
	u.ActiveSlots = nil
	u.CurrentCard = nil
	u.StoredDice = nil
	u.CounterDice = nil
}

// DynamicState is the snapshot seam: everything that changes during play,
// detached from the static sheet. The service layer persists one per round
// so an external caller can rewind without the engine keeping history.
type DynamicState struct {
	CurrentHP       int                      `json:"current_hp"`
	CurrentSP       int                      `json:"current_sp"`
	CurrentStagger  int                      `json:"current_stagger"`
	Statuses        map[string][]StatusEntry `json:"statuses,omitempty"`
	DelayedStatuses []DelayedStatus          `json:"delayed_statuses,omitempty"`
	CardCooldowns   map[string]CooldownList  `json:"card_cooldowns,omitempty"`
	StoredDice      []Die                    `json:"stored_dice,omitempty"`
	CounterDice     []Die                    `json:"counter_dice,omitempty"`
	Memory          map[string]float64       `json:"memory,omitempty"`
	DeathCount      int                      `json:"death_count,omitempty"`
	OverkillDamage  int                      `json:"overkill_damage,omitempty"`
}

// DynamicState deep-copies the mutable portion of the unit.
func (u *Unit) DynamicState() DynamicState {
	ds := DynamicState{
		CurrentHP:      u.CurrentHP,
		CurrentSP:      u.CurrentSP,
		CurrentStagger: u.CurrentStagger,
		DeathCount:     u.DeathCount,
		OverkillDamage: u.OverkillDamage,
	}
	if len(u.Statuses) > 0 {
		ds.Statuses = make(map[string][]StatusEntry, len(u.Statuses))
		for name, entries := range u.Statuses {
			ds.Statuses[name] = append([]StatusEntry(nil), entries...)
		}
	}
	ds.DelayedStatuses = append([]DelayedStatus(nil), u.DelayedStatuses...)
	if len(u.CardCooldowns) > 0 {
		ds.CardCooldowns = make(map[string]CooldownList, len(u.CardCooldowns))
		for id, cds := range u.CardCooldowns {
			ds.CardCooldowns[id] = append(CooldownList(nil), cds...)
		}
	}
	ds.StoredDice = cloneDice(u.StoredDice)
	ds.CounterDice = cloneDice(u.CounterDice)
	if len(u.Memory) > 0 {
		ds.Memory = make(map[string]float64, len(u.Memory))
		for k, v := range u.Memory {
			ds.Memory[k] = v
		}
	}
	return ds
}

// ApplyDynamicState restores a snapshot onto the unit. Values are deep
// copied so later mutation does not corrupt the snapshot.
func (u *Unit) ApplyDynamicState(ds DynamicState) {
	u.CurrentHP = ds.CurrentHP
	u.CurrentSP = ds.CurrentSP
	u.CurrentStagger = ds.CurrentStagger
	u.DeathCount = ds.DeathCount
	u.OverkillDamage = ds.OverkillDamage

	u.Statuses = map[string][]StatusEntry{}
	for name, entries := range ds.Statuses {
		u.Statuses[name] = append([]StatusEntry(nil), entries...)
	}
	u.DelayedStatuses = append([]DelayedStatus(nil), ds.DelayedStatuses...)
	u.CardCooldowns = map[string]CooldownList{}
	for id, cds := range ds.CardCooldowns {
		u.CardCooldowns[id] = append(CooldownList(nil), cds...)
	}
	u.StoredDice = cloneDice(ds.StoredDice)
	u.CounterDice = cloneDice(ds.CounterDice)
	u.Memory = map[string]float64{}
	for k, v := range ds.Memory {
		u.Memory[k] = v
	}
}

func cloneDice(dice []Die) []Die {
	if dice == nil {
		return nil
	}
	out := make([]Die, len(dice))
	for i, d := range dice {
		out[i] = d.Clone()
	}
	return out
}
