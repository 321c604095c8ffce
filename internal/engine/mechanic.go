package engine

import "github.com/librozavisim/lor-simulator/internal/game"

// Kind distinguishes where a mechanic id is looked up.
type Kind string

const (
	KindStatus       Kind = "status"
	KindPassive      Kind = "passive"
	KindTalent       Kind = "talent"
	KindAugmentation Kind = "augmentation"
	KindWeapon       Kind = "weapon"
)

// Mechanic is the uniform capability interface implemented by every
// pluggable effect: passives, talents, augmentations, statuses and weapon
// passives. Every hook has a no-op or identity default via Base; concrete
// mechanics embed Base and override what they need.
//
// Trigger hooks are fire-and-forget; filter hooks thread a running value
// through every active mechanic in iteration order. Mechanic instances are
// process-wide singletons: per-unit state belongs in the unit's Memory or
// Statuses, never on the mechanic.
//
// The stacks argument carries the current stack count for statuses and 1
// for everything else.
type Mechanic interface {
	ID() string
	// IsPool marks statuses whose stacks merge into a single entry (smoke,
	// charge) instead of accumulating as separately dated entries.
	IsPool() bool

	// Lifecycle triggers.
	OnCombatStart(e *Engine, u *game.Unit, stacks int)
	OnCombatEnd(e *Engine, u *game.Unit, stacks int)
	OnRoundStart(e *Engine, u *game.Unit, stacks int)
	OnRoundEnd(e *Engine, u *game.Unit, stacks int)
	OnSpeedRolled(e *Engine, u *game.Unit, slot *game.ActiveSlot, stacks int)

	// Roll and combat triggers.
	OnRoll(e *Engine, ctx *RollContext, stacks int)
	OnClashWin(e *Engine, ctx, opponent *RollContext, stacks int)
	OnClashLose(e *Engine, ctx, opponent *RollContext, stacks int)
	OnClashDraw(e *Engine, ctx, opponent *RollContext, stacks int)
	OnHit(e *Engine, ctx *RollContext, stacks int)
	OnTakeDamage(e *Engine, u *game.Unit, applied, raw int, t game.DamageType, stacks int)
	OnStatusApplied(e *Engine, u *game.Unit, name string, amount int, stacks int)

	// Filters. Implementations return the (possibly unchanged) new value.
	OnCalculateStats(u *game.Unit, mods map[string]game.Modifier, stacks int)
	SpeedDiceBonus(u *game.Unit, stacks int) int
	SpeedDiceValueModifier(u *game.Unit, value int, stacks int) int
	ModifyActiveSlot(u *game.Unit, slot *game.ActiveSlot, stacks int)
	ModifyDiceMin(ctx *RollContext, value int, stacks int) int
	ModifyDiceMax(ctx *RollContext, value int, stacks int) int
	OverrideRollBaseStat(ctx *RollContext, stacks int) (int, string)
	ModifyOutgoingDamage(ctx *RollContext, value int, stacks int) int
	ModifyIncomingDamage(u *game.Unit, value int, t game.DamageType, stacks int) int
	ModifyResistance(u *game.Unit, t game.DamageType, resistance float64, stacks int) float64
	AbsorbDamage(e *Engine, u *game.Unit, value int, stacks int) int
	ModifyStaggerDamageMultiplier(u *game.Unit, mult float64, stacks int) float64
	OnBeforeStatusAdd(u *game.Unit, name string, amount int, stacks int) (blocked bool, reason string)

	// Capability checks: the first mechanic answering true wins.
	PreventsDeath(e *Engine, u *game.Unit, stacks int) bool
	PreventsStagger(u *game.Unit, stacks int) bool
	PreventsDamage(u *game.Unit, t game.DamageType, stacks int) bool
	PreventsSurpriseAttack(u *game.Unit, stacks int) bool
	CanRedirectOnEqualSpeed(u *game.Unit, stacks int) bool
	PreventsDiceDestructionBySpeed(u *game.Unit, d *game.Die, stacks int) bool
	CanUseStoredWhileStaggered(u *game.Unit, stacks int) bool
	CanBreakEmptySlot(u *game.Unit, stacks int) bool
	ConvertsHPDamageToSP(u *game.Unit, stacks int) bool
}

// Base provides no-op/identity defaults for the full hook set. Concrete
// mechanics embed it and override the hooks they care about.
type Base struct {
	MechID string
	Pool   bool
}

func (b Base) ID() string   { return b.MechID }
func (b Base) IsPool() bool { return b.Pool }

func (Base) OnCombatStart(*Engine, *game.Unit, int)                 {}
func (Base) OnCombatEnd(*Engine, *game.Unit, int)                   {}
func (Base) OnRoundStart(*Engine, *game.Unit, int)                  {}
func (Base) OnRoundEnd(*Engine, *game.Unit, int)                    {}
func (Base) OnSpeedRolled(*Engine, *game.Unit, *game.ActiveSlot, int) {}

func (Base) OnRoll(*Engine, *RollContext, int)                                  {}
func (Base) OnClashWin(*Engine, *RollContext, *RollContext, int)                {}
func (Base) OnClashLose(*Engine, *RollContext, *RollContext, int)               {}
func (Base) OnClashDraw(*Engine, *RollContext, *RollContext, int)               {}
func (Base) OnHit(*Engine, *RollContext, int)                                   {}
func (Base) OnTakeDamage(*Engine, *game.Unit, int, int, game.DamageType, int)   {}
func (Base) OnStatusApplied(*Engine, *game.Unit, string, int, int)              {}

func (Base) OnCalculateStats(*game.Unit, map[string]game.Modifier, int) {}
func (Base) SpeedDiceBonus(*game.Unit, int) int                         { return 0 }
func (Base) SpeedDiceValueModifier(_ *game.Unit, value int, _ int) int  { return value }
func (Base) ModifyActiveSlot(*game.Unit, *game.ActiveSlot, int)         {}
func (Base) ModifyDiceMin(_ *RollContext, value int, _ int) int         { return value }
func (Base) ModifyDiceMax(_ *RollContext, value int, _ int) int         { return value }
func (Base) OverrideRollBaseStat(*RollContext, int) (int, string)       { return 0, "" }
func (Base) ModifyOutgoingDamage(_ *RollContext, value int, _ int) int  { return value }
func (Base) ModifyIncomingDamage(_ *game.Unit, value int, _ game.DamageType, _ int) int {
	return value
}
func (Base) ModifyResistance(_ *game.Unit, _ game.DamageType, resistance float64, _ int) float64 {
	return resistance
}
func (Base) AbsorbDamage(_ *Engine, _ *game.Unit, value int, _ int) int { return value }
func (Base) ModifyStaggerDamageMultiplier(_ *game.Unit, mult float64, _ int) float64 {
	return mult
}
func (Base) OnBeforeStatusAdd(*game.Unit, string, int, int) (bool, string) { return false, "" }

func (Base) PreventsDeath(*Engine, *game.Unit, int) bool                      { return false }
func (Base) PreventsStagger(*game.Unit, int) bool                             { return false }
func (Base) PreventsDamage(*game.Unit, game.DamageType, int) bool             { return false }
func (Base) PreventsSurpriseAttack(*game.Unit, int) bool                      { return false }
func (Base) CanRedirectOnEqualSpeed(*game.Unit, int) bool                     { return false }
func (Base) PreventsDiceDestructionBySpeed(*game.Unit, *game.Die, int) bool   { return false }
func (Base) CanUseStoredWhileStaggered(*game.Unit, int) bool                  { return false }
func (Base) CanBreakEmptySlot(*game.Unit, int) bool                           { return false }
func (Base) ConvertsHPDamageToSP(*game.Unit, int) bool                        { return false }
