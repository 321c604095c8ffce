package engine

import (
	"sort"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// activeMechanic pairs a mechanic singleton with the stack count it is
// dispatched with for one unit.
type activeMechanic struct {
	mech   Mechanic
	kind   Kind
	stacks int
}

// activeMechanics yields every mechanic currently active on the unit in the
// fixed dispatch order: statuses, passives, talents, augmentations, weapon
// passive. Status ids are visited sorted so dispatch stays deterministic.
// Missing registry ids are silently skipped — stale ids after content
// removal behave like nothing is equipped.
func (e *Engine) activeMechanics(u *game.Unit) []activeMechanic {
	out := make([]activeMechanic, 0, 8)

	statusIDs := make([]string, 0, len(u.Statuses))
	for name := range u.Statuses {
		statusIDs = append(statusIDs, name)
	}
	sort.Strings(statusIDs)
	for _, name := range statusIDs {
		stacks := u.GetStatus(name)
		if stacks <= 0 {
			continue
		}
		if m, ok := e.reg.statuses[name]; ok {
			out = append(out, activeMechanic{mech: m, kind: KindStatus, stacks: stacks})
		}
	}
	for _, id := range u.Passives {
		if m, ok := e.reg.passives[id]; ok {
			out = append(out, activeMechanic{mech: m, kind: KindPassive, stacks: 1})
		}
	}
	for _, id := range u.Talents {
		if m, ok := e.reg.talents[id]; ok {
			out = append(out, activeMechanic{mech: m, kind: KindTalent, stacks: 1})
		}
	}
	for _, id := range u.Augmentations {
		if m, ok := e.reg.augmentations[id]; ok {
			out = append(out, activeMechanic{mech: m, kind: KindAugmentation, stacks: 1})
		}
	}
	if u.WeaponID != "" {
		if w, ok := e.reg.weapons[u.WeaponID]; ok && w.PassiveID != "" {
			if m, ok := e.reg.weaponPassives[w.PassiveID]; ok {
				out = append(out, activeMechanic{mech: m, kind: KindWeapon, stacks: 1})
			}
		}
	}
	return out
}

// Trigger dispatch: fire-and-forget broadcasts in iteration order.

func (e *Engine) triggerCombatStart(u *game.Unit) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnCombatStart(e, u, am.stacks)
	}
}

func (e *Engine) triggerCombatEnd(u *game.Unit) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnCombatEnd(e, u, am.stacks)
	}
}

func (e *Engine) triggerRoundStart(u *game.Unit) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnRoundStart(e, u, am.stacks)
	}
}

func (e *Engine) triggerRoundEnd(u *game.Unit) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnRoundEnd(e, u, am.stacks)
	}
}

func (e *Engine) triggerSpeedRolled(u *game.Unit, slot *game.ActiveSlot) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnSpeedRolled(e, u, slot, am.stacks)
	}
}

func (e *Engine) triggerRoll(ctx *RollContext) {
	for _, am := range e.activeMechanics(ctx.Source) {
		am.mech.OnRoll(e, ctx, am.stacks)
	}
}

func (e *Engine) triggerClashWin(ctx, opponent *RollContext) {
	for _, am := range e.activeMechanics(ctx.Source) {
		am.mech.OnClashWin(e, ctx, opponent, am.stacks)
	}
}

func (e *Engine) triggerClashLose(ctx, opponent *RollContext) {
	for _, am := range e.activeMechanics(ctx.Source) {
		am.mech.OnClashLose(e, ctx, opponent, am.stacks)
	}
}

func (e *Engine) triggerClashDraw(ctx, opponent *RollContext) {
	for _, am := range e.activeMechanics(ctx.Source) {
		am.mech.OnClashDraw(e, ctx, opponent, am.stacks)
	}
}

func (e *Engine) triggerHit(ctx *RollContext) {
	for _, am := range e.activeMechanics(ctx.Source) {
		am.mech.OnHit(e, ctx, am.stacks)
	}
}

func (e *Engine) triggerTakeDamage(u *game.Unit, applied, raw int, t game.DamageType, source *game.Unit) {
	// Both sides observe the hit: reflect/revenge effects live on the
	// target, on-damage-dealt reactions on the source.
	for _, am := range e.activeMechanics(u) {
		am.mech.OnTakeDamage(e, u, applied, raw, t, am.stacks)
	}
	if source != nil && source != u {
		for _, am := range e.activeMechanics(source) {
			am.mech.OnTakeDamage(e, u, applied, raw, t, am.stacks)
		}
	}
}

func (e *Engine) triggerStatusApplied(u *game.Unit, name string, amount int) {
	for _, am := range e.activeMechanics(u) {
		am.mech.OnStatusApplied(e, u, name, amount, am.stacks)
	}
}

// Capability checks: first active mechanic answering true wins.

func (e *Engine) preventsDeath(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.PreventsDeath(e, u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) preventsStagger(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.PreventsStagger(u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) preventsDamage(u *game.Unit, t game.DamageType) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.PreventsDamage(u, t, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) preventsSurpriseAttack(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.PreventsSurpriseAttack(u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) canRedirectOnEqualSpeed(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.CanRedirectOnEqualSpeed(u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) preventsDiceDestruction(u *game.Unit, d *game.Die) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.PreventsDiceDestructionBySpeed(u, d, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) canUseStoredWhileStaggered(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.CanUseStoredWhileStaggered(u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) canBreakEmptySlot(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.CanBreakEmptySlot(u, am.stacks) {
			return true
		}
	}
	return false
}

func (e *Engine) convertsHPDamageToSP(u *game.Unit) bool {
	for _, am := range e.activeMechanics(u) {
		if am.mech.ConvertsHPDamageToSP(u, am.stacks) {
			return true
		}
	}
	return false
}

// Value filter folds: thread the running value through every mechanic.

func (e *Engine) filterSpeedDiceBonus(u *game.Unit) int {
	total := 0
	for _, am := range e.activeMechanics(u) {
		total += am.mech.SpeedDiceBonus(u, am.stacks)
	}
	return total
}

func (e *Engine) filterSpeedDiceValue(u *game.Unit, value int) int {
	for _, am := range e.activeMechanics(u) {
		value = am.mech.SpeedDiceValueModifier(u, value, am.stacks)
	}
	return value
}

func (e *Engine) filterActiveSlot(u *game.Unit, slot *game.ActiveSlot) {
	for _, am := range e.activeMechanics(u) {
		am.mech.ModifyActiveSlot(u, slot, am.stacks)
	}
}

func (e *Engine) filterDiceMin(ctx *RollContext, value int) int {
	for _, am := range e.activeMechanics(ctx.Source) {
		value = am.mech.ModifyDiceMin(ctx, value, am.stacks)
	}
	return value
}

func (e *Engine) filterDiceMax(ctx *RollContext, value int) int {
	for _, am := range e.activeMechanics(ctx.Source) {
		value = am.mech.ModifyDiceMax(ctx, value, am.stacks)
	}
	return value
}

func (e *Engine) filterOverrideRollBaseStat(ctx *RollContext) (int, string) {
	for _, am := range e.activeMechanics(ctx.Source) {
		if v, reason := am.mech.OverrideRollBaseStat(ctx, am.stacks); v != 0 {
			return v, reason
		}
	}
	return 0, ""
}

func (e *Engine) filterOutgoingDamage(ctx *RollContext, value int) int {
	for _, am := range e.activeMechanics(ctx.Source) {
		value = am.mech.ModifyOutgoingDamage(ctx, value, am.stacks)
	}
	return value
}

func (e *Engine) filterIncomingDamage(u *game.Unit, value int, t game.DamageType) int {
	for _, am := range e.activeMechanics(u) {
		value = am.mech.ModifyIncomingDamage(u, value, t, am.stacks)
	}
	return value
}

func (e *Engine) filterResistance(u *game.Unit, t game.DamageType, resistance float64) float64 {
	for _, am := range e.activeMechanics(u) {
		resistance = am.mech.ModifyResistance(u, t, resistance, am.stacks)
	}
	return resistance
}

func (e *Engine) filterAbsorbDamage(u *game.Unit, value int) int {
	for _, am := range e.activeMechanics(u) {
		value = am.mech.AbsorbDamage(e, u, value, am.stacks)
		if value <= 0 {
			return 0
		}
	}
	return value
}

func (e *Engine) filterStaggerMultiplier(u *game.Unit, mult float64) float64 {
	for _, am := range e.activeMechanics(u) {
		mult = am.mech.ModifyStaggerDamageMultiplier(u, mult, am.stacks)
	}
	return mult
}

func (e *Engine) filterBeforeStatusAdd(u *game.Unit, name string, amount int) (bool, string) {
	for _, am := range e.activeMechanics(u) {
		if blocked, reason := am.mech.OnBeforeStatusAdd(u, name, amount, am.stacks); blocked {
			return true, reason
		}
	}
	return false, ""
}
