package engine

import (
	"strconv"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// staggeredResistanceFloor is the minimum resistance multiplier forced by
// the staggered state. Only the ModifyStaggerDamageMultiplier filter chain
// moves it; base resistances never pull a staggered hit below this.
const staggeredResistanceFloor = 2.0

// ApplyDamage converts a winning roll into HP/Stagger damage on the
// target: immunity check, on-hit triggers, outgoing filters and crit
// multiplier, direct damage with resistances and barriers, then the
// stagger side-damage pass and the take-damage triggers.
//
// It returns the HP damage actually applied.
func (e *Engine) ApplyDamage(ctx *RollContext, target *game.Unit, t game.DamageType, entry *LogEntry) int {
	if e.preventsDamage(target, t) {
		entry.Add(target.Name + " is immune to " + string(t) + " damage")
		return 0
	}

	e.triggerHit(ctx)
	e.runDieScripts(ctx, "on_hit")
	e.runCardScripts(ctx, "on_hit")

	raw := ctx.Total() + ctx.Source.StatBonus(game.ModDamageDeal, 0)
	raw = e.filterOutgoingDamage(ctx, raw)
	raw = int(float64(raw) * ctx.DamageMultiplier)
	if raw < 0 {
		raw = 0
	}

	if e.convertsHPDamageToSP(target) {
		target.CurrentSP -= raw
		if target.CurrentSP < 0 {
			target.CurrentSP = 0
		}
		entry.Add(target.Name + " converts the hit to " + strconv.Itoa(raw) + " SP damage")
		e.triggerTakeDamage(target, raw, raw, t, ctx.Source)
		return 0
	}

	wasStaggered := target.IsStaggered()
	applied := e.dealDirectDamage(ctx, target, raw, t, entry)

	// Every hit also wears down guard: a separate, independently filtered
	// stagger pass runs whenever the target was not already staggered.
	if !wasStaggered {
		e.dealStaggerDamage(ctx, target, raw, t, entry)
	}

	e.triggerTakeDamage(target, applied, raw, t, ctx.Source)
	return applied
}

// dealDirectDamage runs the incoming half of the pipeline: incoming
// filters, flat damage-take reduction, resistance (stagger floor,
// adaptation pierce, resistance filters), the damage threshold, barrier
// absorption, then HP loss with the death-prevention check.
func (e *Engine) dealDirectDamage(ctx *RollContext, target *game.Unit, amount int, t game.DamageType, entry *LogEntry) int {
	amount = e.filterIncomingDamage(target, amount, t)
	amount -= target.StatBonus(game.ModDamageTake, 0)
	if amount < 0 {
		amount = 0
	}

	resistance := e.effectiveResistance(ctx.Source, target, t)
	dmg := int(float64(amount) * resistance)

	if threshold := target.StatBonus(game.ModDamageThreshold, 0); threshold > 0 && dmg <= threshold {
		entry.Add("the hit cannot scratch " + target.Name)
		return 0
	}

	dmg = e.filterAbsorbDamage(target, dmg)
	if dmg <= 0 {
		entry.Add(target.Name + " absorbs the hit")
		return 0
	}

	target.CurrentHP -= dmg
	entry.Add(target.Name + " takes " + strconv.Itoa(dmg) + " " + string(t) + " damage")

	if target.CurrentHP <= 0 {
		overkill := -target.CurrentHP
		if e.preventsDeath(target) {
			if target.CurrentHP <= 0 {
				target.CurrentHP = 1
			}
			target.DeathCount++
			target.OverkillDamage += overkill
			entry.Add(target.Name + " refuses to fall")
		} else {
			target.OverkillDamage += overkill
			entry.Add(target.Name + " is incapacitated")
		}
	}
	return dmg
}

// dealStaggerDamage is the side-damage pass against the stagger pool. It
// reuses the resistance rules but filters independently through the
// stagger-take modifier.
func (e *Engine) dealStaggerDamage(ctx *RollContext, target *game.Unit, amount int, t game.DamageType, entry *LogEntry) {
	amount -= target.StatBonus(game.ModStaggerTake, 0)
	if amount <= 0 {
		return
	}
	resistance := e.effectiveResistance(ctx.Source, target, t)
	dmg := int(float64(amount) * resistance)
	if dmg <= 0 {
		return
	}
	e.applyStaggerLoss(target, dmg, entry)
}

// applyStaggerLoss reduces the stagger pool, honoring stagger prevention.
func (e *Engine) applyStaggerLoss(target *game.Unit, dmg int, entry *LogEntry) {
	target.CurrentStagger -= dmg
	if target.CurrentStagger <= 0 {
		if e.preventsStagger(target) {
			target.CurrentStagger = 1
			entry.Add(target.Name + " holds firm against the stagger")
			return
		}
		target.CurrentStagger = 0
		entry.Add(target.Name + " is staggered!")
		return
	}
	entry.Add(target.Name + " loses " + strconv.Itoa(dmg) + " stagger")
}

// effectiveResistance combines the sheet resistance with the staggered
// floor, adaptation pierce, and the resistance filter chain.
func (e *Engine) effectiveResistance(source, target *game.Unit, t game.DamageType) float64 {
	resistance := target.Resistance(t)
	if target.IsStaggered() {
		floor := e.filterStaggerMultiplier(target, staggeredResistanceFloor)
		if resistance < floor {
			resistance = floor
		}
	}
	// An adapted attacker pierces resistances: the target never reduces
	// the hit below normal.
	if source != nil && source.HasStatus(game.StatusAdaptation) && resistance < 1.0 {
		resistance = 1.0
	}
	resistance = e.filterResistance(target, t, resistance)
	if resistance < 0 {
		resistance = 0
	}
	return resistance
}
