package engine

import (
	"strconv"
	"strings"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// disabledRollPenalty forces a roll to an effective zero when a defensive
// option has been disabled by an effect.
const disabledRollPenalty = -9999

// RollModifier is one ordered (delta, reason) pair recorded on a roll.
type RollModifier struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// RollContext is the ephemeral record of a single die roll: base random
// value, ordered bonuses, and the breakdown log. It is created fresh per
// roll and discarded after the exchange resolves. Opponent is a non-owning
// back-reference scoped to the clash step, never retained beyond it.
type RollContext struct {
	Source *game.Unit
	Target *game.Unit
	Die    *game.Die
	Card   *game.Card

	BaseValue        int
	Modifiers        []RollModifier
	DamageMultiplier float64
	IsCritical       bool
	IsDisadvantage   bool

	Opponent *RollContext
	Log      []string
}

// Add records a bonus or penalty with its reason.
func (c *RollContext) Add(delta int, reason string) {
	c.Modifiers = append(c.Modifiers, RollModifier{Delta: delta, Reason: reason})
}

// Total is the final roll value: base plus all modifiers, floored at zero.
func (c *RollContext) Total() int {
	total := c.BaseValue
	for _, m := range c.Modifiers {
		total += m.Delta
	}
	if total < 0 {
		return 0
	}
	return total
}

// breakdown renders "5 + 2 (Str) + 1 (Buff) = 8" for the combat log.
func (c *RollContext) breakdown() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(c.BaseValue))
	for _, m := range c.Modifiers {
		if m.Delta >= 0 {
			sb.WriteString(" + " + strconv.Itoa(m.Delta))
		} else {
			sb.WriteString(" - " + strconv.Itoa(-m.Delta))
		}
		if m.Reason != "" {
			sb.WriteString(" (" + m.Reason + ")")
		}
	}
	sb.WriteString(" = " + strconv.Itoa(c.Total()))
	return sb.String()
}

// CreateRollContext runs the full roll pipeline for one die: bounds
// filters, the advantage/disadvantage branch, stat and weapon bonuses,
// on-roll triggers and scripts, and the formatted breakdown.
func (e *Engine) CreateRollContext(source, target *game.Unit, die *game.Die, isDisadvantage bool) *RollContext {
	ctx := &RollContext{
		Source:           source,
		Target:           target,
		Die:              die,
		Card:             source.CurrentCard,
		DamageMultiplier: 1.0,
		IsDisadvantage:   isDisadvantage,
	}

	min := e.filterDiceMin(ctx, die.Min)
	max := e.filterDiceMax(ctx, die.Max)
	if min > max {
		min, max = max, min
	}

	hasAdvantage := source.HasStatus(game.StatusAdvantage)
	switch {
	case hasAdvantage && isDisadvantage:
		// Cancel out; the advantage stack is still spent.
		e.RemoveStatus(source, game.StatusAdvantage, 1)
		ctx.BaseValue = e.rollRange(min, max)
		ctx.Log = append(ctx.Log, "advantage and disadvantage cancel")
	case isDisadvantage:
		a, b := e.rollRange(min, max), e.rollRange(min, max)
		if b < a {
			a = b
		}
		ctx.BaseValue = a
		ctx.Log = append(ctx.Log, "rolled with disadvantage")
	case hasAdvantage:
		e.RemoveStatus(source, game.StatusAdvantage, 1)
		a, b := e.rollRange(min, max), e.rollRange(min, max)
		if b > a {
			a = b
		}
		ctx.BaseValue = a
		ctx.Log = append(ctx.Log, "rolled with advantage")
	default:
		ctx.BaseValue = e.rollRange(min, max)
	}

	// Cards flagged unchangeable keep their printed numbers: no stat
	// bonuses, only card/die scripts run.
	if ctx.Card != nil && ctx.Card.HasFlag(game.FlagUnchangeable) {
		e.runDieScripts(ctx, "on_roll")
		e.runCardScripts(ctx, "on_roll")
		ctx.Log = append([]string{ctx.breakdown()}, ctx.Log...)
		return ctx
	}

	// Disabled defensive options collapse to an effective zero roll and
	// skip every remaining bonus.
	if die.Type == game.DamageBlock && source.ModFlag(game.ModDisableBlock) {
		ctx.Add(disabledRollPenalty, "block disabled")
		ctx.Log = append([]string{ctx.breakdown()}, ctx.Log...)
		return ctx
	}
	if die.Type == game.DamageEvade && source.ModFlag(game.ModDisableEvade) {
		ctx.Add(disabledRollPenalty, "evade disabled")
		ctx.Log = append([]string{ctx.breakdown()}, ctx.Log...)
		return ctx
	}

	if override, reason := e.filterOverrideRollBaseStat(ctx); override != 0 {
		ctx.Add(override, reason)
	} else {
		e.applyStatBonuses(ctx)
	}
	if bonus := source.StatBonus(game.ModPowerAll, 0); bonus != 0 {
		ctx.Add(bonus, "power")
	}

	e.triggerRoll(ctx)
	e.runDieScripts(ctx, "on_roll")
	e.runCardScripts(ctx, "on_roll")

	ctx.Log = append([]string{ctx.breakdown()}, ctx.Log...)
	return ctx
}

// applyStatBonuses adds the standard attribute/weapon/subtype bonuses for
// the die type.
func (e *Engine) applyStatBonuses(ctx *RollContext) {
	source := ctx.Source
	switch ctx.Die.Type {
	case game.DamageBlock:
		if bonus := source.StatBonus(game.ModPowerBlock, source.PowerBlockBase()); bonus != 0 {
			ctx.Add(bonus, "End")
		}
	case game.DamageEvade:
		if bonus := source.StatBonus(game.ModPowerEvade, source.PowerEvadeBase()); bonus != 0 {
			ctx.Add(bonus, "Acr")
		}
	default:
		if bonus := source.StatBonus(game.ModPowerAttack, source.PowerAttackBase()); bonus != 0 {
			ctx.Add(bonus, "Str")
		}
		if w, ok := e.reg.Weapon(source.WeaponID); ok {
			if key := w.Class.PowerMod(); key != "" {
				if bonus := source.StatBonus(key, 0); bonus != 0 {
					ctx.Add(bonus, w.Name)
				}
			}
		}
		if key := subtypePowerMod(ctx.Die.Type); key != "" {
			if bonus := source.StatBonus(key, 0); bonus != 0 {
				ctx.Add(bonus, string(ctx.Die.Type))
			}
		}
	}
}

func subtypePowerMod(t game.DamageType) string {
	switch t {
	case game.DamageSlash:
		return game.ModPowerSlash
	case game.DamagePierce:
		return game.ModPowerPierce
	case game.DamageBlunt:
		return game.ModPowerBlunt
	}
	return ""
}

// runDieScripts dispatches the die's script refs for a trigger. Unknown
// script ids are skipped.
func (e *Engine) runDieScripts(ctx *RollContext, trigger string) {
	if ctx.Die == nil {
		return
	}
	for _, ref := range ctx.Die.Scripts[trigger] {
		if fn := e.reg.Script(ref.ScriptID); fn != nil {
			fn(e, ctx, ref.Params)
		}
	}
}

// runCardScripts dispatches the card's script refs for a trigger.
func (e *Engine) runCardScripts(ctx *RollContext, trigger string) {
	if ctx.Card == nil {
		return
	}
	for _, ref := range ctx.Card.Scripts[trigger] {
		if fn := e.reg.Script(ref.ScriptID); fn != nil {
			fn(e, ctx, ref.Params)
		}
	}
}
