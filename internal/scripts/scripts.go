// Package scripts implements the scripted effects cards and dice reference
// by id. Script parameters are numeric by design, so status application is
// exposed as one script id per status rather than a name parameter.
package scripts

import (
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
)

func param(params map[string]float64, key string, def int) int {
	if v, ok := params[key]; ok {
		return int(v)
	}
	return def
}

// makeAddStatus builds an add_<status> handler. Params: amount (default 1),
// duration (default 1), delay (default 0), self (non-zero applies to the
// roller instead of the target).
func makeAddStatus(name string) engine.ScriptFunc {
	return func(e *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
		target := ctx.Target
		if param(params, "self", 0) != 0 {
			target = ctx.Source
		}
		if target == nil {
			return
		}
		amount := param(params, "amount", 1)
		duration := param(params, "duration", 1)
		delay := param(params, "delay", 0)
		if ok, _ := e.AddStatus(target, name, amount, duration, delay, false); ok {
			ctx.Log = append(ctx.Log, target.Name+" gains "+name)
		}
	}
}

// makeConvert builds a die-type conversion handler, typically fired on
// roll to exploit a resistance.
func makeConvert(t game.DamageType) engine.ScriptFunc {
	return func(_ *engine.Engine, ctx *engine.RollContext, _ map[string]float64) {
		if ctx.Die != nil && ctx.Die.Type.IsAttack() {
			ctx.Die.Type = t
		}
	}
}

// restoreStagger refills the roller's stagger pool. Params: amount.
func restoreStagger(_ *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	amount := param(params, "amount", 0)
	ctx.Source.RestoreStagger(amount)
	ctx.Log = append(ctx.Log, ctx.Source.Name+" steadies")
}

// heal restores the roller's HP up to its maximum. Params: amount.
func heal(_ *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	amount := param(params, "amount", 0)
	if amount <= 0 {
		return
	}
	ctx.Source.CurrentHP = game.Clamp(ctx.Source.CurrentHP+amount, 0, ctx.Source.MaxHP)
	ctx.Log = append(ctx.Log, ctx.Source.Name+" recovers")
}

// spBurn drains the target's sanity. Params: amount.
func spBurn(_ *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	if ctx.Target == nil {
		return
	}
	amount := param(params, "amount", 0)
	ctx.Target.CurrentSP -= amount
	if ctx.Target.CurrentSP < 0 {
		ctx.Target.CurrentSP = 0
	}
}

// consumeCharge spends charge stacks for a roll bonus. Params: max (stack
// cap per roll, default 3).
func consumeCharge(e *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	stacks := ctx.Source.GetStatus(game.StatusCharge)
	if stacks <= 0 {
		return
	}
	limit := param(params, "max", 3)
	if stacks > limit {
		stacks = limit
	}
	e.RemoveStatus(ctx.Source, game.StatusCharge, stacks)
	ctx.Add(stacks, "charge")
}

// bonusVsBleeding rewards striking an already bleeding target. Params:
// amount (default 2).
func bonusVsBleeding(_ *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	if ctx.Target != nil && ctx.Target.HasStatus(game.StatusBleed) {
		ctx.Add(param(params, "amount", 2), "predator")
	}
}

// selfHarm pays HP for the privilege of rolling the die. The cost never
// drops the roller below 1 HP. Params: amount.
func selfHarm(_ *engine.Engine, ctx *engine.RollContext, params map[string]float64) {
	amount := param(params, "amount", 0)
	if amount <= 0 {
		return
	}
	ctx.Source.CurrentHP -= amount
	if ctx.Source.CurrentHP < 1 {
		ctx.Source.CurrentHP = 1
	}
	ctx.Log = append(ctx.Log, ctx.Source.Name+" pays in blood")
}

// Register wires every script handler into the registry builder.
func Register(b *engine.RegistryBuilder) {
	for _, name := range []string{
		game.StatusBleed, game.StatusBurn, game.StatusStrength,
		game.StatusFeeble, game.StatusProtection, game.StatusFragile,
		game.StatusSmoke, game.StatusCharge, game.StatusBarrier,
		game.StatusDisarm, game.StatusHaste, game.StatusSlow,
		game.StatusBind, game.StatusAdvantage, game.StatusAdaptation,
		game.StatusStaggerProtection,
	} {
		b.AddScript("add_"+name, makeAddStatus(name))
	}

	b.AddScript("convert_to_slash", makeConvert(game.DamageSlash))
	b.AddScript("convert_to_pierce", makeConvert(game.DamagePierce))
	b.AddScript("convert_to_blunt", makeConvert(game.DamageBlunt))

	b.AddScript("restore_stagger", restoreStagger)
	b.AddScript("heal", heal)
	b.AddScript("sp_burn", spBurn)
	b.AddScript("consume_charge", consumeCharge)
	b.AddScript("bonus_vs_bleeding", bonusVsBleeding)
	b.AddScript("self_harm", selfHarm)
}
