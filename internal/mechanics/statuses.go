// Package mechanics holds the concrete status, passive and weapon-passive
// implementations and registers them into an engine registry. Everything
// here is stateless: per-unit state lives on the unit (Statuses, Memory),
// so a single instance serves every battle in the process.
package mechanics

import (
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
)

// addMod accumulates a flat/percent pair onto a modifier key during a
// stat-recalculation pass.
func addMod(mods map[string]game.Modifier, key string, flat, pct int) {
	m := mods[key]
	m.Flat += flat
	m.Pct += pct
	mods[key] = m
}

// bleed wounds the bearer every time one of their attacks lands, then
// fades one stack.
type bleed struct{ engine.Base }

func (bleed) OnHit(e *engine.Engine, ctx *engine.RollContext, stacks int) {
	src := ctx.Source
	src.CurrentHP -= stacks
	if src.CurrentHP < 0 {
		src.CurrentHP = 0
	}
	e.RemoveStatus(src, game.StatusBleed, 1)
}

// burn ticks at round end for its stack count; expiry is the normal
// duration decay.
type burn struct{ engine.Base }

func (burn) OnRoundEnd(_ *engine.Engine, u *game.Unit, stacks int) {
	u.CurrentHP -= stacks
	if u.CurrentHP < 0 {
		u.CurrentHP = 0
	}
}

// strengthStatus raises every roll by its stacks.
type strengthStatus struct{ engine.Base }

func (strengthStatus) OnCalculateStats(_ *game.Unit, mods map[string]game.Modifier, stacks int) {
	addMod(mods, game.ModPowerAll, stacks, 0)
}

// feeble lowers every roll by its stacks.
type feeble struct{ engine.Base }

func (feeble) OnCalculateStats(_ *game.Unit, mods map[string]game.Modifier, stacks int) {
	addMod(mods, game.ModPowerAll, -stacks, 0)
}

// protection shaves a flat amount off incoming hits.
type protection struct{ engine.Base }

func (protection) OnCalculateStats(_ *game.Unit, mods map[string]game.Modifier, stacks int) {
	addMod(mods, game.ModDamageTake, stacks, 0)
}

// fragile adds a flat amount to incoming hits.
type fragile struct{ engine.Base }

func (fragile) ModifyIncomingDamage(_ *game.Unit, value int, _ game.DamageType, stacks int) int {
	return value + stacks
}

// smoke is a pooled debuff: +5% incoming damage per stack.
type smoke struct{ engine.Base }

func (smoke) ModifyIncomingDamage(_ *game.Unit, value int, _ game.DamageType, stacks int) int {
	return game.GetModdedValue(value, 0, 5*stacks)
}

// charge is a pooled resource with no behavior of its own; dice scripts
// spend it for roll bonuses.
type charge struct{ engine.Base }

// barrier soaks damage point for point, consuming itself.
type barrier struct{ engine.Base }

func (barrier) AbsorbDamage(e *engine.Engine, u *game.Unit, value int, stacks int) int {
	absorb := stacks
	if absorb > value {
		absorb = value
	}
	e.RemoveStatus(u, game.StatusBarrier, absorb)
	return value - absorb
}

// disarm saps attack rolls by its stacks.
type disarm struct{ engine.Base }

func (disarm) OnCalculateStats(_ *game.Unit, mods map[string]game.Modifier, stacks int) {
	addMod(mods, game.ModPowerAttack, -stacks, 0)
}

// staggerProtection keeps the bearer at 1 stagger instead of breaking.
type staggerProtection struct{ engine.Base }

func (staggerProtection) PreventsStagger(*game.Unit, int) bool { return true }

// registerStatuses wires every status mechanic. Marker statuses whose math
// the engine owns (advantage, haste, slow, bind, adaptation) register as
// bare no-ops so they still show up in dispatch and pool classification.
func registerStatuses(b *engine.RegistryBuilder) {
	b.AddStatus(engine.Base{MechID: game.StatusAdvantage})
	b.AddStatus(engine.Base{MechID: game.StatusHaste})
	b.AddStatus(engine.Base{MechID: game.StatusSlow})
	b.AddStatus(engine.Base{MechID: game.StatusBind})
	b.AddStatus(engine.Base{MechID: game.StatusAdaptation})

	b.AddStatus(bleed{engine.Base{MechID: game.StatusBleed}})
	b.AddStatus(burn{engine.Base{MechID: game.StatusBurn}})
	b.AddStatus(strengthStatus{engine.Base{MechID: game.StatusStrength}})
	b.AddStatus(feeble{engine.Base{MechID: game.StatusFeeble}})
	b.AddStatus(protection{engine.Base{MechID: game.StatusProtection}})
	b.AddStatus(fragile{engine.Base{MechID: game.StatusFragile}})
	b.AddStatus(smoke{engine.Base{MechID: game.StatusSmoke, Pool: true}})
	b.AddStatus(charge{engine.Base{MechID: game.StatusCharge, Pool: true}})
	b.AddStatus(barrier{engine.Base{MechID: game.StatusBarrier}})
	b.AddStatus(disarm{engine.Base{MechID: game.StatusDisarm}})
	b.AddStatus(staggerProtection{engine.Base{MechID: game.StatusStaggerProtection}})
}
