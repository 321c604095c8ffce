package mechanics

import (
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
)

// Passive ids referenced from unit sheets.
const (
	PassiveDieHard      = "die_hard"
	PassiveLuckyStrike  = "lucky_strike"
	PassiveNimble       = "nimble"
	PassiveUnbreakable  = "unbreakable_dice"
	PassiveAmbusher     = "ambusher"
	PassiveThorns       = "thorns"
	PassiveSPShield     = "sp_shield"
	PassiveStoredCalm   = "stored_calm"
	PassiveVeteranFrame = "veteran_frame"
	PassiveQuickstep    = "quickstep"
)

const dieHardUsedKey = "die_hard_used"

// dieHard survives one killing blow per battle, tracked in unit memory.
type dieHard struct{ engine.Base }

func (dieHard) PreventsDeath(_ *engine.Engine, u *game.Unit, _ int) bool {
	if u.Memory[dieHardUsedKey] > 0 {
		return false
	}
	u.Memory[dieHardUsedKey] = 1
	return true
}

// luckyStrike rolls attack dice off luck instead of strength when luck is
// the better attribute.
type luckyStrike struct{ engine.Base }

func (luckyStrike) OverrideRollBaseStat(ctx *engine.RollContext, _ int) (int, string) {
	if !ctx.Die.Type.IsAttack() {
		return 0, ""
	}
	lucky := game.SafeIntDiv(ctx.Source.Attribute(game.AttrLuck), 3)
	if lucky > ctx.Source.PowerAttackBase() {
		return lucky, "Lck"
	}
	return 0, ""
}

// nimble intercepts attackers it merely matches in speed.
type nimble struct{ engine.Base }

func (nimble) CanRedirectOnEqualSpeed(*game.Unit, int) bool { return true }

// unbreakableDice shrugs off speed-gap die destruction.
type unbreakableDice struct{ engine.Base }

func (unbreakableDice) PreventsDiceDestructionBySpeed(*game.Unit, *game.Die, int) bool { return true }

// ambusher punishes slow attackers even with nothing played.
type ambusher struct{ engine.Base }

func (ambusher) CanBreakEmptySlot(*game.Unit, int) bool { return true }

// thorns pricks whoever beats this unit in a clash.
type thorns struct{ engine.Base }

func (thorns) OnClashLose(_ *engine.Engine, _ *engine.RollContext, opponent *engine.RollContext, _ int) {
	winner := opponent.Source
	winner.CurrentHP -= 2
	if winner.CurrentHP < 0 {
		winner.CurrentHP = 0
	}
}

// spShield channels hits into sanity while any remains.
type spShield struct{ engine.Base }

func (spShield) ConvertsHPDamageToSP(u *game.Unit, _ int) bool { return u.CurrentSP > 0 }

// storedCalm keeps stored and counter dice usable while staggered.
type storedCalm struct{ engine.Base }

func (storedCalm) CanUseStoredWhileStaggered(*game.Unit, int) bool { return true }

// veteranFrame grants a flat HP cushion.
type veteranFrame struct{ engine.Base }

func (veteranFrame) OnCalculateStats(_ *game.Unit, mods map[string]game.Modifier, _ int) {
	addMod(mods, game.ModHPMax, 10, 0)
}

// quickstep grants an extra speed die.
type quickstep struct{ engine.Base }

func (quickstep) SpeedDiceBonus(*game.Unit, int) int { return 1 }

func registerPassives(b *engine.RegistryBuilder) {
	b.AddPassive(dieHard{engine.Base{MechID: PassiveDieHard}})
	b.AddPassive(luckyStrike{engine.Base{MechID: PassiveLuckyStrike}})
	b.AddPassive(nimble{engine.Base{MechID: PassiveNimble}})
	b.AddPassive(unbreakableDice{engine.Base{MechID: PassiveUnbreakable}})
	b.AddPassive(ambusher{engine.Base{MechID: PassiveAmbusher}})
	b.AddPassive(thorns{engine.Base{MechID: PassiveThorns}})
	b.AddPassive(spShield{engine.Base{MechID: PassiveSPShield}})
	b.AddPassive(storedCalm{engine.Base{MechID: PassiveStoredCalm}})
	b.AddPassive(veteranFrame{engine.Base{MechID: PassiveVeteranFrame}})
	b.AddPassive(quickstep{engine.Base{MechID: PassiveQuickstep}})
}
