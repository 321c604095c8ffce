package mechanics

import (
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
)

// Weapon passive ids referenced from weapon definitions.
const (
	WeaponKeenEdge      = "keen_edge"
	WeaponBalancedGrip  = "balanced_grip"
	WeaponHeavyMomentum = "heavy_momentum"
)

// keenEdge sharpens the top end of slash dice.
type keenEdge struct{ engine.Base }

func (keenEdge) ModifyDiceMax(ctx *engine.RollContext, value int, _ int) int {
	if ctx.Die.Type == game.DamageSlash {
		return value + 1
	}
	return value
}

// balancedGrip raises the floor of every attack die.
type balancedGrip struct{ engine.Base }

func (balancedGrip) ModifyDiceMin(ctx *engine.RollContext, value int, _ int) int {
	if ctx.Die.Type.IsAttack() {
		return value + 1
	}
	return value
}

// heavyMomentum adds raw force to landed blunt hits.
type heavyMomentum struct{ engine.Base }

func (heavyMomentum) ModifyOutgoingDamage(ctx *engine.RollContext, value int, _ int) int {
	if ctx.Die.Type == game.DamageBlunt {
		return value + 2
	}
	return value
}

func registerWeaponPassives(b *engine.RegistryBuilder) {
	b.AddWeaponPassive(keenEdge{engine.Base{MechID: WeaponKeenEdge}})
	b.AddWeaponPassive(balancedGrip{engine.Base{MechID: WeaponBalancedGrip}})
	b.AddWeaponPassive(heavyMomentum{engine.Base{MechID: WeaponHeavyMomentum}})
}

// Register wires every built-in mechanic into the registry builder. Card
// and weapon definitions come from content configuration, not from here.
func Register(b *engine.RegistryBuilder) {
	registerStatuses(b)
	registerPassives(b)
	registerWeaponPassives(b)
}
