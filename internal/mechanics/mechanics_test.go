package mechanics

import (
	"testing"

	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
)

func newEngine() *engine.Engine {
	b := engine.NewRegistryBuilder()
	Register(b)
	return engine.New(b.Build(), engine.WithSeed(1))
}

func newUnit(name string) *game.Unit {
	u := game.NewUnit(name, 1)
	u.MaxHP, u.CurrentHP = 30, 30
	u.MaxSP, u.CurrentSP = 10, 10
	u.MaxStagger, u.CurrentStagger = 10, 10
	return u
}

func hit(e *engine.Engine, src, tgt *game.Unit, value int, t game.DamageType) int {
	die := game.NewDie(value, value, t)
	ctx := e.CreateRollContext(src, tgt, &die, false)
	entry := engine.LogEntry{}
	return e.ApplyDamage(ctx, tgt, t, &entry)
}

func TestBleedWoundsAttackerOnHit(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	e.AddStatus(att, game.StatusBleed, 2, 3, 0, true)

	hit(e, att, def, 3, game.DamageSlash)

	if att.CurrentHP != 28 {
		t.Errorf("att hp = %d, want 30 - 2 bleed = 28", att.CurrentHP)
	}
	if got := att.GetStatus(game.StatusBleed); got != 1 {
		t.Errorf("bleed = %d, want one stack spent", got)
	}
}

func TestBurnTicksAtRoundEnd(t *testing.T) {
	e := newEngine()
	u := newUnit("torch")
	e.AddStatus(u, game.StatusBurn, 2, 2, 0, true)

	e.ResolveTurn([]*game.Unit{u}, nil)

	if u.CurrentHP != 28 {
		t.Errorf("hp = %d, want 30 - 2 burn = 28", u.CurrentHP)
	}
	if !u.HasStatus(game.StatusBurn) {
		t.Error("burn with duration 2 must survive the first round")
	}
}

func TestStrengthStatusRaisesRolls(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	e.AddStatus(att, game.StatusStrength, 2, 2, 0, true)
	e.RecalculateStats(att)

	die := game.NewDie(3, 3, game.DamageSlash)
	ctx := e.CreateRollContext(att, def, &die, false)

	if ctx.Total() != 5 {
		t.Errorf("total = %d, want 3 + 2 strength = 5", ctx.Total())
	}
}

func TestSmokeAmplifiesIncomingDamage(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	e.AddStatus(def, game.StatusSmoke, 4, 2, 0, true)

	applied := hit(e, att, def, 10, game.DamageSlash)

	if applied != 12 {
		t.Errorf("applied = %d, want 10 boosted 5%% per smoke stack to 12", applied)
	}
}

func TestBarrierAbsorbsAndBurnsOut(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	e.AddStatus(def, game.StatusBarrier, 3, 2, 0, true)

	applied := hit(e, att, def, 5, game.DamageSlash)

	if applied != 2 || def.CurrentHP != 28 {
		t.Errorf("applied=%d hp=%d, want 2 through a 3-point barrier", applied, def.CurrentHP)
	}
	if def.HasStatus(game.StatusBarrier) {
		t.Error("a fully spent barrier must be gone")
	}
}

func TestDieHardSavesOncePerBattle(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	def.Passives = []string{PassiveDieHard}
	def.CurrentHP = 3

	hit(e, att, def, 9, game.DamageBlunt)
	if def.CurrentHP != 1 || def.IsDead() {
		t.Fatalf("hp = %d, want saved at 1", def.CurrentHP)
	}

	hit(e, att, def, 9, game.DamageBlunt)
	if !def.IsDead() {
		t.Error("the second killing blow must land")
	}
}

func TestSPShieldConvertsHitsToSanity(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	def.Passives = []string{PassiveSPShield}

	applied := hit(e, att, def, 4, game.DamageSlash)

	if applied != 0 || def.CurrentHP != 30 {
		t.Errorf("applied=%d hp=%d, want the body untouched", applied, def.CurrentHP)
	}
	if def.CurrentSP != 6 {
		t.Errorf("sp = %d, want 10 - 4 = 6", def.CurrentSP)
	}
}

func TestLuckyStrikeRollsOffLuck(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	att.Passives = []string{PassiveLuckyStrike}
	att.Attributes[game.AttrLuck] = 9

	die := game.NewDie(3, 3, game.DamageSlash)
	ctx := e.CreateRollContext(att, def, &die, false)

	if ctx.Total() != 6 {
		t.Errorf("total = %d, want 3 + 3 (Lck) = 6", ctx.Total())
	}
}

func TestThornsPricksTheClashWinner(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	def.Passives = []string{PassiveThorns}
	att.ActiveSlots = []*game.ActiveSlot{{
		Speed: 5, TargetUnit: 0, TargetSlot: 0,
		Card: &game.Card{ID: "cleave", Name: "cleave", Type: game.CardMelee,
			Dice: []game.Die{game.NewDie(4, 4, game.DamageSlash)}},
	}}
	def.ActiveSlots = []*game.ActiveSlot{{
		Speed: 3, TargetUnit: 0, TargetSlot: 0,
		Card: &game.Card{ID: "jab", Name: "jab", Type: game.CardMelee,
			Dice: []game.Die{game.NewDie(2, 2, game.DamageSlash)}},
	}}

	e.ResolveTurn([]*game.Unit{att}, []*game.Unit{def})

	if att.CurrentHP != 28 {
		t.Errorf("winner hp = %d, want pricked for 2", att.CurrentHP)
	}
}

func TestStoredCalmAnswersWhileStaggered(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	def.Passives = []string{PassiveStoredCalm}
	def.CurrentStagger = 0
	def.CounterDice = []game.Die{game.NewDie(6, 6, game.DamageBlock)}
	att.ActiveSlots = []*game.ActiveSlot{{
		Speed: 5, TargetUnit: 0, TargetSlot: 0,
		Card: &game.Card{ID: "jab", Name: "jab", Type: game.CardMelee,
			Dice: []game.Die{game.NewDie(4, 4, game.DamageSlash)}},
	}}

	e.ResolveTurn([]*game.Unit{att}, []*game.Unit{def})

	if def.CurrentHP != 30 {
		t.Errorf("def hp = %d, want the counter block to answer despite the stagger", def.CurrentHP)
	}
}

func TestQuickstepGrantsExtraSpeedDie(t *testing.T) {
	e := newEngine()
	u := newUnit("scout")
	u.Passives = []string{PassiveQuickstep}
	u.Skills[game.SkillSpeed] = 5

	e.RollSpeedDice(u)

	if len(u.ActiveSlots) != 2 {
		t.Errorf("slots = %d, want base 1 + quickstep 1", len(u.ActiveSlots))
	}
}

func TestVeteranFrameAddsFlatHP(t *testing.T) {
	e := newEngine()
	u := game.NewUnit("veteran", 1)
	u.Passives = []string{PassiveVeteranFrame}

	e.RecalculateStats(u)

	if u.MaxHP != 32 {
		t.Errorf("max hp = %d, want 22 + 10 = 32", u.MaxHP)
	}
}

type maxRNG struct{}

func (maxRNG) Intn(n int) int { return n - 1 }

type minRNG struct{}

func (minRNG) Intn(int) int { return 0 }

func newEngineWith(rng engine.RNG, weapons ...game.Weapon) *engine.Engine {
	b := engine.NewRegistryBuilder()
	Register(b)
	for _, w := range weapons {
		b.AddWeapon(w)
	}
	return engine.New(b.Build(), engine.WithRNG(rng))
}

func TestKeenEdgeRaisesSlashCeiling(t *testing.T) {
	e := newEngineWith(maxRNG{}, game.Weapon{ID: "saber", PassiveID: WeaponKeenEdge})
	att, def := newUnit("att"), newUnit("def")
	att.WeaponID = "saber"

	die := game.NewDie(2, 4, game.DamageSlash)
	ctx := e.CreateRollContext(att, def, &die, false)

	if ctx.Total() != 5 {
		t.Errorf("total = %d, want the ceiling pushed to 5", ctx.Total())
	}
}

func TestBalancedGripRaisesAttackFloor(t *testing.T) {
	e := newEngineWith(minRNG{}, game.Weapon{ID: "estoc", PassiveID: WeaponBalancedGrip})
	att, def := newUnit("att"), newUnit("def")
	att.WeaponID = "estoc"

	die := game.NewDie(2, 4, game.DamagePierce)
	ctx := e.CreateRollContext(att, def, &die, false)

	if ctx.Total() != 3 {
		t.Errorf("total = %d, want the floor raised to 3", ctx.Total())
	}
}

func TestHeavyMomentumBoostsBluntHits(t *testing.T) {
	e := newEngineWith(minRNG{}, game.Weapon{ID: "maul", PassiveID: WeaponHeavyMomentum})
	att, def := newUnit("att"), newUnit("def")
	att.WeaponID = "maul"

	applied := hit(e, att, def, 3, game.DamageBlunt)

	if applied != 5 {
		t.Errorf("applied = %d, want 3 + 2 momentum = 5", applied)
	}
}

func TestStaggerProtectionHoldsAtOne(t *testing.T) {
	e := newEngine()
	att, def := newUnit("att"), newUnit("def")
	e.AddStatus(def, game.StatusStaggerProtection, 1, 2, 0, true)

	hit(e, att, def, 15, game.DamageBlunt)

	if def.CurrentStagger != 1 {
		t.Errorf("stagger = %d, want held at 1", def.CurrentStagger)
	}
}
