package engine

import (
	"strings"
	"testing"

	"github.com/librozavisim/lor-simulator/internal/game"
)

func TestRollWithAdvantageTakesHigherAndConsumesStack(t *testing.T) {
	e := testEngine(0, 2) // rolls 2 then 4 on a 2-4 die
	u := newTestUnit("fencer")
	e.AddStatus(u, game.StatusAdvantage, 1, 1, 0, true)
	die := game.NewDie(2, 4, game.DamageSlash)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, false)

	if ctx.BaseValue != 4 {
		t.Errorf("BaseValue = %d, want higher roll 4", ctx.BaseValue)
	}
	if u.HasStatus(game.StatusAdvantage) {
		t.Error("advantage stack not consumed")
	}
}

func TestRollWithDisadvantageTakesLower(t *testing.T) {
	e := testEngine(2, 0) // rolls 4 then 2
	u := newTestUnit("fencer")
	die := game.NewDie(2, 4, game.DamageSlash)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, true)

	if ctx.BaseValue != 2 {
		t.Errorf("BaseValue = %d, want lower roll 2", ctx.BaseValue)
	}
}

func TestAdvantageAndDisadvantageCancelButConsume(t *testing.T) {
	e := testEngine(1) // single roll 3
	u := newTestUnit("fencer")
	e.AddStatus(u, game.StatusAdvantage, 1, 1, 0, true)
	die := game.NewDie(2, 4, game.DamageSlash)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, true)

	if ctx.BaseValue != 3 {
		t.Errorf("BaseValue = %d, want single roll 3", ctx.BaseValue)
	}
	if u.HasStatus(game.StatusAdvantage) {
		t.Error("cancelled advantage must still be spent")
	}
}

func TestAttackRollAddsStrengthBonus(t *testing.T) {
	e := testEngine(0)
	u := newTestUnit("bruiser")
	u.Attributes[game.AttrStrength] = 6
	e.RecalculateStats(u)
	u.CurrentHP, u.CurrentStagger = u.MaxHP, u.MaxStagger
	die := game.NewDie(3, 3, game.DamageSlash)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, false)

	if ctx.Total() != 5 {
		t.Errorf("Total = %d, want 3 + 2 (Str) = 5", ctx.Total())
	}
	if len(ctx.Log) == 0 || !strings.Contains(ctx.Log[0], "= 5") {
		t.Errorf("breakdown missing from log: %v", ctx.Log)
	}
}

func TestUnchangeableCardSkipsStatBonuses(t *testing.T) {
	e := testEngine(0)
	u := newTestUnit("bruiser")
	u.Attributes[game.AttrStrength] = 9
	e.RecalculateStats(u)
	u.CurrentHP, u.CurrentStagger = u.MaxHP, u.MaxStagger
	u.CurrentCard = &game.Card{ID: "fixed", Flags: []string{game.FlagUnchangeable}}
	die := game.NewDie(3, 3, game.DamageSlash)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, false)

	if ctx.Total() != 3 {
		t.Errorf("Total = %d, want printed value 3", ctx.Total())
	}
}

func TestDisabledBlockRollsZero(t *testing.T) {
	e := testEngine(0)
	u := newTestUnit("guard")
	u.Modifiers[game.ModDisableBlock] = game.Modifier{Flat: 1}
	die := game.NewDie(5, 5, game.DamageBlock)

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, false)

	if ctx.Total() != 0 {
		t.Errorf("Total = %d, want 0 for disabled block", ctx.Total())
	}
}

func TestDieScriptRunsOnRoll(t *testing.T) {
	b := NewRegistryBuilder()
	b.AddScript("pump", func(_ *Engine, ctx *RollContext, params map[string]float64) {
		ctx.Add(int(params["amount"]), "pump")
	})
	e := New(b.Build(), WithRNG(&seqRNG{}))
	u := newTestUnit("caster")
	die := game.NewDie(2, 2, game.DamagePierce)
	die.Scripts = map[string][]game.ScriptRef{
		"on_roll": {{ScriptID: "pump", Params: map[string]float64{"amount": 3}}},
		// Unknown ids must be skipped silently.
		"on_hit": {{ScriptID: "no_such_script"}},
	}

	ctx := e.CreateRollContext(u, newTestUnit("dummy"), &die, false)

	if ctx.Total() != 5 {
		t.Errorf("Total = %d, want 2 + 3 (pump) = 5", ctx.Total())
	}
	e.runDieScripts(ctx, "on_hit") // must not panic
}
