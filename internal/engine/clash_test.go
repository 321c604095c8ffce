package engine

import (
	"strings"
	"testing"

	"github.com/librozavisim/lor-simulator/internal/game"
)

func fixedCard(id string, t game.CardType, dice ...game.Die) *game.Card {
	return &game.Card{ID: id, Name: id, Type: t, Dice: dice}
}

func armedSlot(speed int, card *game.Card) *game.ActiveSlot {
	return &game.ActiveSlot{Speed: speed, Card: card, TargetUnit: 0, TargetSlot: 0}
}

func TestClashEvadeWinRecyclesAndRestoresStagger(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")
	def.CurrentStagger = 2

	attSlot := armedSlot(3, fixedCard("flurry", game.CardMelee,
		game.NewDie(3, 3, game.DamageSlash), game.NewDie(3, 3, game.DamageSlash)))
	defSlot := armedSlot(3, fixedCard("sidestep", game.CardMelee,
		game.NewDie(5, 5, game.DamageEvade)))

	e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if def.CurrentHP != 30 {
		t.Errorf("def hp = %d, want untouched", def.CurrentHP)
	}
	if def.CurrentStagger != 10 {
		t.Errorf("def stagger = %d, want restored to 10 by two evade wins", def.CurrentStagger)
	}
	if len(def.StoredDice) != 1 || def.StoredDice[0].Type != game.DamageEvade {
		t.Errorf("stored dice = %+v, want the surviving evade banked", def.StoredDice)
	}
	if !attSlot.Consumed || !defSlot.Consumed {
		t.Error("both slots must be consumed after the clash")
	}
}

func TestClashBlockWinFeedsBackStagger(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(3, fixedCard("jab", game.CardMelee, game.NewDie(4, 4, game.DamageSlash)))
	defSlot := armedSlot(3, fixedCard("wall", game.CardMelee, game.NewDie(6, 6, game.DamageBlock)))

	e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if att.CurrentStagger != 8 {
		t.Errorf("att stagger = %d, want 10 - (6-4) = 8", att.CurrentStagger)
	}
	if att.CurrentHP != 30 || def.CurrentHP != 30 {
		t.Error("a blocked attack must not cost HP on either side")
	}
}

func TestClashAttackBeatsBlockByDifference(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(3, fixedCard("cleave", game.CardMelee, game.NewDie(6, 6, game.DamageSlash)))
	defSlot := armedSlot(3, fixedCard("guard", game.CardMelee, game.NewDie(4, 4, game.DamageBlock)))

	e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if def.CurrentHP != 28 {
		t.Errorf("def hp = %d, want 30 - (6-4) = 28", def.CurrentHP)
	}
}

func TestClashDrawDamagesNobody(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(3, fixedCard("jab", game.CardMelee, game.NewDie(3, 3, game.DamageSlash)))
	defSlot := armedSlot(3, fixedCard("jab", game.CardMelee, game.NewDie(3, 3, game.DamageSlash)))

	logs := e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if att.CurrentHP != 30 || def.CurrentHP != 30 {
		t.Error("a drawn exchange must not deal damage")
	}
	if len(logs) == 0 || logs[0].Outcome != "draw" {
		t.Errorf("outcome = %+v, want draw", logs)
	}
}

func TestClashDefensiveStandoff(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(3, fixedCard("guard", game.CardMelee, game.NewDie(4, 4, game.DamageBlock)))
	defSlot := armedSlot(3, fixedCard("dodge", game.CardMelee, game.NewDie(9, 9, game.DamageEvade)))

	logs := e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if logs[0].Outcome != "defensive clash" {
		t.Errorf("outcome = %q, want defensive clash", logs[0].Outcome)
	}
	if att.CurrentStagger != 10 || def.CurrentStagger != 10 {
		t.Error("defensive clash must have no effect")
	}
}

func TestSpeedGapDestroysFirstDie(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(12, fixedCard("jab", game.CardMelee, game.NewDie(2, 2, game.DamageSlash)))
	attSlot.DestroyOnSpeed = true
	defSlot := armedSlot(2, fixedCard("combo", game.CardMelee,
		game.NewDie(9, 9, game.DamageSlash), game.NewDie(1, 1, game.DamageSlash)))

	logs := e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	// The 9-9 opener dies to the gap, so the 2-2 jab beats the 1-1 filler.
	if def.CurrentHP != 28 {
		t.Errorf("def hp = %d, want 28", def.CurrentHP)
	}
	found := false
	for _, entry := range logs {
		for _, d := range entry.Details {
			if strings.Contains(d, "destroyed by the speed gap") {
				found = true
			}
		}
	}
	if !found {
		t.Error("destruction must be logged")
	}
}

type unbreakableTest struct{ Base }

func (unbreakableTest) PreventsDiceDestructionBySpeed(*game.Unit, *game.Die, int) bool { return true }

func TestDestructionImmunityGrantsAdvantageInstead(t *testing.T) {
	b := NewRegistryBuilder()
	b.AddStatus(Base{MechID: game.StatusAdvantage})
	b.AddPassive(unbreakableTest{Base{MechID: "unbreakable"}})
	e := New(b.Build(), WithRNG(&seqRNG{}))
	att, def := newTestUnit("att"), newTestUnit("def")
	def.Passives = []string{"unbreakable"}

	attSlot := armedSlot(12, fixedCard("jab", game.CardMelee, game.NewDie(2, 2, game.DamageSlash)))
	attSlot.DestroyOnSpeed = true
	defSlot := armedSlot(2, fixedCard("riposte", game.CardMelee, game.NewDie(9, 9, game.DamageSlash)))

	attSide := e.newClashSide(att, attSlot)
	defSide := e.newClashSide(def, defSlot)
	var logs []LogEntry
	e.applySpeedGap(attSide, defSide, &logs)

	if defSide.destroyFirst {
		t.Error("immune dice must not be flagged for destruction")
	}
	if !att.HasStatus(game.StatusAdvantage) {
		t.Error("the faster side must receive advantage instead")
	}
}

func TestSpeedGapWithoutIntentOnlyDisadvantages(t *testing.T) {
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(12, fixedCard("jab", game.CardMelee, game.NewDie(2, 2, game.DamageSlash)))
	defSlot := armedSlot(2, fixedCard("riposte", game.CardMelee, game.NewDie(9, 9, game.DamageSlash)))

	attSide := e.newClashSide(att, attSlot)
	defSide := e.newClashSide(def, defSlot)
	var logs []LogEntry
	e.applySpeedGap(attSide, defSide, &logs)

	if defSide.destroyFirst {
		t.Error("destruction requires the declared intent")
	}
	if !defSide.disadvantage {
		t.Error("the slower side must roll with disadvantage")
	}
}

func TestClashTerminatesAgainstRecyclingEvades(t *testing.T) {
	// Two endless evaders: every exchange is a defensive stand-off, so the
	// loop must exit via queue exhaustion, not spin on recycled dice.
	e := testEngine()
	att, def := newTestUnit("att"), newTestUnit("def")

	attSlot := armedSlot(3, fixedCard("dodge", game.CardMelee, game.NewDie(5, 5, game.DamageEvade)))
	defSlot := armedSlot(3, fixedCard("dodge", game.CardMelee, game.NewDie(5, 5, game.DamageEvade)))

	logs := e.resolveClashPair(0, e.newClashSide(att, attSlot), e.newClashSide(def, defSlot))

	if len(logs) > maxClashIterations {
		t.Errorf("logs = %d entries, clash failed to terminate", len(logs))
	}
}
