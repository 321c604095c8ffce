package engine

import (
	"testing"

	"github.com/librozavisim/lor-simulator/internal/game"
)

func TestAddStatusStacksDatedEntries(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")

	e.AddStatus(u, game.StatusBleed, 2, 1, 0, true)
	e.AddStatus(u, game.StatusBleed, 3, 3, 0, true)

	if got := u.GetStatus(game.StatusBleed); got != 5 {
		t.Errorf("GetStatus = %d, want 5", got)
	}
	if len(u.Statuses[game.StatusBleed]) != 2 {
		t.Errorf("entries = %d, want 2 dated entries", len(u.Statuses[game.StatusBleed]))
	}
}

func TestAddStatusPoolMerges(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")

	e.AddStatus(u, game.StatusCharge, 2, 1, 0, true)
	e.AddStatus(u, game.StatusCharge, 3, 4, 0, true)

	entries := u.Statuses[game.StatusCharge]
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want single merged pool entry", len(entries))
	}
	if entries[0].Amount != 5 || entries[0].Duration != 4 {
		t.Errorf("merged entry = %+v, want amount 5 duration 4", entries[0])
	}
}

func TestRemoveStatusConsumesShortestDurationFirst(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")
	e.AddStatus(u, game.StatusBleed, 2, 3, 0, true)
	e.AddStatus(u, game.StatusBleed, 4, 1, 0, true)

	e.RemoveStatus(u, game.StatusBleed, 5)

	entries := u.Statuses[game.StatusBleed]
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Amount != 1 || entries[0].Duration != 3 {
		t.Errorf("remaining = %+v, want amount 1 from the long entry", entries[0])
	}
}

func TestRemoveStatusNegativeClears(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")
	e.AddStatus(u, game.StatusBleed, 2, 3, 0, true)

	e.RemoveStatus(u, game.StatusBleed, -1)

	if u.HasStatus(game.StatusBleed) {
		t.Error("negative removal must clear the status")
	}
}

func TestDelayedStatusActivatesAfterDelay(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")
	e.AddStatus(u, game.StatusBurn, 2, 2, 2, true)

	if u.HasStatus(game.StatusBurn) {
		t.Fatal("delayed status active immediately")
	}
	e.ProcessTurnEnd(u)
	if u.HasStatus(game.StatusBurn) {
		t.Fatal("delayed status active one round early")
	}
	e.ProcessTurnEnd(u)
	if got := u.GetStatus(game.StatusBurn); got != 2 {
		t.Errorf("activated amount = %d, want 2", got)
	}
	if u.Statuses[game.StatusBurn][0].Duration != 2 {
		t.Errorf("activated duration = %d, want the full 2", u.Statuses[game.StatusBurn][0].Duration)
	}
}

type echoMechanic struct{ Base }

func (echoMechanic) OnStatusApplied(e *Engine, u *game.Unit, name string, _ int, _ int) {
	if name == game.StatusBurn {
		e.AddStatus(u, game.StatusBleed, 1, 1, 1, true)
	}
}

func TestDelayedActivationKeepsCascadeQueuedEntries(t *testing.T) {
	b := NewRegistryBuilder()
	b.AddPassive(echoMechanic{Base{MechID: "echo"}})
	e := New(b.Build(), WithRNG(&seqRNG{}))
	u := newTestUnit("subject")
	u.Passives = []string{"echo"}
	e.AddStatus(u, game.StatusBurn, 2, 2, 1, true)

	// The burn activates and its application trigger queues a delayed
	// bleed mid-drain; that entry must survive the drain.
	e.ProcessTurnEnd(u)

	if !u.HasStatus(game.StatusBurn) {
		t.Fatal("burn did not activate")
	}
	if len(u.DelayedStatuses) != 1 || u.DelayedStatuses[0].Name != game.StatusBleed {
		t.Fatalf("delayed queue = %+v, want the cascaded bleed kept", u.DelayedStatuses)
	}

	e.ProcessTurnEnd(u)

	if got := u.GetStatus(game.StatusBleed); got != 1 {
		t.Errorf("bleed = %d, want the cascaded entry to land", got)
	}
}

func TestProcessTurnEndDecaysAndPrunes(t *testing.T) {
	e := testEngine()
	u := newTestUnit("subject")
	e.AddStatus(u, game.StatusBleed, 2, 1, 0, true)
	e.AddStatus(u, game.StatusBurn, 1, 2, 0, true)

	e.ProcessTurnEnd(u)

	if u.HasStatus(game.StatusBleed) {
		t.Error("expired status not pruned")
	}
	if got := u.GetStatus(game.StatusBurn); got != 1 {
		t.Errorf("surviving status = %d, want 1", got)
	}
}

func TestBeforeStatusAddVeto(t *testing.T) {
	b := NewRegistryBuilder()
	b.AddPassive(vetoMechanic{Base{MechID: "purity"}})
	e := New(b.Build(), WithRNG(&seqRNG{}))
	u := newTestUnit("subject")
	u.Passives = []string{"purity"}

	ok, reason := e.AddStatus(u, game.StatusBleed, 2, 1, 0, true)

	if ok || reason != "purity" {
		t.Errorf("AddStatus = (%v, %q), want vetoed with reason", ok, reason)
	}
	if u.HasStatus(game.StatusBleed) {
		t.Error("vetoed status applied anyway")
	}
}

type vetoMechanic struct{ Base }

func (vetoMechanic) OnBeforeStatusAdd(_ *game.Unit, name string, _ int, _ int) (bool, string) {
	if name == game.StatusBleed {
		return true, "purity"
	}
	return false, ""
}
