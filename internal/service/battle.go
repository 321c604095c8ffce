// Package service owns battle sessions: phase transitions, plan
// validation, round resolution and the snapshot/rewind seam. It glues the
// pure engine to persistence without letting either leak into the other.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

// Battle phases. A round cycles roll -> planning -> fighting and back to
// roll until one side falls.
const (
	PhaseRoll     = "roll"
	PhasePlanning = "planning"
	PhaseFighting = "fighting"
	PhaseDone     = "done"
)

// Phase transition events.
const (
	eventPlan      = "plan"
	eventFight     = "fight"
	eventNextRound = "next_round"
	eventFinish    = "finish"
)

var (
	ErrBattleNotFound  = errors.New("battle not found")
	ErrBattleOver      = errors.New("battle is already over")
	ErrNotRollPhase    = errors.New("battle is not in the speed roll phase")
	ErrNotPlanning     = errors.New("battle is not in the planning phase")
	ErrUnknownUnit     = errors.New("unknown unit index")
	ErrUnknownSlot     = errors.New("unknown slot index")
	ErrUnknownCard     = errors.New("unknown card")
	ErrCardNotInDeck   = errors.New("card is not in the unit's deck")
	ErrCardOnCooldown  = errors.New("card is on cooldown")
	ErrSlotStunned     = errors.New("slot is stunned")
	ErrUnknownTemplate = errors.New("unknown unit template")
)

// Battle is the in-memory session state, round-tripped through the battle
// record's JSON blobs.
type Battle struct {
	ID     string            `json:"id"`
	Phase  string            `json:"phase"`
	Seed   int64             `json:"seed"`
	Round  int               `json:"round"`
	Winner string            `json:"winner,omitempty"`
	Left   []*game.Unit      `json:"left"`
	Right  []*game.Unit      `json:"right"`
	Log    []engine.LogEntry `json:"log,omitempty"`
}

// Service coordinates battles against a registry and a repository. Unit
// templates come from loaded content, keyed by name.
type Service struct {
	repo            storage.Repository
	reg             *engine.Registry
	templates       map[string]*game.Unit
	seed            int64
	planningTimeout time.Duration
}

func New(repo storage.Repository, reg *engine.Registry, templates []*game.Unit, seed int64) *Service {
	m := make(map[string]*game.Unit, len(templates))
	for _, u := range templates {
		m[u.Name] = u
	}
	return &Service{repo: repo, reg: reg, templates: m, seed: seed, planningTimeout: defaultPlanningTimeout}
}

// newPhaseFSM builds the phase machine positioned at the battle's current
// phase. Finish is reachable from everywhere: a battle can end mid-round.
func newPhaseFSM(current string) *fsm.FSM {
	return fsm.NewFSM(current, fsm.Events{
		{Name: eventPlan, Src: []string{PhaseRoll}, Dst: PhasePlanning},
		{Name: eventFight, Src: []string{PhasePlanning}, Dst: PhaseFighting},
		{Name: eventNextRound, Src: []string{PhaseFighting}, Dst: PhaseRoll},
		{Name: eventFinish, Src: []string{PhaseRoll, PhasePlanning, PhaseFighting}, Dst: PhaseDone},
	}, fsm.Callbacks{})
}

// transition moves the battle's phase through the machine, so an illegal
// jump is an error instead of silent string assignment.
func (b *Battle) transition(event string) error {
	m := newPhaseFSM(b.Phase)
	if err := m.Event(context.Background(), event); err != nil {
		return fmt.Errorf("phase %s: %w", b.Phase, err)
	}
	b.Phase = m.Current()
	return nil
}

// engineFor rebuilds a deterministic engine positioned at the battle's
// round. The seed is offset by the round so replaying a rewound round
// rerolls identically, while later rounds differ.
func (s *Service) engineFor(b *Battle) *engine.Engine {
	e := engine.New(s.reg, engine.WithSeed(b.Seed+int64(b.Round)*7919))
	e.SetRound(b.Round)
	return e
}

func (s *Service) loadBattle(id string) (*Battle, error) {
	rec, err := s.repo.GetBattleByID(id)
	if err != nil {
		return nil, ErrBattleNotFound
	}
	var b Battle
	if err := json.Unmarshal(rec.State, &b); err != nil {
		return nil, fmt.Errorf("corrupt battle state %s: %w", id, err)
	}
	if len(rec.Log) > 0 {
		if err := json.Unmarshal(rec.Log, &b.Log); err != nil {
			return nil, fmt.Errorf("corrupt battle log %s: %w", id, err)
		}
	}
	for _, u := range append(append([]*game.Unit{}, b.Left...), b.Right...) {
		ensureUnitMaps(u)
	}
	return &b, nil
}

func (s *Service) saveBattle(b *Battle) error {
	logBlob, err := json.Marshal(b.Log)
	if err != nil {
		return err
	}
	// The log is stored in its own column; keep the state blob lean.
	state := *b
	state.Log = nil
	stateBlob, err := json.Marshal(&state)
	if err != nil {
		return err
	}
	rec, err := s.repo.GetBattleByID(b.ID)
	if err != nil {
		return ErrBattleNotFound
	}
	// The planning deadline arms on entering the phase, survives plan
	// submissions, and clears once the round is resolved.
	switch {
	case b.Phase != PhasePlanning:
		rec.Deadline = nil
	case rec.Phase != PhasePlanning:
		deadline := time.Now().Add(s.planningTimeout)
		rec.Deadline = &deadline
	}
	rec.Phase = b.Phase
	rec.Round = b.Round
	rec.State = stateBlob
	rec.Log = logBlob
	return s.repo.UpdateBattle(rec)
}

// cloneUnit deep-copies a template through JSON so battles never mutate
// loaded content.
func cloneUnit(u *game.Unit) (*game.Unit, error) {
	blob, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	var out game.Unit
	if err := json.Unmarshal(blob, &out); err != nil {
		return nil, err
	}
	ensureUnitMaps(&out)
	return &out, nil
}

// ensureUnitMaps rebuilds the map fields omitempty drops from the JSON
// blobs; engine and planning code write into them without nil checks.
func ensureUnitMaps(u *game.Unit) {
	if u.Memory == nil {
		u.Memory = map[string]float64{}
	}
	if u.Statuses == nil {
		u.Statuses = map[string][]game.StatusEntry{}
	}
	if u.CardCooldowns == nil {
		u.CardCooldowns = map[string]game.CooldownList{}
	}
	if u.Modifiers == nil {
		u.Modifiers = map[string]game.Modifier{}
	}
}

func teamDefeated(team []*game.Unit) bool {
	for _, u := range team {
		if !u.IsDead() {
			return false
		}
	}
	return true
}
