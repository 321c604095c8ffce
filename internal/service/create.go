package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/game"
	"github.com/librozavisim/lor-simulator/internal/logging"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

// CreateBattle instantiates both teams from unit templates, initializes
// combat and persists the new battle in the roll phase.
func (s *Service) CreateBattle(leftNames, rightNames []string) (*Battle, error) {
	build := func(names []string) ([]*game.Unit, error) {
		team := make([]*game.Unit, 0, len(names))
		for _, name := range names {
			tpl, ok := s.templates[name]
			if !ok {
				return nil, ErrUnknownTemplate
			}
			u, err := cloneUnit(tpl)
			if err != nil {
				return nil, err
			}
			team = append(team, u)
		}
		return team, nil
	}

	left, err := build(leftNames)
	if err != nil {
		return nil, err
	}
	right, err := build(rightNames)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		ID:    uuid.NewString(),
		Phase: PhaseRoll,
		Seed:  s.seed,
		Round: 1,
		Left:  left,
		Right: right,
	}
	if b.Seed == 0 {
		b.Seed = int64(uuid.New().ID())
	}

	e := s.engineFor(b)
	e.InitCombat(append(append([]*game.Unit{}, left...), right...))

	stateBlob, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	rec := &storage.BattleRecord{ID: b.ID, Phase: b.Phase, Round: b.Round, State: stateBlob}
	if err := s.repo.CreateBattle(rec); err != nil {
		return nil, err
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldCount:    len(left) + len(right),
	})
	return b, nil
}

// RollSpeed rolls speed dice for every unit and advances to planning.
func (s *Service) RollSpeed(id string) (*Battle, error) {
	b, err := s.loadBattle(id)
	if err != nil {
		return nil, err
	}
	if b.Phase == PhaseDone {
		return nil, ErrBattleOver
	}
	if b.Phase != PhaseRoll {
		return nil, ErrNotRollPhase
	}

	e := s.engineFor(b)
	for _, u := range append(append([]*game.Unit{}, b.Left...), b.Right...) {
		e.RecalculateStats(u)
		e.RollSpeedDice(u)
	}
	if err := b.transition(eventPlan); err != nil {
		return nil, err
	}
	if err := s.saveBattle(b); err != nil {
		return nil, err
	}
	logging.Debug("speed rolled", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldRound:    b.Round,
	})
	return b, nil
}

// GetBattle loads a battle session by id.
func (s *Service) GetBattle(id string) (*Battle, error) {
	return s.loadBattle(id)
}

// ListBattles returns the persisted battle listing.
func (s *Service) ListBattles() ([]storage.BattleRecord, error) {
	return s.repo.ListBattles()
}
