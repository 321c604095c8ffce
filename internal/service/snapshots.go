package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/logging"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// ListSnapshots returns the snapshot index for a battle.
func (s *Service) ListSnapshots(id string) ([]storage.SnapshotRecord, error) {
	if _, err := s.repo.GetBattleByID(id); err != nil {
		return nil, ErrBattleNotFound
	}
	return s.repo.ListSnapshots(id)
}

// Rewind restores a battle to the state captured before the given round
// and reopens its roll phase. Later snapshots stay put; resolving forward
// simply overwrites them round by round.
func (s *Service) Rewind(id string, round int) (*Battle, error) {
	b, err := s.loadBattle(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.GetSnapshot(id, round)
	if err != nil {
		return nil, ErrSnapshotNotFound
	}
	var snap roundSnapshot
	if err := json.Unmarshal(rec.State, &snap); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s/%d: %w", id, round, err)
	}
	if len(snap.Left) != len(b.Left) || len(snap.Right) != len(b.Right) {
		return nil, fmt.Errorf("snapshot %s/%d does not match battle roster", id, round)
	}

	for i, ds := range snap.Left {
		b.Left[i].ApplyDynamicState(ds)
		b.Left[i].ClearCombatState()
	}
	for i, ds := range snap.Right {
		b.Right[i].ApplyDynamicState(ds)
		b.Right[i].ClearCombatState()
	}
	b.Round = round
	b.Phase = PhaseRoll
	b.Winner = ""

	if err := s.saveBattle(b); err != nil {
		return nil, err
	}
	logging.Info("battle rewound", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldRound:    round,
	})
	return b, nil
}
