package service

import (
	"encoding/json"

	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/game"
	"github.com/librozavisim/lor-simulator/internal/logging"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

// Resolve runs the planned round to completion: snapshot the pre-round
// state, execute the full action queue, then either finish the battle or
// open the next round's roll phase.
func (s *Service) Resolve(id string) (*Battle, error) {
	b, err := s.loadBattle(id)
	if err != nil {
		return nil, err
	}
	if b.Phase == PhaseDone {
		return nil, ErrBattleOver
	}
	if b.Phase != PhasePlanning {
		return nil, ErrNotPlanning
	}
	if err := b.transition(eventFight); err != nil {
		return nil, err
	}

	// Snapshot before the dice fly, so rewinding to round N replays N.
	if err := s.snapshotRound(b); err != nil {
		logging.Error("failed to save snapshot", err, logging.Fields{
			constants.LogFieldBattleID: b.ID,
			constants.LogFieldRound:    b.Round,
		})
	}

	e := s.engineFor(b)
	b.Log = append(b.Log, e.ResolveTurn(b.Left, b.Right)...)
	b.Round = e.Round()

	switch {
	case teamDefeated(b.Left) || teamDefeated(b.Right):
		if teamDefeated(b.Right) && !teamDefeated(b.Left) {
			b.Winner = "left"
		} else if teamDefeated(b.Left) && !teamDefeated(b.Right) {
			b.Winner = "right"
		}
		e.EndCombat(append(append([]*game.Unit{}, b.Left...), b.Right...))
		if err := b.transition(eventFinish); err != nil {
			return nil, err
		}
	default:
		if err := b.transition(eventNextRound); err != nil {
			return nil, err
		}
	}

	if err := s.saveBattle(b); err != nil {
		return nil, err
	}
	logging.Info("round resolved", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldRound:    b.Round,
		constants.LogFieldPhase:    b.Phase,
	})
	return b, nil
}

// roundSnapshot is the persisted per-round dynamic state of both teams.
type roundSnapshot struct {
	Round int                 `json:"round"`
	Left  []game.DynamicState `json:"left"`
	Right []game.DynamicState `json:"right"`
}

func (s *Service) snapshotRound(b *Battle) error {
	snap := roundSnapshot{Round: b.Round}
	for _, u := range b.Left {
		snap.Left = append(snap.Left, u.DynamicState())
	}
	for _, u := range b.Right {
		snap.Right = append(snap.Right, u.DynamicState())
	}
	blob, err := json.Marshal(&snap)
	if err != nil {
		return err
	}
	return s.repo.SaveSnapshot(&storage.SnapshotRecord{
		BattleID: b.ID,
		Round:    b.Round,
		State:    blob,
	})
}
