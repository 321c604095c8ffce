package storage

import "time"

type Repository interface {
	CreateBattle(b *BattleRecord) error
	GetBattleByID(id string) (*BattleRecord, error)
	UpdateBattle(b *BattleRecord) error
	ListBattles() ([]BattleRecord, error)

	// Snapshots: one dynamic-state blob per (battle, round). Saving the
	// same round again replaces the previous snapshot.
	SaveSnapshot(s *SnapshotRecord) error
	GetSnapshot(battleID string, round int) (*SnapshotRecord, error)
	ListSnapshots(battleID string) ([]SnapshotRecord, error)

	// FindTimedOutBattles returns battles still in the planning phase whose
	// deadline is at or before now. The caller decides how to resolve them.
	FindTimedOutBattles(now time.Time) ([]BattleRecord, error)
}
