package storage

import "time"

// BattleRecord is the persisted battle row. The full team state and the
// combat log are stored as JSON blobs: the engine owns their shape and the
// database only needs identity, phase and recency for queries.
type BattleRecord struct {
	ID        string `gorm:"primaryKey"`
	Phase     string `gorm:"index"`
	Round     int
	State     []byte
	Log       []byte
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnapshotRecord is one per-round dynamic-state snapshot, the rewind seam.
// (battle, round) is unique; rewinding overwrites nothing, it reads.
type SnapshotRecord struct {
	ID        uint   `gorm:"primaryKey"`
	BattleID  string `gorm:"index"`
	Round     int
	State     []byte
	CreatedAt time.Time
}
