package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *BattleRecord) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id string) (*BattleRecord, error) {
	var b BattleRecord
	if err := r.db.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *BattleRecord) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) ListBattles() ([]BattleRecord, error) {
	var battles []BattleRecord
	// The list endpoint only needs identity and phase; the state blobs can
	// be large, so they stay out of the listing.
	err := r.db.Select("id", "phase", "round", "created_at", "updated_at").
		Order("updated_at DESC").Find(&battles).Error
	return battles, err
}

func (r *sqliteRepository) SaveSnapshot(s *SnapshotRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "battle_id"}, {Name: "round"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "created_at"}),
	}).Create(s).Error
}

func (r *sqliteRepository) GetSnapshot(battleID string, round int) (*SnapshotRecord, error) {
	var s SnapshotRecord
	if err := r.db.First(&s, "battle_id = ? AND round = ?", battleID, round).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) ListSnapshots(battleID string) ([]SnapshotRecord, error) {
	var snapshots []SnapshotRecord
	err := r.db.Select("id", "battle_id", "round", "created_at").
		Where("battle_id = ?", battleID).Order("round ASC").Find(&snapshots).Error
	return snapshots, err
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]BattleRecord, error) {
	var battles []BattleRecord
	err := r.db.Where("phase = ? AND deadline IS NOT NULL AND deadline <= ?", "planning", now).
		Find(&battles).Error
	return battles, err
}
