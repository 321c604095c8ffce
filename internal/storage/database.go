package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema current
// via AutoMigrate. The snapshot uniqueness constraint is an explicit
// index so replays of the same round overwrite instead of duplicating.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&BattleRecord{}, &SnapshotRecord{}); err != nil {
		return nil, err
	}
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_snapshot_battle_round ON snapshot_records(battle_id, round);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
