package database

import (
	logger "github.com/Bparsons0904/goLogger"
)

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_journal_entries_user_date_desc ON journal_entries(user_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_activity_interactions_user_kind ON activity_interactions(user_id, kind)",
		"CREATE INDEX IF NOT EXISTS idx_activities_kind_position ON activities(kind, position)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
