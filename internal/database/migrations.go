package database

import (
	"fmt"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// compositeIndexes back the lookups that filter on more than one column.
var compositeIndexes = []index{
	{"clock_entries", "idx_clock_entries_shift_user", "shift_id, user_id"},
	{"clock_entries", "idx_clock_entries_user_clock_in", "user_id, clock_in_at"},
	{"shifts", "idx_shifts_organization_start", "organization_id, start_at"},
	{"shift_exceptions", "idx_shift_exceptions_organization_status", "organization_id, status"},
	{"mood_entries", "idx_mood_entries_user_timestamp", "user_id, timestamp"},
}

// AddIndexes adds the composite indexes that AutoMigrate does not derive from struct tags.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range compositeIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// MigrateDatabase runs AutoMigrate and then adds indexes.
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
