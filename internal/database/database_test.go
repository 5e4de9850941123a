package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/utils"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, MigrateDatabase(db))
	for _, idx := range compositeIndexes {
		assert.True(t, db.Migrator().HasIndex(idx.table, idx.name), idx.name)
	}

	// a second run is a no-op
	require.NoError(t, MigrateDatabase(db))
}

func TestScopes(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		start := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, db.Create(&models.Shift{
			OrganizationID: 1, ProjectID: 1, PhaseID: 1, AssigneeID: 1,
			StartAt: start, EndAt: start.Add(time.Hour),
		}).Error)
	}

	var inRange []models.Shift
	require.NoError(t, db.Scopes(Between("start_at", base.Add(24*time.Hour), base.Add(3*24*time.Hour))).
		Order("start_at").Find(&inRange).Error)
	assert.Len(t, inRange, 2)

	var page []models.Shift
	require.NoError(t, db.Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).
		Order("id").Find(&page).Error)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].ID)
}
