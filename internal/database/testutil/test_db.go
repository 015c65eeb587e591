package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/database"
)

// TestDBOption customises the behaviour of MustOpenTestDB.
type TestDBOption func(*testDBConfig)

type testDBConfig struct {
	seedCatalogue bool
}

// WithCatalogue seeds the starter catalogue so product and order tests have
// rows to browse without creating their own.
func WithCatalogue() TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.seedCatalogue = true
	}
}

// MustOpenTestDB opens an in-memory SQLite database with the storefront
// schema migrated. The connection is closed via t.Cleanup, which also drops
// the in-memory store between tests.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	cfg := testDBConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := database.Open(database.Config{Driver: "sqlite"})
	require.NoError(t, err)

	if cfg.seedCatalogue {
		require.NoError(t, database.AutoMigrateAndSeed(db))
	} else {
		require.NoError(t, database.AutoMigrate(db))
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
