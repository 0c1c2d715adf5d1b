package database

import (
	"path/filepath"
	"testing"

	"github.com/localnerve/nftune-store/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, MemoryDatabase, SQLiteDSN(MemoryDatabase))
	assert.Equal(t, "file::memory:?mode=memory&cache=shared", SQLiteDSN("file::memory:?mode=memory&cache=shared"))

	dsn := SQLiteDSN("/var/lib/nftune/nftune.db")
	assert.Equal(t,
		"/var/lib/nftune/nftune.db?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		dsn)

	assert.Contains(t, SQLiteDSN("nftune.db?cache=private"), "nftune.db?cache=private&_pragma=journal_mode(WAL)")
}

func TestConnect_UnsupportedType(t *testing.T) {
	_, err := Connect(&config.Config{DBType: "oracle", DBDatabase: "x"})
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db, err := Connect(&config.Config{DBType: "sqlite", DBDatabase: MemoryDatabase, DBLogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "projects", "tracks", "nfts", "collaborations"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("tracks", "idx_tracks_project_id"))
	assert.True(t, db.Migrator().HasIndex("collaborations", "idx_collaborations_project_id"))
}

func TestConnect_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nftune.db")
	db, err := Connect(&config.Config{DBType: "sqlite", DBDatabase: path, DBLogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	var sync int
	require.NoError(t, db.Raw("PRAGMA synchronous").Scan(&sync).Error)
	assert.Equal(t, 2, sync)
}
