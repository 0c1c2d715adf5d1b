package identity

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(&config.Config{DBType: "sqlite", DBDatabase: database.MemoryDatabase, DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return store.New(db)
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, Anonymous.IsAnonymous())
	assert.True(t, Identity("").IsAnonymous())
	assert.False(t, Identity("alice").IsAnonymous())
}

func TestRequireAuthenticated(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(tx *gorm.DB) error {
		return s.Users.Put(tx, &models.User{ID: "alice", Email: "alice@example.com", CreatedAt: time.Now().UTC()})
	}))

	tests := []struct {
		name   string
		caller Identity
		kind   types.ErrorKind
	}{
		{"anonymous sentinel", Anonymous, types.KindUnauthenticated},
		{"empty identity", "", types.KindUnauthenticated},
		{"unregistered", "bob", types.KindNotRegistered},
		{"registered", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.View(ctx, func(tx *gorm.DB) error {
				id, err := RequireAuthenticated(tx, s.Users, tt.caller)
				if err == nil {
					assert.Equal(t, tt.caller, id)
				}
				return err
			})
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, types.KindOf(err))
			assert.True(t, IsGateError(err))
		})
	}
}
