package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice identity.Identity = "alice"
	bob   identity.Identity = "bob"
	carol identity.Identity = "carol"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestService returns a Service over a fresh in-memory store with a
// clock that ticks one second per reading and sequential ids.
func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	db, err := database.Connect(&config.Config{DBType: "sqlite", DBDatabase: database.MemoryDatabase, DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tick := 0
	seq := 0
	base := []Option{
		WithClock(func() time.Time {
			tick++
			return epoch.Add(time.Duration(tick) * time.Second)
		}),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%03d", seq)
		}),
	}

	return New(store.New(db), append(base, opts...)...)
}

func register(t *testing.T, s *Service, ids ...identity.Identity) {
	t.Helper()
	for _, id := range ids {
		_, err := s.RegisterUser(context.Background(), id, RegisterInput{Email: string(id) + "@example.com"})
		require.NoError(t, err)
	}
}

func newProject(t *testing.T, s *Service, owner identity.Identity, name string) *models.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), owner, ProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func requireKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, types.KindOf(err), "error: %v", err)
}

func ptr[T any](v T) *T {
	return &v
}
