//go:build integration

package database_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const (
	itDatabase = "nftune"
	itUser     = "nftune"
	itPassword = "nftune-password"
)

type backend struct {
	dbType string
	image  string
	port   string
	env    map[string]string
}

// backendFromEnv selects the server with INTEGRATION_DB (mariadb or
// postgres) and its image with DB_IMAGE.
func backendFromEnv() backend {
	switch os.Getenv("INTEGRATION_DB") {
	case "postgres":
		return backend{
			dbType: "postgres",
			image:  getenv("DB_IMAGE", "postgres:17"),
			port:   "5432",
			env: map[string]string{
				"POSTGRES_DB":       itDatabase,
				"POSTGRES_USER":     itUser,
				"POSTGRES_PASSWORD": itPassword,
			},
		}
	default:
		return backend{
			dbType: "mariadb",
			image:  getenv("DB_IMAGE", "mariadb:11"),
			port:   "3306",
			env: map[string]string{
				"MARIADB_DATABASE":      itDatabase,
				"MARIADB_USER":          itUser,
				"MARIADB_PASSWORD":      itPassword,
				"MARIADB_ROOT_PASSWORD": itPassword,
			},
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func startDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	b := backendFromEnv()

	tcpPort, err := nat.NewPort("tcp", b.port)
	require.NoError(t, err)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        b.image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          b.env,
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start database container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate database container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, tcpPort)
	require.NoError(t, err)

	cfg := &config.Config{
		DBType:            b.dbType,
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        itDatabase,
		DBUser:            itUser,
		DBPassword:        itPassword,
		DBConnectionLimit: 8,
		DBLogLevel:        "silent",
	}

	// The port listens before the server accepts logins.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = database.Connect(cfg)
		if err != nil {
			return false
		}
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			_ = database.Close(db)
			return false
		}
		return true
	}, 60*time.Second, time.Second)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestIntegration_ServerBackend(t *testing.T) {
	db := startDatabase(t)
	svc := services.New(store.New(db))
	ctx := context.Background()

	alice, bob := identity.Identity("alice"), identity.Identity("bob")
	for _, id := range []identity.Identity{alice, bob} {
		_, err := svc.RegisterUser(ctx, id, services.RegisterInput{Email: string(id) + "@example.com"})
		require.NoError(t, err)
	}

	_, err := svc.RegisterUser(ctx, alice, services.RegisterInput{Email: "again@example.com"})
	assert.Equal(t, types.KindConflict, types.KindOf(err))

	p, err := svc.CreateProject(ctx, alice, services.ProjectInput{Name: "P"})
	require.NoError(t, err)

	collab, err := svc.AddCollaborator(ctx, alice, p.ID, services.CollaboratorInput{Collaborator: bob, ContributionPercentage: 30, Role: "Vocalist"})
	require.NoError(t, err)

	track, err := svc.AddTrack(ctx, bob, p.ID, services.TrackInput{Name: "Hook", ContentRef: "bafy", Duration: 180})
	require.NoError(t, err)

	nft, err := svc.CreateNFT(ctx, alice, p.ID, services.NFTInput{Title: "N", RoyaltyPercentage: 10, MetadataURI: "ipfs://n"})
	require.NoError(t, err)
	_, err = svc.MintNFT(ctx, alice, nft.ID, services.MintInput{TokenID: "1", ContractAddress: "0xABC"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCollaborator(ctx, alice, p.ID, collab.ID))

	stored, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Collaborators)
	assert.Equal(t, []string{track.ID}, []string(stored.Tracks))
	assert.Equal(t, []string{nft.ID}, []string(stored.NFTs))
}

// Concurrent additions to one project serialize on the project row, so the
// contribution ceiling holds.
func TestIntegration_ConcurrentCollaboratorsRespectCeiling(t *testing.T) {
	db := startDatabase(t)
	svc := services.New(store.New(db))
	ctx := context.Background()

	owner := identity.Identity("owner")
	_, err := svc.RegisterUser(ctx, owner, services.RegisterInput{Email: "owner@example.com"})
	require.NoError(t, err)
	p, err := svc.CreateProject(ctx, owner, services.ProjectInput{Name: "Busy"})
	require.NoError(t, err)

	const writers = 6
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.AddCollaborator(ctx, owner, p.ID, services.CollaboratorInput{
				Collaborator:           identity.Identity(fmt.Sprintf("writer-%d", i)),
				ContributionPercentage: 40,
				Role:                   "Writer",
			})
		}(i)
	}
	wg.Wait()

	collabs, err := svc.GetProjectCollaborators(ctx, p.ID)
	require.NoError(t, err)
	require.NotEmpty(t, collabs)

	total := 0
	for _, c := range collabs {
		total += c.ContributionPercentage
	}
	assert.LessOrEqual(t, total, 100)

	stored, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Collaborators, len(collabs))
}
