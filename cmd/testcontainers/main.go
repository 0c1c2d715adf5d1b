package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// containers started for a local development session
type containers struct {
	network    *testcontainers.DockerNetwork
	db         testcontainers.Container
	authorizer testcontainers.Container
}

func (c *containers) terminate(ctx context.Context) {
	if c.authorizer != nil {
		if err := c.authorizer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate Authorizer: %v\n", err)
		}
	}
	if c.db != nil {
		if err := c.db.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate database: %v\n", err)
		}
	}
	if c.network != nil {
		if err := c.network.Remove(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove network: %v\n", err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// dbContainerEnv returns the image defaults and init environment for a
// database server of dbType.
func dbContainerEnv(dbType string) (image, port string, env map[string]string) {
	switch dbType {
	case "postgres", "postgresql":
		return "postgres:17", "5432", map[string]string{
			"POSTGRES_DB":       os.Getenv("DB_DATABASE"),
			"POSTGRES_USER":     os.Getenv("DB_USER"),
			"POSTGRES_PASSWORD": os.Getenv("DB_PASSWORD"),
		}
	default:
		return "mariadb:11", "3306", map[string]string{
			"MARIADB_DATABASE":      os.Getenv("DB_DATABASE"),
			"MARIADB_USER":          os.Getenv("DB_USER"),
			"MARIADB_PASSWORD":      os.Getenv("DB_PASSWORD"),
			"MARIADB_ROOT_PASSWORD": getenv("DB_ROOT_PASSWORD", os.Getenv("DB_PASSWORD")),
		}
	}
}

func start(ctx context.Context) (*containers, error) {
	tc := &containers{}

	nw, err := network.New(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to create network: %w", err)
	}
	tc.network = nw

	dbType := getenv("DB_TYPE", "mariadb")
	image, port, env := dbContainerEnv(dbType)
	tcpDBPort, err := nat.NewPort("tcp", port)
	if err != nil {
		return tc, err
	}

	tc.db, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          getenv("DB_IMAGE", image),
			ExposedPorts:   []string{string(tcpDBPort)},
			Env:            env,
			WaitingFor:     wait.ForListeningPort(tcpDBPort).WithStartupTimeout(90 * time.Second),
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {"db"}},
		},
		Started: true,
	})
	if err != nil {
		return tc, fmt.Errorf("failed to start database: %w", err)
	}

	dbHost, _ := tc.db.Host(ctx)
	dbPort, _ := tc.db.MappedPort(ctx, tcpDBPort)
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\n", dbType, dbHost, dbPort.Port())

	authzImage := os.Getenv("AUTHZ_IMAGE")
	if authzImage == "" {
		return tc, nil
	}

	tcpAuthzPort, err := nat.NewPort("tcp", getenv("AUTHZ_PORT", "8080"))
	if err != nil {
		return tc, err
	}
	tc.authorizer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        authzImage,
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
				"PORT":          tcpAuthzPort.Port(),
				"DATABASE_TYPE": "sqlite",
				"DATABASE_URL":  "authorizer.db",
				"ADMIN_SECRET":  os.Getenv("AUTHZ_ADMIN_SECRET"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		return tc, fmt.Errorf("failed to start Authorizer: %w", err)
	}

	authzHost, _ := tc.authorizer.Host(ctx)
	authzPort, _ := tc.authorizer.MappedPort(ctx, tcpAuthzPort)
	fmt.Printf("AUTHZ_URL=http://%s:%s\n", authzHost, authzPort.Port())

	return tc, nil
}

func main() {
	var envFilename string

	cmd := &cobra.Command{
		Use:   "testcontainers [-f ENV_FILE_PATH]",
		Short: "Run a database, and optionally an Authorizer, for local development",
		Long: `Starts the database server named by DB_TYPE (mariadb or postgres) and,
when AUTHZ_IMAGE is set, an Authorizer service. The connection settings are
printed as environment assignments. Containers stop on SIGINT or SIGTERM.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFilename != "" {
				if err := godotenv.Load(envFilename); err != nil {
					return fmt.Errorf("failed to load environment variables: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tc, err := start(ctx)
			defer tc.terminate(context.Background())
			if err != nil {
				return err
			}

			<-ctx.Done()
			fmt.Println("terminating test containers...")
			return nil
		},
	}
	cmd.Flags().StringVarP(&envFilename, "file", "f", "", "path to the .env file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
