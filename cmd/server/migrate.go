package main

import (
	"fmt"
	"io"

	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/database"
	"github.com/localnerve/nftune-store/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or extend the schema of the configured database, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)
			logger.Info("migrations complete")
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the table definitions the migrations create, as sqlite DDL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSchema(cmd.OutOrStdout())
		},
	}
}

// writeSchema migrates a scratch in-memory database and prints what it
// created.
func writeSchema(w io.Writer) error {
	cfg := &config.Config{DBType: "sqlite", DBDatabase: database.MemoryDatabase, DBLogLevel: "silent"}
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	var rows []struct {
		Name string
		SQL  string
	}
	if err := db.Raw("SELECT name, sql FROM sqlite_master WHERE type IN ('table', 'index') AND sql IS NOT NULL ORDER BY type DESC, name").
		Scan(&rows).Error; err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "-- %s\n%s;\n\n", r.Name, r.SQL); err != nil {
			return err
		}
	}
	return nil
}
