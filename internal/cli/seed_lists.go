package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"entity-onboard/internal/config"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/store"
)

// SeedListsCommand creates the seed-lists command
func SeedListsCommand() *cobra.Command {
	var (
		dbConnStr   string
		fixturePath string
		initSchema  bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "seed-lists",
		Short: "Seed the controlled lists into the database",
		Long: `Seed the controlled value lists (countries, dialing codes, titles,
industries, sources of funds) into PostgreSQL.

By default the built-in seed data is used; pass --fixture to load a YAML
fixture file instead.

Examples:
  # Create the schema and seed the built-in lists
  ./entity-onboard seed-lists --init

  # Seed from a YAML fixture
  ./entity-onboard seed-lists --fixture=lists.yaml

  # Show what would be seeded without touching the database
  ./entity-onboard seed-lists --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedLists(dbConnStr, fixturePath, initSchema, dryRun)
		},
	}

	cmd.Flags().StringVar(&dbConnStr, "db", "", "Database connection string (overrides env var)")
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "YAML fixture file to seed from")
	cmd.Flags().BoolVar(&initSchema, "init", false, "Create the schema before seeding")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be seeded without making changes")

	return cmd
}

func runSeedLists(dbConnStr, fixturePath string, initSchema, dryRun bool) error {
	ctx := context.Background()

	lists := refdata.SeedLists()
	if fixturePath != "" {
		loaded, err := refdata.LoadSeedFile(fixturePath)
		if err != nil {
			return fmt.Errorf("failed to load fixture: %w", err)
		}
		lists = loaded
	}

	if dryRun {
		fmt.Println("Dry run, no changes will be made. Lists to seed:")
		for _, list := range lists {
			fmt.Printf("  %-16s %d entries (pinned: %s)\n", list.Name, len(list.Entries), list.Pinned)
		}
		return nil
	}

	if dbConnStr == "" {
		cfg := config.GetStoreConfig()
		dbConnStr = cfg.ConnectionString
		if dbConnStr == "" {
			return fmt.Errorf("database connection string not provided. Set DB_CONN_STRING environment variable or use --db flag")
		}
	}

	fmt.Printf("Database: %s\n", maskConnectionString(dbConnStr))

	s, err := store.Open(dbConnStr)
	if err != nil {
		return err
	}
	defer s.Close()

	if initSchema {
		if err := s.InitDB(ctx); err != nil {
			return err
		}
		fmt.Println("Schema initialized.")
	}

	if err := s.SeedLists(ctx, lists); err != nil {
		return err
	}
	for _, list := range lists {
		fmt.Printf("Seeded %-16s %d entries\n", list.Name, len(list.Entries))
	}
	return nil
}

// maskConnectionString hides credentials when echoing the connection target.
func maskConnectionString(connStr string) string {
	at := strings.LastIndex(connStr, "@")
	if at < 0 {
		return connStr
	}
	scheme := ""
	if i := strings.Index(connStr, "://"); i >= 0 {
		scheme = connStr[:i+3]
	}
	return scheme + "***" + connStr[at:]
}
