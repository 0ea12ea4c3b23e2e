package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"entity-onboard/internal/cli"
	"entity-onboard/internal/config"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
	"entity-onboard/internal/serialize"
	"entity-onboard/internal/store"
	"entity-onboard/internal/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	command := os.Args[1]
	args := os.Args[2:]

	// Handle help and seed-lists without loading a registry
	switch command {
	case "help":
		printUsage()
		return 0
	case "seed-lists":
		cmd := cli.SeedListsCommand()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		return 0
	}

	ctx := context.Background()
	cfg := config.GetStoreConfig()
	rs := rules.Default()

	var (
		reg *refdata.Registry
		db  *store.Store
		err error
	)
	switch cfg.Type {
	case config.PostgresStore:
		db, err = store.Open(cfg.ConnectionString)
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			return 1
		}
		defer db.Close()
		reg, err = db.LoadRegistry(ctx)
		if err != nil {
			log.Printf("Failed to load controlled lists: %v", err)
			return 1
		}
	default:
		if cfg.FixturePath != "" {
			reg, err = refdata.LoadRegistryFile(cfg.FixturePath)
			if err != nil {
				log.Printf("Failed to load list fixture: %v", err)
				return 1
			}
		} else {
			reg = refdata.DefaultRegistry()
		}
	}

	switch command {
	case "init-db":
		if db == nil {
			log.Println("Error: init-db requires ONBOARD_STORE_TYPE=postgres")
			return 1
		}
		if err := db.InitDB(ctx); err != nil {
			log.Printf("Failed to initialize database: %v", err)
			return 1
		}
		fmt.Println("Database initialized successfully.")
		return 0

	case "validate":
		err = cli.RunValidate(ctx, rs, reg, args)

	case "export":
		err = cli.RunExport(ctx, rs, reg, args)

	case "list-options":
		err = cli.RunListOptions(ctx, reg, args)

	case "submit":
		err = runSubmit(ctx, rs, reg, db, args)

	case "get-submission":
		err = runGetSubmission(ctx, db, args)

	default:
		log.Printf("Unknown command: %s", command)
		printUsage()
		return 1
	}

	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}

// runSubmit validates, serializes, and persists a submission.
func runSubmit(ctx context.Context, rs *rules.Ruleset, reg *refdata.Registry, db *store.Store, args []string) error {
	if db == nil {
		return fmt.Errorf("submit requires ONBOARD_STORE_TYPE=postgres")
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: submit <submission.yaml>")
	}

	et, answers, err := cli.LoadSubmission(rs, args[0])
	if err != nil {
		return err
	}

	problems, err := validation.New(rs, reg).Validate(et, answers)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		return fmt.Errorf("submission has %d problem(s), not saving", len(problems))
	}

	record, manifest, err := serialize.New(rs, reg).Serialize(et, answers)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	entityName := ""
	if v, ok := answers.Field(rules.SectionEntityDetails, "entity_name"); ok {
		entityName = v.Text()
	}
	id, err := db.SaveSubmission(ctx, string(et), entityName, record, manifest)
	if err != nil {
		return err
	}
	fmt.Printf("Submission saved: %s\n", id)
	return nil
}

// runGetSubmission prints a stored submission as JSON.
func runGetSubmission(ctx context.Context, db *store.Store, args []string) error {
	if db == nil {
		return fmt.Errorf("get-submission requires ONBOARD_STORE_TYPE=postgres")
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: get-submission <submission-id>")
	}

	sub, err := db.GetSubmission(ctx, args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sub)
}

func printUsage() {
	fmt.Println(`Usage: entity-onboard <command> [flags]

Commands:
  validate        Validate a YAML submission file
                  --file <path>
  export          Validate then export as JSON or four-column CSV
                  --file <path> [--format json|csv] [--out <path>] [--manifest]
  list-options    Show controlled lists, their options, and entity types
                  [--list <name>]
  submit          Validate, serialize, and persist a submission (postgres mode)
  get-submission  Print a stored submission as JSON (postgres mode)
  init-db         Create the database schema (postgres mode)
  seed-lists      Seed controlled lists into the database
  help            Show this message

Environment:
  ONBOARD_STORE_TYPE    fixtures (default) or postgres
  ONBOARD_FIXTURE_PATH  YAML controlled-list fixture (fixtures mode)
  DB_CONN_STRING        PostgreSQL connection string (postgres mode)`)
}
