package config

import (
	"os"
	"strings"
)

// StoreType selects where controlled lists come from and whether accepted
// submissions are persisted.
type StoreType string

const (
	// FixtureStore serves controlled lists from built-in seed data or a YAML
	// fixture file and does not persist submissions.
	FixtureStore StoreType = "fixtures"
	// PostgresStore serves controlled lists from PostgreSQL and persists
	// accepted submissions there.
	PostgresStore StoreType = "postgres"
)

// Config holds the runtime configuration resolved from the environment.
type Config struct {
	Type             StoreType
	ConnectionString string
	FixturePath      string
}

// GetStoreConfig returns the store configuration based on environment variables
func GetStoreConfig() Config {
	storeType := os.Getenv("ONBOARD_STORE_TYPE")
	if storeType == "" {
		storeType = string(FixtureStore)
	}

	config := Config{}

	switch strings.ToLower(storeType) {
	case "postgresql", "postgres", "db":
		config.Type = PostgresStore
		config.ConnectionString = getConnectionString()
	case "fixtures", "fixture", "seed":
		config.Type = FixtureStore
		config.FixturePath = getFixturePath()
	default:
		// Default to fixtures if unknown type
		config.Type = FixtureStore
		config.FixturePath = getFixturePath()
	}

	return config
}

// getFixturePath returns the path to a YAML controlled-list fixture, empty
// when the built-in seed data should be used
func getFixturePath() string {
	return os.Getenv("ONBOARD_FIXTURE_PATH")
}

// getConnectionString returns the database connection string
func getConnectionString() string {
	connStr := os.Getenv("DB_CONN_STRING")
	if connStr == "" {
		// Default connection string for local development
		return "postgres://localhost:5432/postgres?sslmode=disable"
	}
	return connStr
}

// IsFixtureMode returns true if running without a database
func IsFixtureMode() bool {
	return GetStoreConfig().Type == FixtureStore
}
