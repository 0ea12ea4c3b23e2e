// Package store persists accepted submissions and serves controlled lists
// from PostgreSQL for deployments that manage reference data in a database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"entity-onboard/internal/refdata"
	"entity-onboard/internal/serialize"
)

// Store wraps the database connection for all persistence operations.
type Store struct {
	db *sqlx.DB
}

// Open connects to PostgreSQL and pings the server.
func Open(connString string) (*Store, error) {
	db, err := sqlx.Connect("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection, mainly for tests.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS controlled_lists (
	list_name   TEXT PRIMARY KEY,
	pinned_code TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS controlled_list_entries (
	list_name  TEXT    NOT NULL REFERENCES controlled_lists(list_name),
	code       TEXT    NOT NULL,
	label      TEXT    NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	sort_order INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (list_name, code)
);

CREATE TABLE IF NOT EXISTS submissions (
	submission_id UUID        PRIMARY KEY,
	entity_type   TEXT        NOT NULL,
	entity_name   TEXT        NOT NULL,
	output_record JSONB       NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS submission_attachments (
	submission_id     UUID    NOT NULL REFERENCES submissions(submission_id),
	position          INTEGER NOT NULL,
	filename          TEXT    NOT NULL,
	original_filename TEXT    NOT NULL,
	PRIMARY KEY (submission_id, position)
);
`

// InitDB creates the schema if it does not exist yet.
func (s *Store) InitDB(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SeedLists upserts the given controlled lists and their entries.
func (s *Store) SeedLists(ctx context.Context, lists []refdata.SeedList) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, list := range lists {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO controlled_lists (list_name, pinned_code)
			VALUES ($1, $2)
			ON CONFLICT (list_name) DO UPDATE SET pinned_code = EXCLUDED.pinned_code`,
			list.Name, list.Pinned)
		if err != nil {
			return fmt.Errorf("failed to upsert list %s: %w", list.Name, err)
		}
		for _, e := range list.Entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO controlled_list_entries (list_name, code, label, is_active, sort_order)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (list_name, code) DO UPDATE
				SET label = EXCLUDED.label, is_active = EXCLUDED.is_active, sort_order = EXCLUDED.sort_order`,
				list.Name, e.Code, e.Label, e.IsActive, e.SortOrder)
			if err != nil {
				return fmt.Errorf("failed to upsert entry %s/%s: %w", list.Name, e.Code, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// ListEntries returns the entries of one controlled list in stored order.
func (s *Store) ListEntries(ctx context.Context, listName string) ([]refdata.Entry, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM controlled_lists WHERE list_name = $1)`, listName)
	if err != nil {
		return nil, fmt.Errorf("failed to check list %s: %w", listName, err)
	}
	if !exists {
		return nil, &refdata.UnknownListError{List: listName}
	}

	var entries []refdata.Entry
	err = s.db.SelectContext(ctx, &entries, `
		SELECT code, label, is_active, sort_order
		FROM controlled_list_entries
		WHERE list_name = $1
		ORDER BY sort_order, label`, listName)
	if err != nil {
		return nil, fmt.Errorf("failed to load list %s: %w", listName, err)
	}
	return entries, nil
}

type listRow struct {
	ListName   string `db:"list_name"`
	PinnedCode string `db:"pinned_code"`
}

// LoadRegistry builds an in-memory registry from every stored list.
func (s *Store) LoadRegistry(ctx context.Context) (*refdata.Registry, error) {
	var lists []listRow
	err := s.db.SelectContext(ctx, &lists,
		`SELECT list_name, pinned_code FROM controlled_lists ORDER BY list_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to load controlled lists: %w", err)
	}

	reg := refdata.NewRegistry()
	for _, list := range lists {
		entries, err := s.ListEntries(ctx, list.ListName)
		if err != nil {
			return nil, err
		}
		reg.Register(list.ListName, entries, list.PinnedCode)
	}
	return reg, nil
}

// Submission is one persisted accepted submission.
type Submission struct {
	SubmissionID string          `json:"submission_id" db:"submission_id"`
	EntityType   string          `json:"entity_type" db:"entity_type"`
	EntityName   string          `json:"entity_name" db:"entity_name"`
	OutputRecord json.RawMessage `json:"output_record" db:"output_record"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`

	Attachments []SubmissionAttachment `json:"attachments"`
}

// SubmissionAttachment is one manifest row of a persisted submission.
type SubmissionAttachment struct {
	SubmissionID     string `json:"submission_id" db:"submission_id"`
	Position         int    `json:"position" db:"position"`
	Filename         string `json:"filename" db:"filename"`
	OriginalFilename string `json:"original_filename" db:"original_filename"`
}

// SaveSubmission stores an accepted submission plus its attachment manifest
// and returns the generated submission id.
func (s *Store) SaveSubmission(ctx context.Context, entityType, entityName string, record *serialize.OutputRecord, manifest serialize.Manifest) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode output record: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (submission_id, entity_type, entity_name, output_record)
		VALUES ($1, $2, $3, $4)`,
		id, entityType, entityName, payload)
	if err != nil {
		return "", fmt.Errorf("failed to insert submission: %w", err)
	}

	for i, att := range manifest {
		original := ""
		if att.File != nil {
			original = att.File.Filename
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO submission_attachments (submission_id, position, filename, original_filename)
			VALUES ($1, $2, $3, $4)`,
			id, i, att.Filename, original)
		if err != nil {
			return "", fmt.Errorf("failed to insert attachment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit submission: %w", err)
	}
	return id, nil
}

// GetSubmission fetches one submission with its attachments.
func (s *Store) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	var sub Submission
	err := s.db.GetContext(ctx, &sub, `
		SELECT submission_id, entity_type, entity_name, output_record, created_at
		FROM submissions
		WHERE submission_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	err = s.db.SelectContext(ctx, &sub.Attachments, `
		SELECT submission_id, position, filename, original_filename
		FROM submission_attachments
		WHERE submission_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}
	return &sub, nil
}
