package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Run operations

// CreateRun inserts a new run row and fills in its ID and creation time.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO runs (kind, source_path, model, chunk_size, overlap, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := s.db.ExecContext(ctx, query,
		string(run.Kind), run.SourcePath, run.Model, run.ChunkSize, run.Overlap, now)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = id
	run.CreatedAt = now
	return nil
}

// FinishRun records the outcome counters and duration of a completed run.
func (s *SQLiteStore) FinishRun(ctx context.Context, run *Run) error {
	query := `
		UPDATE runs
		SET chunks_processed = ?, questions_generated = ?, attempts = ?, duration_ms = ?
		WHERE id = ?
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ChunksProcessed, run.QuestionsGenerated, run.Attempts,
		run.Duration.Milliseconds(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID int64) (*Run, error) {
	query := `
		SELECT id, kind, source_path, model, chunk_size, overlap,
		       chunks_processed, questions_generated, attempts, duration_ms, created_at
		FROM runs
		WHERE id = ?
	`
	run, err := scanRun(s.db.QueryRowContext(ctx, query, runID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `
		SELECT id, kind, source_path, model, chunk_size, overlap,
		       chunks_processed, questions_generated, attempts, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := make([]*Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var kind string
	var durationMS int64
	err := row.Scan(
		&run.ID, &kind, &run.SourcePath, &run.Model, &run.ChunkSize, &run.Overlap,
		&run.ChunksProcessed, &run.QuestionsGenerated, &run.Attempts,
		&durationMS, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Kind = RunKind(kind)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

// Question operations

// InsertQuestions stores the records of a run in one transaction, preserving
// bank order through the position column. Incomplete records are rejected
// before anything is written.
func (s *SQLiteStore) InsertQuestions(ctx context.Context, runID int64, records []types.QuestionRecord) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO questions (run_id, position, question, option_a, option_b, option_c, option_d, correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	for i, rec := range records {
		_, err := tx.ExecContext(ctx, query,
			runID, i, rec.Question,
			rec.Options[0], rec.Options[1], rec.Options[2], rec.Options[3],
			string(rec.Correct), now)
		if err != nil {
			return fmt.Errorf("failed to insert question %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListQuestionsByRun returns a run's records in bank order.
func (s *SQLiteStore) ListQuestionsByRun(ctx context.Context, runID int64) ([]types.QuestionRecord, error) {
	query := `
		SELECT question, option_a, option_b, option_c, option_d, correct
		FROM questions
		WHERE run_id = ?
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]types.QuestionRecord, 0)
	for rows.Next() {
		var rec types.QuestionRecord
		var correct string
		rec.Options = make([]string, types.OptionCount)
		err := rows.Scan(&rec.Question,
			&rec.Options[0], &rec.Options[1], &rec.Options[2], &rec.Options[3],
			&correct)
		if err != nil {
			return nil, err
		}
		rec.Correct = types.Letter(correct)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Status operations

// GetStatus reports aggregate statistics across all stored runs.
func (s *SQLiteStore) GetStatus(ctx context.Context) (*Status, error) {
	status := &Status{BuildMode: BuildMode}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&status.RunsCount); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&status.QuestionsCount); err != nil {
		return nil, err
	}

	var lastRunAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1").Scan(&lastRunAt)
	if err == nil {
		status.LastRunAt = lastRunAt
	}

	var pageCount, pageSize int
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	return status, nil
}
