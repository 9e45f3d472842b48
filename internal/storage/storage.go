package storage

import (
	"context"
	"time"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

// RunKind identifies which pipeline pass produced a run.
type RunKind string

const (
	RunKindGenerate RunKind = "generate"
	RunKindImprove  RunKind = "improve"
	RunKindGift     RunKind = "gift"
)

// Store defines the interface for persisting runs and generated questions.
type Store interface {
	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	FinishRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, runID int64) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Question operations
	InsertQuestions(ctx context.Context, runID int64, records []types.QuestionRecord) error
	ListQuestionsByRun(ctx context.Context, runID int64) ([]types.QuestionRecord, error)

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
}

// Run records one pipeline execution with its configuration and outcome.
type Run struct {
	ID                 int64
	Kind               RunKind
	SourcePath         string
	Model              string
	ChunkSize          int
	Overlap            int
	ChunksProcessed    int
	QuestionsGenerated int
	Attempts           int
	Duration           time.Duration
	CreatedAt          time.Time
}

// Status contains aggregate statistics across all stored runs.
type Status struct {
	RunsCount      int
	QuestionsCount int
	LastRunAt      time.Time
	DatabaseSizeMB float64
	BuildMode      string
}
