// Package storage provides SQLite-based persistence for pipeline runs and
// generated questions.
//
// The storage layer manages:
//   - Run metadata: which pass ran, with what configuration, and its outcome
//   - Question records produced by each run, in bank order
//
// # Database Schema
//
// Tables:
//   - runs: one row per pipeline execution (kind, source, chunking
//     configuration, counters, duration)
//   - questions: the records a run produced, keyed by (run_id, position)
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStore("~/.lexquiz/lexquiz.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	run := &storage.Run{Kind: storage.RunKindGenerate, SourcePath: "codice.txt"}
//	if err := store.CreateRun(ctx, run); err != nil {
//	    return err
//	}
//	if err := store.InsertQuestions(ctx, run.ID, records); err != nil {
//	    return err
//	}
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// CGO Build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires a C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo"
//
// Pure Go Build (default, or purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build
package storage
