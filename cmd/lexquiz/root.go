package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/internal/pipeline"
	"github.com/mpaoletti/lexquiz/internal/storage"
)

var (
	version = "dev"

	flagDBPath    string
	flagOllamaURL string
	flagModel     string
	flagWorkers   int
	flagNoStore   bool
)

var rootCmd = &cobra.Command{
	Use:   "lexquiz",
	Short: "Generate and refine multiple-choice question banks from legal texts",
	Long: `lexquiz turns plain-text legal sources into Aiken-format question banks
through a local Ollama model, validates them in a second passage and
converts them to GIFT format with per-option feedback cited from the
source text.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("LEXQUIZ_DB_PATH", ""),
		"database directory (default ~/.lexquiz)")
	rootCmd.PersistentFlags().StringVar(&flagOllamaURL, "ollama-url", envOr("LEXQUIZ_OLLAMA_URL", ollama.DefaultBaseURL),
		"Ollama endpoint URL")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", envOr("LEXQUIZ_MODEL", ollama.DefaultModel),
		"model name")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0,
		"concurrent model calls (default: number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false,
		"skip persisting runs to the database")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newClient builds the generation client from the persistent flags.
func newClient() *ollama.Client {
	return ollama.New(ollama.Config{
		BaseURL:   flagOllamaURL,
		Model:     flagModel,
		CacheSize: 256,
	})
}

// openStore opens the run database, or returns nil when persistence is
// disabled.
func openStore() (*storage.SQLiteStore, error) {
	if flagNoStore {
		return nil, nil
	}

	dir := flagDBPath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".lexquiz")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	return storage.NewSQLiteStore(filepath.Join(dir, "lexquiz.db"))
}

// pipelineConfig assembles the common pipeline configuration. A nil store is
// passed through as disabled persistence.
func pipelineConfig(store *storage.SQLiteStore) pipeline.Config {
	cfg := pipeline.Config{
		Workers: flagWorkers,
		Model:   flagModel,
		Overlap: -1,
	}
	if store != nil {
		cfg.Store = store
	}
	return cfg
}
