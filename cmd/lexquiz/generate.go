package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpaoletti/lexquiz/internal/chunker"
	"github.com/mpaoletti/lexquiz/internal/pipeline"
	"github.com/mpaoletti/lexquiz/internal/textsource"
	"github.com/mpaoletti/lexquiz/internal/translator"
)

var (
	flagGenOutput    string
	flagChunkSize    int
	flagOverlap      int
	flagTranslate    bool
	flagTranslateURL string
)

var generateCmd = &cobra.Command{
	Use:   "generate <source.txt>",
	Short: "Generate an Aiken question bank from a plain-text source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath := args[0]
		outputPath := flagGenOutput
		if outputPath == "" {
			ext := filepath.Ext(sourcePath)
			outputPath = strings.TrimSuffix(sourcePath, ext) + "_questions.txt"
		}

		client := newClient()

		// Preflight: make sure the endpoint is up before a long run.
		models, err := client.Models(cmd.Context())
		if err != nil {
			return fmt.Errorf("generation service not reachable at %s: %w", flagOllamaURL, err)
		}
		fmt.Printf("Using model %s (%d models available)\n", flagModel, len(models))

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		cfg := pipelineConfig(store)
		cfg.ChunkSize = flagChunkSize
		cfg.Overlap = flagOverlap
		if flagTranslate {
			cfg.Translator = translator.New(translator.Config{BaseURL: flagTranslateURL})
		}

		p := pipeline.New(client, cfg)
		records, stats, err := p.Generate(cmd.Context(), textsource.NewFile(sourcePath), sourcePath)
		if err != nil {
			return err
		}

		if err := pipeline.SaveBank(outputPath, records); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}

		fmt.Printf("\nGenerated %d questions -> %s\n", len(records), outputPath)
		fmt.Printf("Chunks: %d processed, %d skipped, %d failed (of %d)\n",
			stats.ChunksProcessed, stats.ChunksSkipped, stats.ChunksFailed, stats.ChunksTotal)
		fmt.Printf("Success rate: %.1f%% (%d attempts)\n", stats.SuccessRate(), stats.Attempts)
		fmt.Printf("Duration: %s\n", stats.Duration.Round(time.Second))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&flagGenOutput, "output", "o", "",
		"output bank path (default <source>_questions.txt)")
	generateCmd.Flags().IntVar(&flagChunkSize, "chunk-size", chunker.DefaultChunkSize,
		"chunk size in characters")
	generateCmd.Flags().IntVar(&flagOverlap, "overlap", chunker.DefaultOverlap,
		"overlap in characters between consecutive chunks")
	generateCmd.Flags().BoolVar(&flagTranslate, "translate", false,
		"translate generated questions to Italian")
	generateCmd.Flags().StringVar(&flagTranslateURL, "translate-url", translator.DefaultBaseURL,
		"LibreTranslate-compatible endpoint URL")
	rootCmd.AddCommand(generateCmd)
}
