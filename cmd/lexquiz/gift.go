package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpaoletti/lexquiz/internal/pipeline"
	"github.com/mpaoletti/lexquiz/internal/textsource"
)

var (
	flagGiftOutput    string
	flagGiftBatchSize int
)

var giftCmd = &cobra.Command{
	Use:   "gift <bank.txt> <source.txt>",
	Short: "Convert a question bank to GIFT format with cited per-option feedback",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bankPath, sourcePath := args[0], args[1]
		outputPath := flagGiftOutput
		if outputPath == "" {
			outputPath = strings.TrimSuffix(bankPath, filepath.Ext(bankPath)) + ".gift"
		}

		records, err := pipeline.LoadBank(bankPath)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}
		if len(records) == 0 {
			return fmt.Errorf("bank %s contains no complete records", bankPath)
		}
		fmt.Printf("Loaded %d questions from %s\n", len(records), bankPath)

		sourceText, err := textsource.NewFile(sourcePath).Text(cmd.Context())
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		cfg := pipelineConfig(store)
		cfg.BatchSize = flagGiftBatchSize

		p := pipeline.New(newClient(), cfg)
		paths, stats, err := p.ConvertGIFT(cmd.Context(), records, sourceText, outputPath)
		if err != nil {
			return err
		}

		fmt.Printf("Converted %d questions in %s:\n", stats.Questions, stats.Duration.Round(time.Second))
		for _, path := range paths {
			fmt.Printf("  %s\n", path)
		}
		return nil
	},
}

func init() {
	giftCmd.Flags().StringVarP(&flagGiftOutput, "output", "o", "",
		"output path (default <bank>.gift)")
	giftCmd.Flags().IntVar(&flagGiftBatchSize, "batch-size", pipeline.DefaultBatchSize,
		"questions per output file before splitting into numbered files")
	rootCmd.AddCommand(giftCmd)
}
