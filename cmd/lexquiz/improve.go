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

var flagImproveOutput string

var improveCmd = &cobra.Command{
	Use:   "improve <bank.txt> <source.txt>",
	Short: "Validate a question bank against its source and improve flawed questions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bankPath, sourcePath := args[0], args[1]
		outputPath := flagImproveOutput
		if outputPath == "" {
			ext := filepath.Ext(bankPath)
			outputPath = strings.TrimSuffix(bankPath, ext) + "_improved.txt"
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

		p := pipeline.New(newClient(), pipelineConfig(store))
		improved, stats, err := p.Improve(cmd.Context(), records, sourceText, bankPath)
		if err != nil {
			return err
		}

		if err := pipeline.SaveBank(outputPath, improved); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}

		fmt.Printf("Improved bank written to %s (%d questions, %s)\n",
			outputPath, len(improved), stats.Duration.Round(time.Second))
		return nil
	},
}

func init() {
	improveCmd.Flags().StringVarP(&flagImproveOutput, "output", "o", "",
		"output bank path (default <bank>_improved.txt)")
	rootCmd.AddCommand(improveCmd)
}
