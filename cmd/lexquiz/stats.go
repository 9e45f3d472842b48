package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored runs and aggregate question statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("stats requires the database; remove --no-store")
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Runs:      %d\n", status.RunsCount)
		fmt.Printf("Questions: %d\n", status.QuestionsCount)
		if !status.LastRunAt.IsZero() {
			fmt.Printf("Last run:  %s\n", status.LastRunAt.Format(time.RFC3339))
		}
		fmt.Printf("Database:  %.2f MB (%s build)\n", status.DatabaseSizeMB, status.BuildMode)

		runs, err := store.ListRuns(cmd.Context(), 10)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return nil
		}

		fmt.Println("\nRecent runs:")
		for _, run := range runs {
			fmt.Printf("  #%d %-9s %-40s %4d questions  %3d attempts  %s\n",
				run.ID, run.Kind, run.SourcePath,
				run.QuestionsGenerated, run.Attempts, run.Duration.Round(time.Second))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
