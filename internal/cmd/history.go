package cmd

import (
	"fmt"
	"strconv"

	"github.com/doriginvision/hanzi-tidy/internal/log"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent rename batches",
		Long: `List the rename batches recorded in the operation log, newest first.

Each row shows when the batch ran, the directory it renamed under, how many
entries were renamed or failed, and the log file holding the details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of batches to list (0 for all)")
	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	summaries, err := log.GetSessionSummaries(limit)
	if err != nil {
		return fmt.Errorf("failed to read log sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No rename batches recorded.")
		return nil
	}

	table := newTable(out, "When", "Root", "Renamed", "Failed", "Log")
	for _, s := range summaries {
		meta := s.Session.Metadata
		table.Append([]string{
			s.RelativeTime,
			meta.Root,
			strconv.Itoa(meta.SuccessfulOps),
			strconv.Itoa(meta.FailedOps),
			s.FilePath,
		})
	}
	table.Render()
	return nil
}
