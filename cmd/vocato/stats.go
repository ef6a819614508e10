package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocato/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the study statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				summary := statistics.NewReporter(deps.words, deps.progress, deps.clock).Summary(cmd.Context())
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

func printSummary(out io.Writer, summary statistics.Summary) {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintln(out, "Today")
	_, _ = fmt.Fprintf(out, "  Reviewed: %d words\n", summary.TodayCount)
	_, _ = fmt.Fprintf(out, "  Accuracy: %.0f%%\n", summary.Accuracy*100)
	_, _ = fmt.Fprintf(out, "  Study time: %s\n", time.Duration(summary.StudySecondsToday)*time.Second)

	_, _ = bold.Fprintln(out, "Words")
	_, _ = fmt.Fprintf(out, "  Total: %d, due: %d, favorites: %d, mastered: %d\n",
		summary.TotalWords, summary.DueWords, summary.FavoriteWords, summary.MasteredWords)
	for stage, count := range summary.StageCounts {
		_, _ = fmt.Fprintf(out, "  Stage %d: %d\n", stage, count)
	}

	if len(summary.RecentWords) == 0 {
		return
	}
	_, _ = bold.Fprintln(out, "Recently studied")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range summary.RecentWords {
		nextReview := ""
		if item.NextReviewDate != nil {
			nextReview = item.NextReviewDate.Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(w, "  %s\t%s\tnext %s\n", item.Term, item.Meaning, nextReview)
	}
	_ = w.Flush()
}
