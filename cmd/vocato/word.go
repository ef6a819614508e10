package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocato/internal/word"
)

func newWordCommand() *cobra.Command {
	wordCommand := &cobra.Command{
		Use:   "word",
		Short: "Manage the word list",
	}

	wordCommand.AddCommand(
		newWordAddCommand(),
		newWordListCommand(),
		newWordDeleteCommand(),
		newWordToggleCommand("favorite", "Toggle the favorite flag of a word", (*word.Service).ToggleFavorite),
		newWordToggleCommand("master", "Toggle the mastered flag of a word", (*word.Service).ToggleMastered),
	)
	return wordCommand
}

// runWithDependencies opens the stores, runs fn, and closes them again.
func runWithDependencies(cmd *cobra.Command, fn func(deps *dependencies) error) error {
	deps, err := openDependencies(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			slog.Default().Warn("failed to close the database", slog.Any("error", err))
		}
	}()
	return fn(deps)
}

func newWordAddCommand() *cobra.Command {
	var memo, synonyms string
	command := &cobra.Command{
		Use:   "add TERM MEANING",
		Short: "Add a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				w, err := deps.service().Add(cmd.Context(), word.Input{
					Term:     args[0],
					Meaning:  args[1],
					Memo:     memo,
					Synonyms: synonyms,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", w.Term, w.ID)
				return nil
			})
		},
	}
	command.Flags().StringVar(&memo, "memo", "", "memo shown with the meaning")
	command.Flags().StringVar(&synonyms, "synonyms", "", "synonyms shown with the meaning")
	return command
}

func newWordListCommand() *cobra.Command {
	var group, search string
	var favorites, dueOnly bool
	command := &cobra.Command{
		Use:   "list",
		Short: "List words, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedGroup, err := word.ParseGroup(group)
			if err != nil {
				return err
			}
			return runWithDependencies(cmd, func(deps *dependencies) error {
				filter := word.Filter{
					Group:            parsedGroup,
					IncludeFavorites: favorites,
					Search:           search,
				}
				if dueOnly {
					now := deps.clock.Now()
					filter.DueBy = &now
				}
				words, err := deps.service().List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				printWords(cmd.OutOrStdout(), words)
				return nil
			})
		},
	}
	command.Flags().StringVar(&group, "group", string(word.GroupAll), "word group to list")
	command.Flags().StringVar(&search, "search", "", "only words whose term or meaning contains this text")
	command.Flags().BoolVar(&favorites, "favorites", false, "also include favorite words outside the group")
	command.Flags().BoolVar(&dueOnly, "due", false, "only words that are due now")
	return command
}

func printWords(out io.Writer, words []*word.Word) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTERM\tMEANING\tSTAGE\tNEXT REVIEW\tFLAGS")
	for _, item := range words {
		nextReview := "now"
		if item.NextReviewDate != nil {
			nextReview = item.NextReviewDate.Format(time.DateOnly)
		}
		flags := ""
		if item.IsFavorite {
			flags += "★"
		}
		if item.IsMastered {
			flags += "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", item.ID, item.Term, item.Meaning, item.SRSStage, nextReview, flags)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "%d words\n", len(words))
}

func newWordDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				if err := deps.service().Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

type toggleFunc func(s *word.Service, ctx context.Context, id string) (*word.Word, error)

func newWordToggleCommand(use, short string, toggle toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				w, err := toggle(deps.service(), cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: favorite=%t mastered=%t\n", w.Term, w.IsFavorite, w.IsMastered)
				return nil
			})
		},
	}
}
