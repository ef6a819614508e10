package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocato/internal/transfer"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import words from a CSV or XLSX file with term, meaning, memo, and synonyms columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				result, err := transfer.Import(cmd.Context(), deps.service(), args[0])
				if err != nil {
					return fmt.Errorf("transfer.Import(%s) > %w", args[0], err)
				}

				out := cmd.OutOrStdout()
				for _, rowErr := range result.Errors {
					_, _ = fmt.Fprintf(out, "skipped %v\n", rowErr)
				}
				_, _ = fmt.Fprintf(out, "Imported %d words (%d skipped, %d errors)\n", result.Imported, result.Skipped, len(result.Errors))
				return nil
			})
		},
	}
}

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export every word to a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDependencies(cmd, func(deps *dependencies) error {
				count, err := transfer.Export(cmd.Context(), deps.words, args[0])
				if err != nil {
					return fmt.Errorf("transfer.Export(%s) > %w", args[0], err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", count, args[0])
				return nil
			})
		},
	}
}
