package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
)

// NewMigrateKeysCommand creates the migrate-keys command. Every collection
// keyed by ordinal is rewritten to padded keys; a second run writes nothing.
func NewMigrateKeysCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate-keys",
		Short:         "Rewrite unpadded ordinal document keys to their padded form",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := rootOpts.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.Close()

			var results []reconcile.MigrationResult
			failures := 0
			for _, name := range reconcile.OrdinalKeyed(ws.collections()) {
				res, err := ws.reconciler.MigrateKeys(ctx, name)
				if err != nil {
					slog.Error(LogMsgKeyMigrationFailed, "collection", name, "error", err)
					failures++
					continue
				}
				results = append(results, res)
			}

			if err := printMigrationResults(cmd, rootOpts.Format, results); err != nil {
				return err
			}
			if failures > 0 {
				return fmt.Errorf(ErrMsgMigrationFailed, failures)
			}
			return nil
		},
	}
}

func printMigrationResults(cmd *cobra.Command, format string, results []reconcile.MigrationResult) error {
	out := cmd.OutOrStdout()
	if format == FormatJSON {
		if results == nil {
			results = []reconcile.MigrationResult{}
		}
		return writeJSON(out, results)
	}

	warnings := 0
	fmt.Fprintf(out, migrateRowFormat, "COLLECTION", "MOVED", "DEDUPLICATED")
	for _, r := range results {
		fmt.Fprintf(out, migrateRowFormat, r.Collection, strconv.Itoa(r.Moved), strconv.Itoa(r.Deduplicated))
		warnings += len(r.Warnings)
	}
	if warnings > 0 {
		fmt.Fprintf(out, MsgWarningsFound, warnings)
	}
	return nil
}
