package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
)

// NewInitCommand creates the init command. It seeds every empty collection
// and leaves populated ones untouched.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "init",
		Short:         "Seed empty collections with the catalog defaults",
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

			results := ws.reconciler.InitializeAll(ctx, ws.collections())
			if err := printInitResults(cmd, rootOpts.Format, results); err != nil {
				return err
			}
			if failed := reconcile.FailedCollections(results); len(failed) > 0 {
				return fmt.Errorf(ErrMsgCollectionsFailed, failed)
			}
			return nil
		},
	}
}

type initRow struct {
	Collection string `json:"collection"`
	State      string `json:"state"`
	Written    int    `json:"written"`
	Error      string `json:"error,omitempty"`
}

func printInitResults(cmd *cobra.Command, format string, results map[string]reconcile.CollectionResult) error {
	rows := make([]initRow, 0, len(results))
	for name, res := range results {
		row := initRow{Collection: name, State: string(res.State), Written: res.Written}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Collection < rows[j].Collection })

	out := cmd.OutOrStdout()
	if format == FormatJSON {
		return writeJSON(out, rows)
	}

	fmt.Fprintf(out, initRowFormat, "COLLECTION", "STATE", "WRITTEN")
	for _, r := range rows {
		written := strconv.Itoa(r.Written)
		if r.Error != "" {
			written = r.Error
		}
		fmt.Fprintf(out, initRowFormat, r.Collection, r.State, written)
	}
	return nil
}
