package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/ArsenalSync_Go/internal/bootstrap"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/progress"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

type explainOptions struct {
	level      int
	currency   int
	milestones []string
	owner      string
}

// NewExplainCommand creates the explain command. It prints the unlock verdict
// for every catalog rule against a progress snapshot given on the command
// line, or read from the store with --owner.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &explainOptions{}

	cmd := &cobra.Command{
		Use:           "explain",
		Short:         "Show which towers a progress snapshot can unlock and why",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.level < 0 {
				return fmt.Errorf(ErrMsgNegativeFlag, "level")
			}
			if opts.currency < 0 {
				return fmt.Errorf(ErrMsgNegativeFlag, "currency")
			}
			ctx := cmd.Context()

			var (
				rules    []domain.UnlockRule
				snapshot = domain.ProgressSnapshot{
					CurrentLevel:        opts.level,
					CurrentCurrency:     opts.currency,
					CompletedMilestones: opts.milestones,
				}
			)
			if opts.owner == "" {
				cfg, err := rootOpts.loadConfig()
				if err != nil {
					return err
				}
				cat, err := bootstrap.LoadCatalog(ctx, cfg.CatalogPath)
				if err != nil {
					return err
				}
				rules = cat.Rules()
			} else {
				ws, err := rootOpts.openWorkspace(ctx)
				if err != nil {
					return err
				}
				defer ws.Close()

				snap, err := progress.NewDocumentProvider(ws.storage.Store).Snapshot(ctx, opts.owner)
				if err != nil {
					return fmt.Errorf(ErrMsgReadProgress+": %w", opts.owner, err)
				}
				snapshot = snap
				rules = ws.catalog.Rules()
			}

			statuses := unlock.EvaluateAll(rules, snapshot)
			out := cmd.OutOrStdout()
			if rootOpts.Format == FormatJSON {
				return writeJSON(out, statuses)
			}

			fmt.Fprintf(out, explainRowFormat, "KEY", "CATEGORY", "COST", "OK", "STATUS", "DETAIL")
			unlockable := 0
			for _, s := range statuses {
				ok := "no"
				if s.CanUnlock {
					ok = "yes"
					unlockable++
				}
				fmt.Fprintf(out, explainRowFormat, s.Key, s.Category, strconv.Itoa(s.Cost), ok, s.Status.Code, s.Status.Text)
			}
			fmt.Fprintf(out, MsgExplainSummary, unlockable, len(statuses))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.level, "level", 0, "current progress level")
	cmd.Flags().IntVar(&opts.currency, "currency", 0, "current currency balance")
	cmd.Flags().StringSliceVar(&opts.milestones, "milestone", nil, "completed milestone id (repeatable)")
	cmd.Flags().StringVar(&opts.owner, "owner", "", "read the snapshot for this owner from the store instead")
	cmd.MarkFlagsMutuallyExclusive("owner", "level")
	cmd.MarkFlagsMutuallyExclusive("owner", "currency")
	cmd.MarkFlagsMutuallyExclusive("owner", "milestone")

	return cmd
}
