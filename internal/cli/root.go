// Package cli implements arsenalctl, the operator tool for seeding, migrating
// and inspecting the document store without starting the server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/handler"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// RootOptions holds the global flags shared by every command
type RootOptions struct {
	Verbose     bool
	Format      string
	CatalogPath string

	// LoadConfig reads the environment. Tests replace it.
	LoadConfig func() (*config.Config, error)
}

// NewRootCommand creates the arsenalctl root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{LoadConfig: config.LoadWithoutValidation})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arsenalctl",
		Short:         "Operator tool for the arsenal sync store",
		Version:       handler.ResolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf(ErrMsgInvalidFormat, opts.Format, ValidFormats)
			}
			lc := logger.CLIConfig(opts.Verbose)
			lc.Version = handler.ResolveVersion()
			logger.InitLoggerWithWriter(lc, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "catalog file (defaults to CATALOG_PATH)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewMigrateKeysCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies the --catalog override
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadConfig, err)
	}
	if o.CatalogPath != "" {
		cfg.CatalogPath = o.CatalogPath
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
