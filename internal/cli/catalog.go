package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
)

// NewCatalogCommand groups the catalog subcommands
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog files",
	}
	cmd.AddCommand(NewCatalogValidateCommand(rootOpts))
	return cmd
}

type catalogReport struct {
	Path        string `json:"path"`
	Version     string `json:"version"`
	Rules       int    `json:"rules"`
	Definitions int    `json:"definitions"`
}

// NewCatalogValidateCommand checks a catalog file against the schema and the
// rule constraints without touching the store
func NewCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate [path]",
		Short:         "Validate a catalog file",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.CatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				cfg, err := rootOpts.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.CatalogPath
			}

			loader := catalog.NewLoader()
			config, err := loader.Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrMsgCatalogInvalid, err)
			}
			if err := loader.Validate(config); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgCatalogInvalid, err)
			}

			report := catalogReport{
				Path:        path,
				Version:     config.Version,
				Rules:       len(config.Rules),
				Definitions: len(config.Definitions),
			}
			out := cmd.OutOrStdout()
			if rootOpts.Format == FormatJSON {
				return writeJSON(out, report)
			}
			fmt.Fprintf(out, MsgCatalogValid, report.Path, report.Rules, report.Definitions)
			return nil
		},
	}
}
