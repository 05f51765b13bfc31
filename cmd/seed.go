package cmd

import (
	"fmt"

	"github.com/rajeshhitechvalley/Cfapp-sub001/configs"

	"github.com/spf13/cobra"
)

type SeedOptions struct {
	*RootOptions
	File string
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load menu, tables, tax and customers from a YAML file",
		Long: `Load demo or opening data from a YAML file. Rows that already exist
(matched by name, number or phone) are left alone, so the command can be re-run.

Example:
  pos seed --file seed/demo.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(opts.RootOptions)
			if err != nil {
				return err
			}
			if err := configs.SeedFromFile(db, opts.File); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded from %s\n", opts.File)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the seed YAML (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
