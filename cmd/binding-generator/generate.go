package main

import (
	"os"

	"github.com/spf13/cobra"

	"binding-generator/internal/pipeline"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate bindings and proxy companions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			opts.Logger = newLogger(os.Stderr, cfg.Logging, root.verbose)

			res, err := pipeline.Run(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}

			if opts.DryRun {
				for _, f := range res.Files {
					cmd.Println(f.Filename)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when any class or member produced an error")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "render outputs and list them without writing")

	return cmd
}
