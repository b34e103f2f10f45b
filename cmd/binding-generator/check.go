package main

import (
	"errors"

	"github.com/spf13/cobra"

	"binding-generator/internal/config"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			diags := config.Validate(cfg)
			for _, d := range diags.All() {
				cmd.Printf("%s: %s\n", d.Severity, d)
			}

			if diags.HasErrors() {
				return errors.New("configuration is invalid")
			}

			cmd.Printf("configuration OK (%d include rules, %d doc rules)\n", len(cfg.Includes), len(cfg.Docs))

			return nil
		},
	}
}
