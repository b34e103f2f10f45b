// Package main provides the CLI entrypoint for binding-generator.
//
// binding-generator reads compiled JVM classes and generates:
//   - Rust bindings: a marker type per class with cached JNI accessors for
//     its constructors, methods and fields
//   - proxy support: a Rust trait per proxied class plus a Java companion
//     class that forwards overridable methods to Rust
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"binding-generator/internal/config"
)

type rootOptions struct {
	configPath string
	verbose    int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "binding-generator",
		Short:         "Generate Rust JNI bindings from JVM class files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: search upwards for binding-generator.toml)")
	cmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newInspectCmd(opts),
	)

	return cmd
}

func (o *rootOptions) loadConfig() (*config.File, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return config.FindAndLoad(wd)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
