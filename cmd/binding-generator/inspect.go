package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"binding-generator/internal/classfile"
	"binding-generator/internal/common"
	"binding-generator/internal/model"
	"binding-generator/internal/naming"
	"binding-generator/internal/pipeline"
	"binding-generator/internal/plan"
	"binding-generator/internal/suggest"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CLASS...",
		Short: "Dump the model and resolved plan of classes",
		Long: "Dump the decoded class, its binding configuration and its resolved plan.\n" +
			"Classes are given as paths (java/lang/String) or dotted names (java.lang.String).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger(os.Stderr, cfg.Logging, root.verbose)

			classes, err := classfile.ReadInputs(cmd.Context(), cfg.Sources.Inputs)
			if err != nil {
				return err
			}

			table, _ := pipeline.Gather(classes, cfg, logger)

			p, err := plan.NewResolver(table, pipeline.ResolutionConfig(cfg, logger)).Resolve()
			if err != nil {
				return err
			}

			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

			for _, arg := range args {
				path := strings.ReplaceAll(arg, ".", "/")

				entry, ok := table.Lookup(path)
				if !ok {
					return notBoundError(arg, table)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "== %s\n", path)
				dumper.Fdump(out, entry)
				fmt.Fprintln(out, inspectNames(entry))

				for i := range p.Classes {
					if p.Classes[i].Path == path {
						dumper.Fdump(out, p.Classes[i])
					}
				}

				for _, d := range p.Diagnostics.For(path) {
					fmt.Fprintln(out, d.String())
				}
			}

			return nil
		},
	}
}

func notBoundError(arg string, table *model.Table) error {
	bound := make([]string, 0, table.Len())
	for _, e := range table.Entries() {
		bound = append(bound, e.Class.Path)
	}

	if best, ok := common.First(suggest.Closest(arg, bound, 1)); ok {
		return fmt.Errorf("class %s is not bound by the configuration (did you mean %s?)", arg, best)
	}

	return fmt.Errorf("class %s is not bound by the configuration", arg)
}

// inspectNames renders the collision resolution of an entry's members.
func inspectNames(e *model.Entry) string {
	reserved := []string{naming.ClassRefName}
	if e.Config.Proxy {
		reserved = append(reserved, naming.NewProxyName)
	}

	res, err := naming.Resolve(model.SelectMethods(e.Class, e.Config), model.SelectFields(e.Class, e.Config), reserved)
	if err != nil {
		return "names: " + err.Error()
	}

	return "names:\n" + res.String()
}
