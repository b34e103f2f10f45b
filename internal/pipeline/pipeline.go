// Package pipeline wires the generator stages together: read class
// inputs, gather bound classes into a sealed table, resolve a binding plan,
// render it and write the outputs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"binding-generator/internal/classfile"
	"binding-generator/internal/config"
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/gen"
	"binding-generator/internal/jvm"
	"binding-generator/internal/model"
	"binding-generator/internal/plan"
)

// ErrStrict is returned in strict mode when any error diagnostic was
// recorded. The result is still returned alongside it.
var ErrStrict = errors.New("generation finished with errors")

// Options controls one run.
type Options struct {
	// Strict fails the run on any error diagnostic.
	Strict bool
	// DryRun renders outputs without writing them.
	DryRun bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Result summarizes one run.
type Result struct {
	// Inputs is the number of decoded classes.
	Inputs int
	// Bound is the number of classes registered in the table.
	Bound       int
	Plan        *plan.ResolvedBindingPlan
	Files       []gen.GeneratedFile
	Written     int
	Diagnostics diagnostic.Diagnostics
}

// Run executes the whole pipeline for cfg.
func Run(ctx context.Context, cfg *config.File, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{}

	validation := config.Validate(cfg)
	res.Diagnostics.Merge(*validation)

	if validation.HasErrors() {
		return res, fmt.Errorf("invalid configuration: %w", validation.Error())
	}

	classes, err := classfile.ReadInputs(ctx, cfg.Sources.Inputs)
	if err != nil {
		return res, fmt.Errorf("reading inputs: %w", err)
	}

	res.Inputs = len(classes)
	logger.Info("inputs decoded", "classes", len(classes), "inputs", len(cfg.Sources.Inputs))

	table, gathered := Gather(classes, cfg, logger)
	res.Bound = table.Len()
	res.Diagnostics.Merge(gathered)

	p, err := plan.NewResolver(table, ResolutionConfig(cfg, logger)).Resolve()
	if err != nil {
		return res, fmt.Errorf("resolving bindings: %w", err)
	}

	res.Plan = p
	res.Diagnostics.Merge(p.Diagnostics)

	files, err := gen.NewGenerator(GeneratorConfig(cfg, logger)).Generate(p)
	if err != nil {
		return res, fmt.Errorf("generating: %w", err)
	}

	res.Files = files

	if !opts.DryRun {
		res.Written, err = gen.WriteFiles(files)
		if err != nil {
			return res, err
		}
	}

	LogDiagnostics(logger, &res.Diagnostics)
	logger.Info("generation complete",
		"bound", res.Bound,
		"emitted", len(p.Classes),
		"files", len(files),
		"written", res.Written,
		"errors", len(res.Diagnostics.Errors),
		"warnings", len(res.Diagnostics.Warnings))

	if opts.Strict && res.Diagnostics.HasErrors() {
		return res, ErrStrict
	}

	return res, nil
}

// Gather registers every class whose configuration binds it and seals the
// table. Registration failures skip the class and are reported.
func Gather(classes []*jvm.Class, cfg *config.File, logger *slog.Logger) (*model.Table, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	table := model.NewTable()

	for _, class := range classes {
		cc := cfg.ClassConfig(class.Path)
		if !cc.Bind {
			continue
		}

		if _, err := table.Register(class, cc); err != nil {
			code := diagnostic.CodeIdentifier

			var dup *model.DuplicateError
			if errors.As(err, &dup) {
				code = diagnostic.CodeDuplicateNativePath
			}

			diags.AddError(code, err.Error(), class.Path, "")

			continue
		}

		logger.Debug("class bound", "class", class.Path, "proxy", cc.Proxy)
	}

	table.Seal()

	return table, diags
}

// ResolutionConfig derives the resolver configuration from cfg.
func ResolutionConfig(cfg *config.File, logger *slog.Logger) plan.ResolutionConfig {
	rc := plan.DefaultConfig()
	rc.Logger = logger

	if cfg.Proxy.Package != "" {
		rc.ProxyPackage = cfg.Proxy.Package
	}

	return rc
}

// GeneratorConfig derives the generator configuration from cfg.
func GeneratorConfig(cfg *config.File, logger *slog.Logger) gen.GeneratorConfig {
	gc := gen.DefaultGeneratorConfig()
	gc.RustOutput = cfg.Sources.Output
	gc.ProxyOutput = cfg.Proxy.Output
	gc.Logger = logger

	return gc
}

// LogDiagnostics logs every diagnostic at its severity.
func LogDiagnostics(logger *slog.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		level := slog.LevelDebug

		switch d.Severity {
		case diagnostic.DiagnosticError:
			level = slog.LevelError
		case diagnostic.DiagnosticWarning:
			level = slog.LevelWarn
		}

		logger.Log(context.Background(), level, d.Message,
			"code", d.Code,
			"class", d.Class,
			"member", d.Member)
	}
}
