package gen

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"binding-generator/internal/common"
	"binding-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// ToolName appears in the generated-code header of every file.
	ToolName string
	// RustOutput is the path of the generated Rust file.
	RustOutput string
	// ProxyOutput is the root directory of the Java companion sources.
	// Companions are not generated when it is empty.
	ProxyOutput string
	// Indent is added once per module nesting level.
	Indent string
	// Logger receives per-file debug output.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ToolName:   "binding-generator",
		RustOutput: "src/bindings.rs",
		Indent:     "    ",
		Logger:     slog.Default(),
	}
}

// Generator renders a resolved binding plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.ToolName == "" {
		cfg.ToolName = "binding-generator"
	}

	return &Generator{config: cfg}
}

// GeneratedFile is one output file.
type GeneratedFile struct {
	// Filename is the output path (e.g. "java/src/java_oxide/proxy/a/B.java").
	Filename string
	// Content is the file text.
	Content []byte
}

// Generate renders the Rust bindings file followed by one Java companion
// per proxied class, in plan order.
func (g *Generator) Generate(p *plan.ResolvedBindingPlan) ([]GeneratedFile, error) {
	rust, err := g.Rust(p)
	if err != nil {
		return nil, err
	}

	files := []GeneratedFile{{Filename: g.config.RustOutput, Content: rust}}

	if g.config.ProxyOutput == "" {
		return files, nil
	}

	for i := range p.Classes {
		proxy := p.Classes[i].Proxy
		if proxy == nil {
			continue
		}

		content, err := g.Java(proxy)
		if err != nil {
			return nil, fmt.Errorf("generating companion for %s: %w", p.Classes[i].Path, err)
		}

		name := filepath.Join(g.config.ProxyOutput, filepath.FromSlash(proxy.Path)+".java")
		g.config.Logger.Debug("companion rendered", "class", p.Classes[i].Path, "file", name)

		files = append(files, GeneratedFile{Filename: name, Content: content})
	}

	return files, nil
}

// module is one node of the generated module tree.
type module struct {
	children map[string]*module
	classes  []string
}

func newModule() *module {
	return &module{children: map[string]*module{}}
}

func (m *module) child(name string) *module {
	c, ok := m.children[name]
	if !ok {
		c = newModule()
		m.children[name] = c
	}

	return c
}

// Rust renders the bindings file. Classes are placed in nested modules by
// namespace; sibling modules are sorted by name and classes keep plan order.
func (g *Generator) Rust(p *plan.ResolvedBindingPlan) ([]byte, error) {
	root := newModule()

	for i := range p.Classes {
		c := &p.Classes[i]

		var buf bytes.Buffer
		if err := classTemplate.Execute(&buf, buildClassData(c)); err != nil {
			return nil, fmt.Errorf("executing template for %s: %w", c.Path, err)
		}

		node := root
		for _, seg := range c.Native.Module {
			node = node.child(seg)
		}

		node.classes = append(node.classes, tidy(buf.String()))
	}

	var out strings.Builder

	fmt.Fprintf(&out, "// Code generated by %s. DO NOT EDIT.\n\n", g.config.ToolName)
	out.WriteString(preamble)
	g.writeModule(&out, root, 0)

	return []byte(tidy(out.String())), nil
}

func (g *Generator) writeModule(out *strings.Builder, m *module, depth int) {
	prefix := strings.Repeat(g.config.Indent, depth)

	for _, block := range m.classes {
		out.WriteByte('\n')
		out.WriteString(indent(block, prefix))
	}

	for _, name := range common.SortedKeys(m.children) {
		fmt.Fprintf(out, "\n%spub mod %s {\n", prefix, name)
		g.writeModule(out, m.children[name], depth+1)
		fmt.Fprintf(out, "%s}\n", prefix)
	}
}

// preamble names the java_oxide surface the bindings are written against.
const preamble = `//! Requires java_oxide with the fallible lookups
//! Env::try_require_class, Env::try_require_method,
//! Env::try_require_static_method, Env::try_require_field and
//! Env::try_require_static_field, each returning
//! Result<_, Local<'env, Throwable>> instead of panicking.
//! Calls go through Env::new_object_a and the call_*_method_a,
//! get_*_field and set_*_field families.

#![allow(deprecated)]
#![allow(non_camel_case_types)]
#![allow(non_snake_case)]
#![allow(non_upper_case_globals)]
#![allow(unused_imports)]
#![allow(clippy::all)]
`

func indent(block, prefix string) string {
	if prefix == "" {
		return block
	}

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}

// tidy trims trailing blanks, collapses blank runs and drops blank lines
// just inside braces.
func tidy(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")

		if line == "" {
			if len(out) == 0 || out[len(out)-1] == "" || strings.HasSuffix(out[len(out)-1], "{") {
				continue
			}
		} else if strings.HasPrefix(strings.TrimSpace(line), "}") && len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}

		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n") + "\n"
}
