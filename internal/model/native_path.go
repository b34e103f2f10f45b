package model

import (
	"slices"
	"strings"

	"binding-generator/internal/jvm"
	"binding-generator/internal/naming"
)

// NativePath locates a generated Rust type: its module path and type name.
type NativePath struct {
	Module []string
	Name   string
}

// NewNativePath derives the native path of a class. Namespace segments
// become escaped module names; the enclosing classes and the leaf are
// joined with '_' and escaped as one type name.
func NewNativePath(classPath string) (NativePath, error) {
	parts := jvm.SplitPath(classPath)

	var np NativePath

	for _, seg := range parts.Namespace {
		mod, err := naming.RustIdent(seg)
		if err != nil {
			return NativePath{}, err
		}

		np.Module = append(np.Module, mod)
	}

	// Each raw segment is checked on its own so "Outer$1" fails even though
	// "Outer_1" would be a legal identifier.
	for _, seg := range append(slices.Clone(parts.Containing), parts.Leaf) {
		if _, err := naming.RustIdent(seg); err != nil {
			return NativePath{}, err
		}
	}

	name, err := naming.RustIdent(strings.Join(append(slices.Clone(parts.Containing), parts.Leaf), "_"))
	if err != nil {
		return NativePath{}, err
	}

	np.Name = name

	return np, nil
}

// ModulePath joins the module segments with "::".
func (p NativePath) ModulePath() string {
	return strings.Join(p.Module, "::")
}

// String returns the crate-absolute path, e.g. "crate::java::lang::Object".
func (p NativePath) String() string {
	return strings.Join(append(append([]string{"crate"}, p.Module...), p.Name), "::")
}

// RefFrom renders the path as written from inside module from: the bare
// name within the same module, the crate-absolute path otherwise.
func (p NativePath) RefFrom(from []string) string {
	if slices.Equal(p.Module, from) {
		return p.Name
	}

	return p.String()
}
