package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration file names FindAndLoad looks for, in
// order of preference.
var FileNames = []string{"binding-generator.toml", "binding-generator.yaml", "binding-generator.yml"}

// ErrNotFound is returned by FindAndLoad when no configuration file exists
// in the start directory or any parent.
var ErrNotFound = errors.New("no binding-generator configuration found")

// Format is a configuration encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the encoding from a file extension. Anything that is not
// .yaml or .yml is TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadFile loads and normalizes a configuration file. Relative paths inside
// it are resolved against the file's directory.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	f, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	f.resolvePaths(dir)

	return f, nil
}

// FindAndLoad searches startDir and its parents for one of FileNames and
// loads the first match.
func FindAndLoad(startDir string) (*File, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return LoadFile(candidate)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w (searched from %s)", ErrNotFound, startDir)
		}

		dir = parent
	}
}

// Parse decodes configuration data and normalizes it. Unknown keys are
// rejected in both encodings.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}

			return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
		}
	}

	normalize(&f)

	return &f, nil
}

// normalize converts Java-style dotted names to class-path form and applies
// default separators.
func normalize(f *File) {
	f.Proxy.Package = strings.ReplaceAll(f.Proxy.Package, ".", "/")

	for i := range f.Includes {
		normalizePatterns(f.Includes[i].Match)
	}

	defaults := DefaultSeparators()

	for i := range f.Docs {
		d := &f.Docs[i]
		normalizePatterns(d.Match)
		setDefault(&d.Sep.ClassNamespace, defaults.ClassNamespace)
		setDefault(&d.Sep.ClassInnerClass, defaults.ClassInnerClass)
		setDefault(&d.Sep.Argument, defaults.Argument)
		setDefault(&d.Sep.ArgumentNamespace, defaults.ArgumentNamespace)
		setDefault(&d.Sep.ArgumentInnerClass, defaults.ArgumentInnerClass)
	}
}

func normalizePatterns(patterns StringOrList) {
	for i, p := range patterns {
		patterns[i] = strings.ReplaceAll(p, ".", "/")
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func (f *File) resolvePaths(dir string) {
	f.Dir = dir

	for i, in := range f.Sources.Inputs {
		f.Sources.Inputs[i] = resolve(dir, in)
	}

	f.Sources.Output = resolve(dir, f.Sources.Output)
	f.Proxy.Output = resolve(dir, f.Proxy.Output)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
