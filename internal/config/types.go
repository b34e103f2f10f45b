package config

// File is the root of a configuration document.
type File struct {
	Sources  Sources       `toml:"sources" yaml:"sources"`
	Proxy    Proxy         `toml:"proxy" yaml:"proxy"`
	Docs     []DocRule     `toml:"doc" yaml:"doc" validate:"dive"`
	Includes []IncludeRule `toml:"include" yaml:"include" validate:"dive"`
	Logging  Logging       `toml:"logging" yaml:"logging"`

	// Dir is the directory relative paths were resolved against.
	Dir string `toml:"-" yaml:"-"`
}

// Sources names the class inputs and the Rust output file.
type Sources struct {
	Inputs StringOrList `toml:"inputs" yaml:"inputs" validate:"min=1,dive,required"`
	Output string       `toml:"output" yaml:"output" validate:"required"`
}

// Proxy configures the generated proxy companions.
type Proxy struct {
	// Package is the Java package for companion classes, with '/' separators
	// after loading.
	Package string `toml:"package" yaml:"package" validate:"omitempty,javapackage"`
	// Output is the root directory for companion .java files. Empty disables
	// companion output while keeping the Rust side.
	Output string `toml:"output" yaml:"output"`
}

// IncludeRule grants binding policy to every class whose path matches.
type IncludeRule struct {
	Match              StringOrList `toml:"match" yaml:"match" validate:"min=1,dive,required,glob"`
	Bind               bool         `toml:"bind" yaml:"bind"`
	BindPrivateClasses bool         `toml:"bind-private-classes" yaml:"bind-private-classes"`
	BindPrivateMethods bool         `toml:"bind-private-methods" yaml:"bind-private-methods"`
	BindPrivateFields  bool         `toml:"bind-private-fields" yaml:"bind-private-fields"`
	Proxy              bool         `toml:"proxy" yaml:"proxy"`
}

// DocRule supplies documentation URL templates for matching classes.
type DocRule struct {
	Match          StringOrList `toml:"match" yaml:"match" validate:"min=1,dive,required,glob"`
	ClassURL       string       `toml:"class-url" yaml:"class-url" validate:"omitempty,url"`
	MethodURL      string       `toml:"method-url" yaml:"method-url" validate:"omitempty,url"`
	ConstructorURL string       `toml:"constructor-url" yaml:"constructor-url" validate:"omitempty,url"`
	FieldURL       string       `toml:"field-url" yaml:"field-url" validate:"omitempty,url"`
	Sep            Separators   `toml:"sep" yaml:"sep"`
}

// Separators controls how class paths and argument types are spelled in
// documentation URLs. Empty values take the defaults below.
type Separators struct {
	ClassNamespace     string `toml:"class-namespace" yaml:"class-namespace"`
	ClassInnerClass    string `toml:"class-inner-class" yaml:"class-inner-class"`
	Argument           string `toml:"argument" yaml:"argument"`
	ArgumentNamespace  string `toml:"argument-namespace" yaml:"argument-namespace"`
	ArgumentInnerClass string `toml:"argument-inner-class" yaml:"argument-inner-class"`
}

// DefaultSeparators returns the separators used when a doc rule leaves them unset.
func DefaultSeparators() Separators {
	return Separators{
		ClassNamespace:     "/",
		ClassInnerClass:    ".",
		Argument:           ",",
		ArgumentNamespace:  ".",
		ArgumentInnerClass: ".",
	}
}

// Logging configures the CLI logger. The -v flag overrides Level.
type Logging struct {
	Level  string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `toml:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// ClassConfig is the effective policy for one class.
type ClassConfig struct {
	Bind               bool
	BindPrivateClasses bool
	BindPrivateMethods bool
	BindPrivateFields  bool
	Proxy              bool
	// Doc is the last matching doc rule, or nil.
	Doc *DocRule
}
