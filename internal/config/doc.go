// Package config loads the generator configuration and resolves the
// per-class policy (ClassConfig) from its include and doc rules.
//
// The same schema is accepted as TOML (binding-generator.toml) or YAML
// (binding-generator.yaml). Match patterns are globs over class paths where
// '*' stays within one package segment and '**' crosses segments.
package config
