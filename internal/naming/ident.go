package naming

import "fmt"

// IdentError reports a JVM name that has no Rust identifier form.
type IdentError struct {
	Name   string
	Reason string
}

func (e *IdentError) Error() string {
	return fmt.Sprintf("%q is not a valid Rust identifier: %s", e.Name, e.Reason)
}

// Keywords that cannot be written as raw identifiers and get a trailing
// underscore instead.
var nonRawKeywords = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true, "_": true,
}

// Strict and reserved Rust keywords across editions.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true,
	"ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "async": true, "await": true, "dyn": true, "abstract": true,
	"become": true, "box": true, "do": true, "final": true, "macro": true,
	"override": true, "priv": true, "typeof": true, "unsized": true,
	"virtual": true, "yield": true, "try": true, "gen": true,
}

// RustIdent escapes name into a Rust identifier. Names must be ASCII
// letters, digits and underscores and must not start with a digit.
// Keywords become raw identifiers (r#type), except self, Self, super, crate
// and _, which gain a trailing underscore.
func RustIdent(name string) (string, error) {
	if name == "" {
		return "", &IdentError{Name: name, Reason: "empty"}
	}

	for i := range len(name) {
		c := name[i]

		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return "", &IdentError{Name: name, Reason: "starts with a digit"}
			}
		default:
			return "", &IdentError{Name: name, Reason: fmt.Sprintf("contains %q", rune(c))}
		}
	}

	switch {
	case nonRawKeywords[name]:
		return name + "_", nil
	case rustKeywords[name]:
		return "r#" + name, nil
	default:
		return name, nil
	}
}
