package diagnostic

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"binding-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeConfig              = "config"
	CodeIdentifier          = "identifier"
	CodeDuplicateNativePath = "duplicate_native_path"
	CodeNameCollision       = "name_collision"
	CodeUnboundType         = "unbound_type"
	CodeConstructorReturn   = "constructor_return"
	CodeMemberName          = "member_name"
	CodeProxyDropped        = "proxy_dropped"
	CodeProxyMethodDropped  = "proxy_method_dropped"
	CodeMissingRuntimeClass = "missing_runtime_class"
)

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class is the class path this relates to (if any).
	Class string
	// Member is the method or field name this relates to (if any).
	Member string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records an error against class and member.
func (d *Diagnostics) AddError(code, message, class, member string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, class, member))
}

// AddWarning records a warning against class and member.
func (d *Diagnostics) AddWarning(code, message, class, member string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, class, member))
}

// AddInfo records an informational note against class and member.
func (d *Diagnostics) AddInfo(code, message, class, member string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, class, member))
}

func newDiagnostic(sev DiagnosticSeverity, code, message, class, member string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: message, Class: class, Member: member}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic grouped by class path in ascending order.
// Within a class the most severe come first; recording order is kept
// otherwise. Run-level diagnostics (no class) lead.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Class, b.Class); c != 0 {
			return c
		}

		return cmp.Compare(b.Severity, a.Severity)
	})

	return all
}

// For returns the diagnostics recorded against class, most severe first.
func (d *Diagnostics) For(class string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Class == class {
			out = append(out, diag)
		}
	}

	return out
}

// CountByCode tallies diagnostics of every severity by code.
func (d *Diagnostics) CountByCode() map[string]int {
	counts := map[string]int{}
	for _, diags := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range diags {
			counts[diag.Code]++
		}
	}

	return counts
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// Location names what the diagnostic is about: "class.member", the class
// alone, or the member alone for configuration keys.
func (d Diagnostic) Location() string {
	switch {
	case d.Class == "":
		return d.Member
	case d.Member == "":
		return d.Class
	default:
		return d.Class + "." + d.Member
	}
}

// String renders "location: [code] message", dropping empty parts.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = "[" + d.Code + "] " + msg
	}

	if loc := d.Location(); loc != "" {
		return loc + ": " + msg
	}

	return msg
}
