// Package docs renders documentation links for bound classes and members
// from the URL templates of a doc rule.
package docs

import (
	"strings"

	"binding-generator/internal/common"
	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
)

// Link is a labelled documentation URL.
type Link struct {
	Label string
	URL   string
}

// Markdown renders the link as [label](url).
func (l Link) Markdown() string {
	return "[" + l.Label + "](" + l.URL + ")"
}

func validClassPath(s string) bool {
	for i := range len(s) {
		c := s[i]
		if !isWordChar(c) && c != '$' && c != '/' {
			return false
		}
	}

	return true
}

func validMemberName(s string) bool {
	for i := range len(s) {
		if !isWordChar(s[i]) {
			return false
		}
	}

	return true
}

func isWordChar(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func javaClass(rule *config.DocRule, classPath string) string {
	return strings.NewReplacer("/", rule.Sep.ClassNamespace, "$", rule.Sep.ClassInnerClass).Replace(classPath)
}

func classReplacer(rule *config.DocRule, classPath string, extra ...string) *strings.Replacer {
	cls := javaClass(rule, classPath)
	_, outer := common.SplitLast(classPath, '/')
	_, inner := common.SplitLast(outer, '$')

	pairs := []string{
		"{CLASS}", cls,
		"{CLASS.LOWER}", strings.ToLower(cls),
		"{CLASS.OUTER}", strings.ReplaceAll(outer, "$", rule.Sep.ClassInnerClass),
		"{CLASS.INNER}", inner,
	}

	return strings.NewReplacer(append(pairs, extra...)...)
}

// Class resolves the link for a class. The label is the class name without
// its package.
func Class(rule *config.DocRule, classPath string) (Link, bool) {
	if rule == nil || rule.ClassURL == "" || !validClassPath(classPath) {
		return Link{}, false
	}

	_, label := common.SplitLast(classPath, '/')

	return Link{
		Label: strings.ReplaceAll(label, "$", "."),
		URL:   classReplacer(rule, classPath).Replace(rule.ClassURL),
	}, true
}

// Method resolves the link for a method or constructor. Constructors use
// the constructor template and fall back to the method template.
func Method(rule *config.DocRule, classPath string, m *jvm.Method) (Link, bool) {
	if rule == nil || !validClassPath(classPath) {
		return Link{}, false
	}

	tmpl := rule.MethodURL
	label := m.Name

	if m.IsConstructor() {
		if rule.ConstructorURL != "" {
			tmpl = rule.ConstructorURL
		}

		label = jvm.SimpleName(classPath)
	} else if !validMemberName(m.Name) {
		return Link{}, false
	}

	if tmpl == "" {
		return Link{}, false
	}

	r := classReplacer(rule, classPath, "{METHOD}", label, "{ARGUMENTS}", arguments(rule, m))

	return Link{Label: label, URL: r.Replace(tmpl)}, true
}

// Field resolves the link for a field.
func Field(rule *config.DocRule, classPath string, f *jvm.Field) (Link, bool) {
	if rule == nil || rule.FieldURL == "" || !validClassPath(classPath) || !validMemberName(f.Name) {
		return Link{}, false
	}

	return Link{
		Label: f.Name,
		URL:   classReplacer(rule, classPath, "{FIELD}", f.Name).Replace(rule.FieldURL),
	}, true
}

// arguments spells the parameter list as Java source does, with "..." for
// a varargs last parameter.
func arguments(rule *config.DocRule, m *jvm.Method) string {
	params := m.Descriptor.Params
	names := make([]string, len(params))
	argRepl := strings.NewReplacer("/", rule.Sep.ArgumentNamespace, "$", rule.Sep.ArgumentInnerClass)

	for i, p := range params {
		name := p.Primitive.String()
		if p.IsObject() {
			name = argRepl.Replace(p.Class)
		}

		dims := strings.Repeat("[]", p.Dims)
		if i == len(params)-1 && p.Dims > 0 && m.IsVarargs() {
			dims = strings.Repeat("[]", p.Dims-1) + "..."
		}

		names[i] = name + dims
	}

	return strings.Join(names, rule.Sep.Argument)
}
