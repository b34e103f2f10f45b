package config

import "github.com/bmatcuk/doublestar/v4"

// matches reports whether any pattern matches classPath. Patterns are
// validated on load, so a malformed one simply never matches here.
func matches(patterns []string, classPath string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, classPath); err == nil && ok {
			return true
		}
	}

	return false
}

// ClassConfig resolves the policy for classPath: include rules are
// OR-combined, proxy implies bind, and the last matching doc rule wins.
func (f *File) ClassConfig(classPath string) ClassConfig {
	var cc ClassConfig

	for _, rule := range f.Includes {
		if !matches(rule.Match, classPath) {
			continue
		}

		cc.Bind = cc.Bind || rule.Bind
		cc.BindPrivateClasses = cc.BindPrivateClasses || rule.BindPrivateClasses
		cc.BindPrivateMethods = cc.BindPrivateMethods || rule.BindPrivateMethods
		cc.BindPrivateFields = cc.BindPrivateFields || rule.BindPrivateFields
		cc.Proxy = cc.Proxy || rule.Proxy
	}

	if cc.Proxy {
		cc.Bind = true
	}

	for i := range f.Docs {
		if matches(f.Docs[i].Match, classPath) {
			cc.Doc = &f.Docs[i]
		}
	}

	return cc
}
