package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"binding-generator/internal/diagnostic"
)

var javaPackagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(/[A-Za-z_][A-Za-z0-9_]*)*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report problems by their configuration key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})

	_ = v.RegisterValidation("javapackage", func(fl validator.FieldLevel) bool {
		return javaPackagePattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate checks a loaded configuration. Every problem found is reported;
// the configuration is usable only when the result has no errors.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeConfig, "config is nil", "", "")
		return res
	}

	if err := newValidator().Struct(f); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			res.AddError(diagnostic.CodeConfig, err.Error(), "", "")
			return res
		}

		for _, fe := range verrs {
			res.AddError(diagnostic.CodeConfig, describe(fe), "", keyPath(fe))
		}
	}

	proxied := false

	for i, rule := range f.Includes {
		if rule.Proxy {
			proxied = true
		}

		if rule.Bind || rule.Proxy {
			continue
		}

		msg := "rule must set bind or proxy"
		if rule.BindPrivateClasses || rule.BindPrivateMethods || rule.BindPrivateFields {
			msg = "bind-private-* requires bind to be set"
		}

		res.AddError(diagnostic.CodeConfig, msg, "", fmt.Sprintf("include[%d]", i))
	}

	if proxied && f.Proxy.Package == "" {
		res.AddError(diagnostic.CodeConfig, "proxy rules require proxy.package", "", "proxy.package")
	}

	if f.Proxy.Output != "" && !proxied {
		res.AddWarning(diagnostic.CodeConfig, "proxy.output is set but no include rule enables proxy", "", "proxy.output")
	}

	for i, doc := range f.Docs {
		if doc.ClassURL == "" && doc.MethodURL == "" && doc.ConstructorURL == "" && doc.FieldURL == "" {
			res.AddWarning(diagnostic.CodeConfig, "doc rule has no URL templates", "", fmt.Sprintf("doc[%d]", i))
		}
	}

	return res
}

// keyPath turns "File.sources.inputs[0]" into "sources.inputs[0]".
func keyPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}

	return path
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "min":
		return fmt.Sprintf("needs at least %s entries", fe.Param())
	case "glob":
		return fmt.Sprintf("invalid glob pattern %q", fe.Value())
	case "javapackage":
		return fmt.Sprintf("invalid Java package %q", fe.Value())
	case "url":
		return fmt.Sprintf("invalid URL template %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
