package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"binding-generator/internal/config"
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/docs"
	"binding-generator/internal/jvm"
	"binding-generator/internal/model"
	"binding-generator/internal/naming"
	"binding-generator/internal/typemap"
)

// ResolutionConfig holds configuration for the resolution pipeline.
type ResolutionConfig struct {
	// ProxyPackage is the companion package in class-path form
	// ("java_oxide/proxy").
	ProxyPackage string
	// StrictMode fails Resolve when any error diagnostic was recorded.
	StrictMode bool
	// Logger receives per-class debug output.
	Logger *slog.Logger
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		ProxyPackage: "java_oxide/proxy",
		Logger:       slog.Default(),
	}
}

// Resolver performs the resolution pipeline over a sealed table.
type Resolver struct {
	table  *model.Table
	config ResolutionConfig
	// typeNames maps every bound "module::Name" to its class path.
	typeNames map[string]string
}

// NewResolver creates a new Resolver.
func NewResolver(table *model.Table, cfg ResolutionConfig) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &Resolver{table: table, config: cfg, typeNames: map[string]string{}}
	for _, e := range table.Entries() {
		r.typeNames[e.Native.ModulePath()+"::"+e.Native.Name] = e.Class.Path
	}

	return r
}

// classError aborts one class.
type classError struct {
	code string
	err  error
}

func (e *classError) Error() string { return e.err.Error() }
func (e *classError) Unwrap() error { return e.err }

// Resolve runs the full resolution pipeline and returns a ResolvedBindingPlan.
func (r *Resolver) Resolve() (*ResolvedBindingPlan, error) {
	if !r.table.Sealed() {
		return nil, errors.New("class table must be sealed before resolution")
	}

	plan := &ResolvedBindingPlan{}

	for _, e := range r.table.Entries() {
		resolved, err := r.resolveClass(e, &plan.Diagnostics)
		if err != nil {
			code := diagnostic.CodeIdentifier

			var ce *classError
			if errors.As(err, &ce) {
				code = ce.code
			}

			plan.Diagnostics.AddError(code, err.Error(), e.Class.Path, "")
			r.config.Logger.Debug("class skipped", "class", e.Class.Path, "error", err)

			continue
		}

		r.config.Logger.Debug("class resolved",
			"class", e.Class.Path,
			"methods", len(resolved.Methods),
			"fields", len(resolved.Fields),
			"proxy", resolved.Proxy != nil)

		plan.Classes = append(plan.Classes, *resolved)
	}

	slices.SortFunc(plan.Classes, func(a, b ResolvedClass) int {
		return strings.Compare(a.Native.String(), b.Native.String())
	})

	if r.config.StrictMode && plan.Diagnostics.HasErrors() {
		return plan, errors.New("strict mode: resolution failed with errors")
	}

	return plan, nil
}

func (r *Resolver) resolveClass(e *model.Entry, diags *diagnostic.Diagnostics) (*ResolvedClass, error) {
	class := e.Class
	cfg := e.Config
	mapper := typemap.New(r.table, e.Native.Module)

	objectRef, err := mapper.ClassRef(typemap.ObjectPath)
	if err != nil {
		return nil, &classError{code: diagnostic.CodeMissingRuntimeClass, err: err}
	}

	throwableRef, err := mapper.ClassRef(typemap.ThrowablePath)
	if err != nil {
		return nil, &classError{code: diagnostic.CodeMissingRuntimeClass, err: err}
	}

	resolved := &ResolvedClass{
		Path:         class.Path,
		Native:       e.Native,
		Public:       model.ClassVisible(class, cfg),
		Keyword:      class.Keyword(),
		Deprecated:   class.Deprecated,
		ObjectRef:    objectRef,
		ThrowableRef: throwableRef,
	}

	resolved.Doc = class.Keyword() + " " + class.Path
	if link, ok := docs.Class(cfg.Doc, class.Path); ok {
		resolved.Doc = class.Keyword() + " " + link.Markdown()
	}

	for _, super := range r.table.Supertypes(class.Path) {
		ref, err := mapper.ClassRef(super)
		if err != nil {
			return nil, err
		}

		resolved.Assignable = append(resolved.Assignable, ref)
	}

	methods := model.SelectMethods(class, cfg)
	fields := model.SelectFields(class, cfg)

	reserved := []string{naming.ClassRefName}
	if cfg.Proxy {
		reserved = append(reserved, naming.NewProxyName)
	}

	names, err := naming.Resolve(methods, fields, reserved)
	if err != nil {
		return nil, &classError{code: diagnostic.CodeNameCollision, err: fmt.Errorf("%s: %w", class.Path, err)}
	}

	for _, rej := range names.Rejected {
		diags.AddWarning(diagnostic.CodeMemberName, rej.Err.Error(), class.Path, rej.Member)
	}

	for _, m := range methods {
		name, ok := names.Methods[m]
		if !ok {
			continue
		}

		rm, err := resolveMethod(mapper, cfg.Doc, class.Path, m, name)
		if err != nil {
			addMemberError(diags, err, class.Path, m.Name+m.Descriptor.String())
			continue
		}

		resolved.Methods = append(resolved.Methods, *rm)
	}

	for _, f := range fields {
		fieldNames, ok := names.Fields[f]
		if !ok {
			continue
		}

		rf, err := resolveField(mapper, cfg.Doc, class.Path, f, fieldNames)
		if err != nil {
			addMemberError(diags, err, class.Path, f.Name)
			continue
		}

		resolved.Fields = append(resolved.Fields, *rf)
	}

	if cfg.Proxy {
		resolved.Proxy = r.resolveProxy(mapper, e, methods, names, diags)
	}

	return resolved, nil
}

var errConstructorReturn = errors.New("constructor declares a non-void return type")

func addMemberError(diags *diagnostic.Diagnostics, err error, class, member string) {
	var ue *typemap.UnboundError

	switch {
	case errors.As(err, &ue):
		diags.AddWarning(diagnostic.CodeUnboundType, "skipped: "+err.Error(), class, member)
	case errors.Is(err, errConstructorReturn):
		diags.AddError(diagnostic.CodeConstructorReturn, err.Error(), class, member)
	default:
		diags.AddWarning(diagnostic.CodeMemberName, err.Error(), class, member)
	}
}

func resolveMethod(
	mapper *typemap.Mapper,
	rule *config.DocRule,
	classPath string,
	m *jvm.Method,
	name string,
) (*ResolvedMethod, error) {
	rm := &ResolvedMethod{
		Name:        name,
		JavaName:    m.Name,
		Descriptor:  m.Descriptor.String(),
		Doc:         m.Name,
		Deprecated:  m.Deprecated,
		Static:      m.IsStatic(),
		Constructor: m.IsConstructor(),
	}

	if link, ok := docs.Method(rule, classPath, m); ok {
		rm.Doc = link.Markdown()
	}

	for i, p := range m.Descriptor.Params {
		typ, err := mapper.Type(p, typemap.ImplAsArg)
		if err != nil {
			return nil, err
		}

		rm.Params = append(rm.Params, Param{Name: fmt.Sprintf("arg%d", i), Type: typ})
	}

	fragment := typemap.CallFragment(m.Descriptor.Return)

	switch {
	case m.IsConstructor():
		if m.Descriptor.Return != nil {
			return nil, errConstructorReturn
		}

		rm.Return = typemap.Runtime + "::Local<'env, Self>"
		rm.CallFn = "new_object_a"
	case m.IsStatic():
		rm.CallFn = "call_static_" + fragment + "_method_a"
	default:
		rm.CallFn = "call_" + fragment + "_method_a"
	}

	if !m.IsConstructor() {
		ret, err := mapper.Return(m.Descriptor.Return, typemap.OptionLocal)
		if err != nil {
			return nil, err
		}

		rm.Return = ret
	}

	return rm, nil
}

func resolveField(
	mapper *typemap.Mapper,
	rule *config.DocRule,
	classPath string,
	f *jvm.Field,
	names naming.FieldNames,
) (*ResolvedField, error) {
	rf := &ResolvedField{
		JavaName:   f.Name,
		Descriptor: f.Type.String(),
		Doc:        f.Name,
		Deprecated: f.Deprecated,
		Static:     f.IsStatic(),
	}

	if link, ok := docs.Field(rule, classPath, f); ok {
		rf.Doc = link.Markdown()
	}

	if names.Const != "" {
		typ, value, err := RustConstant(f)
		if err != nil {
			return nil, err
		}

		rf.Const = &ResolvedConst{Name: names.Const, Type: typ, Value: value}

		return rf, nil
	}

	fragment := typemap.CallFragment(&f.Type)
	static := ""
	if f.IsStatic() {
		static = "static_"
	}

	getType, err := mapper.Type(f.Type, typemap.OptionLocal)
	if err != nil {
		return nil, err
	}

	object := fragment == "object"
	rf.Getter = &FieldAccessor{
		Name:   names.Getter,
		Type:   getType,
		CallFn: "get_" + static + fragment + "_field",
		Object: object,
	}

	if names.Setter != "" {
		setType, err := mapper.Type(f.Type, typemap.ImplAsArg)
		if err != nil {
			return nil, err
		}

		rf.Setter = &FieldAccessor{
			Name:   names.Setter,
			Type:   setType,
			CallFn: "set_" + static + fragment + "_field",
			Object: object,
		}
	}

	return rf, nil
}
