package plan

import (
	"fmt"
	"strings"

	"binding-generator/internal/common"
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/jvm"
	"binding-generator/internal/model"
	"binding-generator/internal/naming"
	"binding-generator/internal/typemap"
)

// ProxyPath returns the companion class path for classPath under pkg.
func ProxyPath(pkg, classPath string) string {
	name := strings.ReplaceAll(classPath, "$", "_")
	if pkg == "" {
		return name
	}

	return pkg + "/" + name
}

// isFinalizer matches Object.finalize overrides, which the companion
// defines itself.
func isFinalizer(m *jvm.Method) bool {
	return m.Name == "finalize" && len(m.Descriptor.Params) == 0
}

// resolveProxy plans the proxy of one class. Abstract methods must all be
// forwarded or the companion could not be instantiated, so failing one of
// them drops the proxy; failing a concrete method only drops its override.
// Abstract types also forward what they inherit unimplemented.
func (r *Resolver) resolveProxy(
	mapper *typemap.Mapper,
	e *model.Entry,
	selected []*jvm.Method,
	names *naming.Resolution,
	diags *diagnostic.Diagnostics,
) *ResolvedProxy {
	class := e.Class
	path := ProxyPath(r.config.ProxyPackage, class.Path)
	pkg, simple := common.SplitLast(path, '/')

	proxy := &ResolvedProxy{
		Path:           path,
		JavaPackage:    strings.ReplaceAll(pkg, "/", "."),
		JavaClass:      simple,
		JavaParent:     jvm.Object(class.Path).JavaName(),
		Implements:     class.IsInterface(),
		TraitName:      e.Native.Name + "Proxy",
		FinalizeSymbol: naming.JNISymbol(path, "native_finalize", []string{"J"}),
	}

	if other, ok := r.typeNames[e.Native.ModulePath()+"::"+proxy.TraitName]; ok {
		diags.AddWarning(diagnostic.CodeProxyDropped,
			fmt.Sprintf("proxy not generated: trait %s clashes with the binding of %s", proxy.TraitName, other),
			class.Path, "")

		return nil
	}

	isSelected := make(map[*jvm.Method]bool, len(selected))
	for _, m := range selected {
		isSelected[m] = true
	}

	drop := func(member, reason string) *ResolvedProxy {
		diags.AddWarning(diagnostic.CodeProxyDropped,
			fmt.Sprintf("proxy not generated: abstract method %s", reason), class.Path, member)

		return nil
	}

	for _, m := range class.Methods {
		if !model.ProxyEligible(m) || m.IsStaticInit() || isFinalizer(m) {
			continue
		}

		member := m.Name + m.Descriptor.String()

		if !isSelected[m] {
			if m.IsAbstract() {
				return drop(member, "is not selected for binding")
			}

			continue
		}

		name, ok := names.Methods[m]
		if !ok {
			if m.IsAbstract() {
				return drop(member, "has no Rust name")
			}

			continue
		}

		pm, err := proxyMethod(mapper, path, m, name)
		if err != nil {
			if m.IsAbstract() {
				return drop(member, err.Error())
			}

			diags.AddWarning(diagnostic.CodeProxyMethodDropped, "override not generated: "+err.Error(), class.Path, member)

			continue
		}

		proxy.Methods = append(proxy.Methods, *pm)
	}

	if !class.IsAbstract() {
		return proxy
	}

	used := make(map[string]bool, len(proxy.Methods))
	for _, pm := range proxy.Methods {
		used[pm.Name] = true
	}

	for _, in := range r.inheritedAbstract(class, diags) {
		m := in.method
		member := in.owner.Class.Path + "." + m.Name + m.Descriptor.String()

		if !model.MethodSelected(m, in.owner.Config) {
			return drop(member, "is not selected for binding")
		}

		name, ok := traitMethodName(m, used)
		if !ok {
			return drop(member, "has no free Rust name in the proxy trait")
		}

		pm, err := proxyMethod(mapper, path, m, name)
		if err != nil {
			return drop(member, err.Error())
		}

		used[name] = true
		proxy.Methods = append(proxy.Methods, *pm)
	}

	return proxy
}

// inherited is an abstract method declared by a bound supertype.
type inherited struct {
	method *jvm.Method
	owner  *model.Entry
}

// inheritedAbstract lists the abstract methods class inherits from its bound
// supertypes and neither redeclares nor finds implemented by a supertype, in
// supertype discovery order. Unbound supertypes cannot be inspected and are
// reported.
func (r *Resolver) inheritedAbstract(class *jvm.Class, diags *diagnostic.Diagnostics) []inherited {
	supers := r.table.Supertypes(class.Path)

	covered := map[string]bool{}
	for _, m := range class.Methods {
		covered[m.Name+m.Descriptor.String()] = true
	}

	owners := make([]*jvm.Class, 0, len(supers)+1)
	owners = append(owners, class)

	for _, path := range supers {
		e, _ := r.table.Lookup(path)
		owners = append(owners, e.Class)

		for _, m := range e.Class.Methods {
			if !m.IsAbstract() && !m.IsStatic() && !m.IsPrivate() && !m.IsConstructor() {
				covered[m.Name+m.Descriptor.String()] = true
			}
		}
	}

	reported := map[string]bool{}

	for _, c := range owners {
		for _, super := range c.Supertypes() {
			if _, ok := r.table.Lookup(super); ok || reported[super] {
				continue
			}

			reported[super] = true
			diags.AddWarning(diagnostic.CodeUnboundType,
				fmt.Sprintf("proxy may be incomplete: abstract methods of unbound supertype %s are not forwarded", super),
				class.Path, "")
		}
	}

	var out []inherited

	for _, path := range supers {
		e, _ := r.table.Lookup(path)

		for _, m := range e.Class.Methods {
			key := m.Name + m.Descriptor.String()
			if !m.IsAbstract() || m.IsStatic() || m.IsBridge() || covered[key] {
				continue
			}

			covered[key] = true
			out = append(out, inherited{method: m, owner: e})
		}
	}

	return out
}

// traitMethodName picks the shortest escaped style name of m not in used.
func traitMethodName(m *jvm.Method, used map[string]bool) (string, bool) {
	for s := naming.Short; ; {
		if name, err := naming.RustIdent(naming.MethodName(m, s)); err == nil && !used[name] {
			return name, true
		}

		next, ok := s.Next()
		if !ok {
			return "", false
		}

		s = next
	}
}

func proxyMethod(mapper *typemap.Mapper, proxyPath string, m *jvm.Method, name string) (*ProxyMethod, error) {
	pm := &ProxyMethod{
		Name:       name,
		JavaName:   m.Name,
		NativeName: "native_" + m.Name,
		JavaReturn: "void",
	}

	descriptors := []string{"J"}

	for i, p := range m.Descriptor.Params {
		traitType, err := mapper.Type(p, typemap.OptionRef)
		if err != nil {
			return nil, err
		}

		argType, err := mapper.Type(p, typemap.Arg)
		if err != nil {
			return nil, err
		}

		param := ProxyParam{
			Name:      fmt.Sprintf("arg%d", i),
			TraitType: traitType,
			ArgType:   argType,
			JavaType:  p.JavaName(),
		}

		param.Forward = param.Name
		if p.IsObject() || p.IsArray() {
			param.Forward = param.Name + ".into_ref(__jni_env)"
		}

		pm.Params = append(pm.Params, param)
		descriptors = append(descriptors, p.String())
	}

	ret, err := mapper.Return(m.Descriptor.Return, typemap.Return)
	if err != nil {
		return nil, err
	}

	pm.Return = ret

	if m.Descriptor.Return != nil {
		pm.JavaReturn = m.Descriptor.Return.JavaName()
	}

	pm.Symbol = naming.JNISymbol(proxyPath, pm.NativeName, descriptors)

	return pm, nil
}
