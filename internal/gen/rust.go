package gen

import (
	"fmt"
	"strings"
	"text/template"

	"binding-generator/internal/plan"
)

// Receivers of generated accessors.
const (
	selfReceiver = "self: &::java_oxide::Ref<'env, Self>"
	envReceiver  = "__jni_env: ::java_oxide::Env<'env>"
)

// classData holds everything the class template renders.
type classData struct {
	Name       string
	Path       string
	Doc        string
	Public     bool
	Deprecated bool
	Object     string
	Throwable  string
	Assignable []string
	Methods    []accessorData
	Fields     []fieldData
	Proxy      *proxyData
}

// accessorData is one cached JNI accessor: a method, constructor, getter
// or setter.
type accessorData struct {
	Doc        string
	Deprecated bool
	Name       string
	Receiver   string
	Params     []plan.Param
	Return     string
	Throwable  string
	// EnvLet binds __jni_env from the receiver.
	EnvLet bool
	// Cache, IDType and Var name the OnceLock, its element type and the
	// local holding the raw id.
	Cache  string
	IDType string
	Var    string
	// Lookup is the Env method resolving the id.
	Lookup     string
	JavaName   string
	Descriptor string
	// Method accessors marshal Args into a jvalue array.
	Method bool
	Args   []string
	Call   string
}

type fieldData struct {
	Const  *constData
	Getter *accessorData
	Setter *accessorData
}

type constData struct {
	Doc        string
	Deprecated bool
	Name       string
	Type       string
	Value      string
}

type proxyData struct {
	Trait          string
	Path           string
	Object         string
	Throwable      string
	FinalizeSymbol string
	Methods        []proxyMethodData
}

type proxyMethodData struct {
	Name     string
	Symbol   string
	Return   string
	Params   []plan.ProxyParam
	Forwards string
}

func buildClassData(c *plan.ResolvedClass) *classData {
	data := &classData{
		Name:       c.Native.Name,
		Path:       c.Path,
		Doc:        c.Doc,
		Public:     c.Public,
		Deprecated: c.Deprecated,
		Object:     c.ObjectRef,
		Throwable:  c.ThrowableRef,
		Assignable: c.Assignable,
	}

	for i := range c.Methods {
		data.Methods = append(data.Methods, methodAccessor(c, &c.Methods[i]))
	}

	for i := range c.Fields {
		data.Fields = append(data.Fields, buildFieldData(c, &c.Fields[i]))
	}

	if c.Proxy != nil {
		data.Proxy = buildProxyData(c)
	}

	return data
}

func methodAccessor(c *plan.ResolvedClass, m *plan.ResolvedMethod) accessorData {
	a := accessorData{
		Doc:        m.Doc,
		Deprecated: m.Deprecated,
		Name:       m.Name,
		Receiver:   envReceiver,
		Params:     m.Params,
		Return:     m.Return,
		Throwable:  c.ThrowableRef,
		Cache:      "__METHOD",
		IDType:     "::java_oxide::JMethodID",
		Var:        "__jni_method",
		Lookup:     "try_require_method",
		JavaName:   m.JavaName,
		Descriptor: m.Descriptor,
		Method:     true,
	}

	for _, p := range m.Params {
		a.Args = append(a.Args, "::java_oxide::AsJValue::as_jvalue(&"+p.Name+")")
	}

	target := "__jni_class"

	switch {
	case m.Constructor:
	case m.Static:
		a.Lookup = "try_require_static_method"
	default:
		a.Receiver = selfReceiver
		a.EnvLet = true
		target = "self.as_raw()"
	}

	a.Call = fmt.Sprintf("__jni_env.%s(%s, __jni_method, __jni_args.as_ptr())", m.CallFn, target)

	return a
}

func buildFieldData(c *plan.ResolvedClass, f *plan.ResolvedField) fieldData {
	if f.Const != nil {
		return fieldData{Const: &constData{
			Doc:        f.Doc,
			Deprecated: f.Deprecated,
			Name:       f.Const.Name,
			Type:       f.Const.Type,
			Value:      f.Const.Value,
		}}
	}

	base := accessorData{
		Doc:        f.Doc,
		Deprecated: f.Deprecated,
		Receiver:   selfReceiver,
		Throwable:  c.ThrowableRef,
		EnvLet:     true,
		Cache:      "__FIELD",
		IDType:     "::java_oxide::JFieldID",
		Var:        "__jni_field",
		Lookup:     "try_require_field",
		JavaName:   f.JavaName,
		Descriptor: f.Descriptor,
	}

	target := "self.as_raw()"
	if f.Static {
		base.Receiver = envReceiver
		base.EnvLet = false
		base.Lookup = "try_require_static_field"
		target = "__jni_class"
	}

	var data fieldData

	getter := base
	getter.Name = f.Getter.Name
	getter.Return = f.Getter.Type
	getter.Call = fmt.Sprintf("Ok(__jni_env.%s(%s, __jni_field))", f.Getter.CallFn, target)
	data.Getter = &getter

	if f.Setter != nil {
		value := "value"
		if f.Setter.Object {
			value = "value.as_arg()"
		}

		setter := base
		setter.Name = f.Setter.Name
		setter.Params = []plan.Param{{Name: "value", Type: f.Setter.Type}}
		setter.Return = "()"
		setter.Call = fmt.Sprintf("Ok(__jni_env.%s(%s, __jni_field, %s))", f.Setter.CallFn, target, value)
		data.Setter = &setter
	}

	return data
}

func buildProxyData(c *plan.ResolvedClass) *proxyData {
	p := c.Proxy
	data := &proxyData{
		Trait:          p.TraitName,
		Path:           p.Path,
		Object:         c.ObjectRef,
		Throwable:      c.ThrowableRef,
		FinalizeSymbol: p.FinalizeSymbol,
	}

	for _, m := range p.Methods {
		forwards := make([]string, 0, len(m.Params))
		for _, param := range m.Params {
			forwards = append(forwards, param.Forward)
		}

		data.Methods = append(data.Methods, proxyMethodData{
			Name:     m.Name,
			Symbol:   m.Symbol,
			Return:   m.Return,
			Params:   m.Params,
			Forwards: strings.Join(forwards, ", "),
		})
	}

	return data
}

// cstr renders s as a Rust C string literal.
func cstr(s string) string {
	return "c" + plan.RustString(s)
}

var rustFuncs = template.FuncMap{
	"cstr": cstr,
	"rstr": plan.RustString,
	"join": strings.Join,
}

var classTemplate = template.Must(template.New("class").Funcs(rustFuncs).Parse(`
{{- define "cached" -}}
match {{.Cache}}.get() {
            Some(id) => id,
            None => {
                let id = __jni_env.{{.Lookup}}(__jni_class, {{cstr .JavaName}}, {{cstr .Descriptor}})?;
                {{.Cache}}.get_or_init(|| id)
            }
        }
{{- end -}}

{{- define "accessor"}}
    #[doc = {{rstr .Doc}}]
{{- if .Deprecated}}
    #[deprecated]
{{- end}}
    pub fn {{.Name}}<'env>({{.Receiver}}{{range .Params}}, {{.Name}}: {{.Type}}{{end}}) -> ::std::result::Result<{{.Return}}, ::java_oxide::Local<'env, {{.Throwable}}>> {
        static {{.Cache}}: ::std::sync::OnceLock<{{.IDType}}> = ::std::sync::OnceLock::new();
        {{- if .EnvLet}}
        let __jni_env = self.env();
        {{- end}}
        let __jni_class = Self::__class_global_ref(__jni_env)?;
        let {{.Var}} = {{template "cached" .}}.as_raw();
        unsafe {
            {{- if .Method}}
            let __jni_args = [{{join .Args ", "}}];
            {{- end}}
            {{.Call}}
        }
    }
{{end -}}

#[doc = {{rstr .Doc}}]
{{- if .Deprecated}}
#[deprecated]
{{- end}}
{{if .Public}}pub {{end}}enum {{.Name}} {}

unsafe impl ::java_oxide::ReferenceType for {{.Name}} {}

unsafe impl ::java_oxide::JniType for {{.Name}} {
    fn static_with_jni_type<R>(callback: impl FnOnce(&::std::ffi::CStr) -> R) -> R {
        callback({{cstr .Path}})
    }
}
{{range .Assignable}}
unsafe impl ::java_oxide::AssignableTo<{{.}}> for {{$.Name}} {}
{{- end}}

impl {{.Name}} {
    fn __class_global_ref<'env>(__jni_env: ::java_oxide::Env<'env>) -> ::std::result::Result<::java_oxide::sys::jobject, ::java_oxide::Local<'env, {{.Throwable}}>> {
        static __CLASS: ::std::sync::OnceLock<::java_oxide::Global<{{.Object}}>> = ::std::sync::OnceLock::new();
        let class = match __CLASS.get() {
            Some(class) => class,
            None => {
                let class = __jni_env.try_require_class({{cstr .Path}})?;
                __CLASS.get_or_init(|| class)
            }
        };
        Ok(class.as_raw())
    }
{{range .Methods}}{{template "accessor" .}}{{end}}
{{- range .Fields}}
{{- with .Const}}
    #[doc = {{rstr .Doc}}]
{{- if .Deprecated}}
    #[deprecated]
{{- end}}
    pub const {{.Name}}: {{.Type}} = {{.Value}};
{{end}}
{{- with .Getter}}{{template "accessor" .}}{{end}}
{{- with .Setter}}{{template "accessor" .}}{{end}}
{{- end}}
{{- with .Proxy}}
    /// Creates a Java object whose overridable methods forward to proxy.
    /// The object keeps proxy alive until the JVM finalizes it.
    pub fn new_proxy<'env>(__jni_env: ::java_oxide::Env<'env>, proxy: ::std::sync::Arc<dyn {{.Trait}}>) -> ::std::result::Result<::java_oxide::Local<'env, Self>, ::java_oxide::Local<'env, {{.Throwable}}>> {
        static __CLASS: ::std::sync::OnceLock<::java_oxide::Global<{{.Object}}>> = ::std::sync::OnceLock::new();
        static __METHOD: ::std::sync::OnceLock<::java_oxide::JMethodID> = ::std::sync::OnceLock::new();
        let class = match __CLASS.get() {
            Some(class) => class,
            None => {
                let class = __jni_env.try_require_class({{cstr .Path}})?;
                __CLASS.get_or_init(|| class)
            }
        };
        let __jni_class = class.as_raw();
        let __jni_method = match __METHOD.get() {
            Some(id) => id,
            None => {
                let id = __jni_env.try_require_method(__jni_class, c"<init>", c"(J)V")?;
                __METHOD.get_or_init(|| id)
            }
        }.as_raw();
        let ptr = ::std::boxed::Box::into_raw(::std::boxed::Box::new(proxy));
        unsafe {
            let __jni_args = [::java_oxide::sys::jvalue { j: ptr.expose_provenance() as i64 }];
            let object = __jni_env.new_object_a(__jni_class, __jni_method, __jni_args.as_ptr());
            if object.is_err() {
                drop(::std::boxed::Box::from_raw(ptr));
            }
            object
        }
    }
{{- end}}
}
{{- with .Proxy}}

pub trait {{.Trait}}: ::std::marker::Send + ::std::marker::Sync + 'static {
{{- range .Methods}}
    fn {{.Name}}<'env>(&self, env: ::java_oxide::Env<'env>{{range .Params}}, {{.Name}}: {{.TraitType}}{{end}}) -> {{.Return}};
{{- end}}
}
{{range .Methods}}
#[unsafe(no_mangle)]
extern "system" fn {{.Symbol}}<'env>(__jni_env: ::java_oxide::Env<'env>, _class: *mut (), ptr: i64{{range .Params}}, {{.Name}}: {{.ArgType}}{{end}}) -> {{.Return}} {
    let ptr: *const ::std::sync::Arc<dyn {{$.Proxy.Trait}}> = ::std::ptr::with_exposed_provenance(ptr as usize);
    unsafe { (*ptr).{{.Name}}(__jni_env{{if .Forwards}}, {{.Forwards}}{{end}}) }
}
{{end}}
/// Releases the proxy behind ptr. The companion's finalizer calls this
/// exactly once per object; any other call is undefined behavior.
#[unsafe(no_mangle)]
extern "system" fn {{.FinalizeSymbol}}(_env: ::java_oxide::Env<'_>, _class: *mut (), ptr: i64) {
    let ptr: *mut ::std::sync::Arc<dyn {{.Trait}}> = ::std::ptr::with_exposed_provenance_mut(ptr as usize);
    drop(unsafe { ::std::boxed::Box::from_raw(ptr) });
}
{{- end}}
`))
