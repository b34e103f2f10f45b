package plan

import (
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/model"
)

// ResolvedBindingPlan is the final output of the resolution pipeline.
type ResolvedBindingPlan struct {
	// Classes are the classes that resolved, ordered by native path.
	Classes []ResolvedClass
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ResolvedClass is everything needed to render one bound class.
type ResolvedClass struct {
	// Path is the JVM class path.
	Path   string
	Native model.NativePath
	// Public is true when the marker type is exported.
	Public     bool
	Keyword    string
	Doc        string
	Deprecated bool
	// ObjectRef and ThrowableRef are the Rust paths of the runtime classes
	// as seen from this class's module.
	ObjectRef    string
	ThrowableRef string
	// Assignable lists the Rust paths of every bound supertype.
	Assignable []string
	Methods    []ResolvedMethod
	Fields     []ResolvedField
	Proxy      *ResolvedProxy
}

// ResolvedMethod is one method or constructor accessor.
type ResolvedMethod struct {
	// Name is the resolved Rust name.
	Name       string
	JavaName   string
	Descriptor string
	Doc        string
	Deprecated bool
	Static     bool
	// Constructor accessors return a new local reference to Self.
	Constructor bool
	Params      []Param
	// Return is the Rust success type.
	Return string
	// CallFn is the Env method that performs the call.
	CallFn string
}

// Param is a named, typed parameter.
type Param struct {
	Name string
	Type string
}

// ResolvedField is one field's accessors or constant.
type ResolvedField struct {
	JavaName   string
	Descriptor string
	Doc        string
	Deprecated bool
	Static     bool
	// Const is set for static final fields with a constant value; Getter and
	// Setter are nil then.
	Const  *ResolvedConst
	Getter *FieldAccessor
	Setter *FieldAccessor
}

// ResolvedConst is a compile-time constant binding.
type ResolvedConst struct {
	Name string
	Type string
	// Value is the Rust literal.
	Value string
}

// FieldAccessor is a getter or setter.
type FieldAccessor struct {
	Name string
	// Type is the getter return type or the setter value type.
	Type   string
	CallFn string
	// Object is set for reference-typed fields, whose setter takes an AsArg.
	Object bool
}

// ResolvedProxy is the proxy surface of one class. The Rust trait, the
// extern entry points and the Java companion are all rendered from it.
type ResolvedProxy struct {
	// Path is the companion's class path, e.g. "java_oxide/proxy/a/B_C".
	Path string
	// JavaPackage and JavaClass split Path for the companion source.
	JavaPackage string
	JavaClass   string
	// JavaParent is the bound class as written in Java source.
	JavaParent string
	// Implements is true for interfaces.
	Implements     bool
	TraitName      string
	FinalizeSymbol string
	Methods        []ProxyMethod
}

// ProxyMethod is one overridable method forwarded to the trait.
type ProxyMethod struct {
	// Name is the trait method name, equal to the accessor name.
	Name       string
	JavaName   string
	NativeName string
	Symbol     string
	Params     []ProxyParam
	// Return is the Rust return type of trait method and entry point.
	Return     string
	JavaReturn string
}

// ProxyParam is one parameter in its three spellings.
type ProxyParam struct {
	Name string
	// TraitType is the trait method parameter type.
	TraitType string
	// ArgType is the raw entry-point parameter type.
	ArgType string
	// Forward is the expression passed from the entry point to the trait.
	Forward  string
	JavaType string
}
