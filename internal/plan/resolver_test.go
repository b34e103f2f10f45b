package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binding-generator/internal/config"
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/jvm"
	"binding-generator/internal/model"
)

func method(t *testing.T, name, desc string, access jvm.AccessFlags) *jvm.Method {
	t.Helper()

	d, err := jvm.ParseMethodDescriptor(desc)
	require.NoError(t, err)

	return &jvm.Method{Name: name, Descriptor: d, Access: access}
}

func runtimeClasses() []*jvm.Class {
	return []*jvm.Class{
		{Path: "java/lang/Object", Access: jvm.AccPublic},
		{Path: "java/lang/Throwable", Access: jvm.AccPublic, SuperPath: "java/lang/Object"},
		{Path: "java/lang/String", Access: jvm.AccPublic | jvm.AccFinal, SuperPath: "java/lang/Object"},
	}
}

func resolve(t *testing.T, cfg config.ClassConfig, classes ...*jvm.Class) *ResolvedBindingPlan {
	t.Helper()

	tbl := model.NewTable()
	for _, c := range runtimeClasses() {
		_, err := tbl.Register(c, config.ClassConfig{Bind: true})
		require.NoError(t, err)
	}

	for _, c := range classes {
		_, err := tbl.Register(c, cfg)
		require.NoError(t, err)
	}

	tbl.Seal()

	p, err := NewResolver(tbl, DefaultConfig()).Resolve()
	require.NoError(t, err)

	return p
}

func find(t *testing.T, p *ResolvedBindingPlan, path string) *ResolvedClass {
	t.Helper()

	for i := range p.Classes {
		if p.Classes[i].Path == path {
			return &p.Classes[i]
		}
	}

	require.Failf(t, "class not in plan", "%s", path)

	return nil
}

func methodNames(c *ResolvedClass) []string {
	var out []string
	for _, m := range c.Methods {
		out = append(out, m.Name)
	}

	return out
}

func TestResolver_OverloadedMethods(t *testing.T) {
	foo := &jvm.Class{
		Path:      "com/example/Foo",
		Access:    jvm.AccPublic,
		SuperPath: "java/lang/Object",
		Methods: []*jvm.Method{
			method(t, "bar", "()V", jvm.AccPublic),
			method(t, "bar", "(I)V", jvm.AccPublic),
			method(t, "baz", "()Ljava/lang/String;", jvm.AccPublic),
			method(t, "<init>", "()V", jvm.AccPublic),
			method(t, "<clinit>", "()V", jvm.AccStatic),
			method(t, "hidden", "()V", jvm.AccPrivate),
		},
	}

	p := resolve(t, config.ClassConfig{Bind: true}, foo)
	assert.True(t, p.Diagnostics.IsValid())

	c := find(t, p, "com/example/Foo")
	assert.Equal(t, []string{"bar", "bar_int", "baz", "new"}, methodNames(c))
	assert.Equal(t, []string{"crate::java::lang::Object"}, c.Assignable)
	assert.Equal(t, "class com/example/Foo", c.Doc)
	assert.True(t, c.Public)

	bar := c.Methods[1]
	assert.Equal(t, "call_void_method_a", bar.CallFn)
	assert.Equal(t, "()", bar.Return)
	assert.Equal(t, []Param{{Name: "arg0", Type: "i32"}}, bar.Params)

	baz := c.Methods[2]
	assert.Equal(t, "call_object_method_a", baz.CallFn)
	assert.Equal(t, "::std::option::Option<::java_oxide::Local<'env, crate::java::lang::String>>", baz.Return)

	ctor := c.Methods[3]
	assert.True(t, ctor.Constructor)
	assert.Equal(t, "new_object_a", ctor.CallFn)
	assert.Equal(t, "::java_oxide::Local<'env, Self>", ctor.Return)
}

func TestResolver_SelectiveEscalation(t *testing.T) {
	foo := &jvm.Class{Path: "a/Foo", Access: jvm.AccPublic, SuperPath: "java/lang/Object"}

	unrelated := []string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9"}
	for _, n := range unrelated {
		foo.Methods = append(foo.Methods, method(t, n, "(I)I", jvm.AccPublic))
	}

	foo.Methods = append(foo.Methods,
		method(t, "put", "(I)V", jvm.AccPublic),
		method(t, "put", "(J)V", jvm.AccPublic))

	c := find(t, resolve(t, config.ClassConfig{Bind: true}, foo), "a/Foo")
	assert.Equal(t, append(unrelated, "put_int", "put_long"), methodNames(c))
}

func TestResolver_UnboundTypeSkipsOnlyMember(t *testing.T) {
	foo := &jvm.Class{
		Path:      "a/Foo",
		Access:    jvm.AccPublic,
		SuperPath: "java/lang/Object",
		Methods: []*jvm.Method{
			method(t, "good", "()I", jvm.AccPublic),
			method(t, "bad", "(La/Missing;)V", jvm.AccPublic),
		},
		Fields: []*jvm.Field{
			{Name: "other", Type: jvm.Object("a/Missing"), Access: jvm.AccPublic},
		},
	}

	p := resolve(t, config.ClassConfig{Bind: true}, foo)
	c := find(t, p, "a/Foo")
	assert.Equal(t, []string{"good"}, methodNames(c))
	assert.Empty(t, c.Fields)

	require.Len(t, p.Diagnostics.Warnings, 2)
	assert.Equal(t, diagnostic.CodeUnboundType, p.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "bad(La/Missing;)V", p.Diagnostics.Warnings[0].Member)
	assert.True(t, p.Diagnostics.IsValid())
}

func TestResolver_CollisionSkipsClass(t *testing.T) {
	foo := &jvm.Class{
		Path:      "a/Foo",
		Access:    jvm.AccPublic,
		SuperPath: "java/lang/Object",
		Methods: []*jvm.Method{
			method(t, "x", "()V", jvm.AccPublic),
			method(t, "x", "()V", jvm.AccPublic|jvm.AccStatic),
		},
	}

	p := resolve(t, config.ClassConfig{Bind: true}, foo)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeNameCollision, p.Diagnostics.Errors[0].Code)
	assert.Contains(t, p.Diagnostics.Errors[0].Message, "x__void")

	for _, c := range p.Classes {
		assert.NotEqual(t, "a/Foo", c.Path)
	}
}

func TestResolver_MissingRuntimeClass(t *testing.T) {
	tbl := model.NewTable()
	_, err := tbl.Register(&jvm.Class{Path: "a/Foo", Access: jvm.AccPublic}, config.ClassConfig{Bind: true})
	require.NoError(t, err)
	tbl.Seal()

	p, err := NewResolver(tbl, DefaultConfig()).Resolve()
	require.NoError(t, err)
	assert.Empty(t, p.Classes)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingRuntimeClass, p.Diagnostics.Errors[0].Code)

	cfg := DefaultConfig()
	cfg.StrictMode = true
	_, err = NewResolver(tbl, cfg).Resolve()
	assert.Error(t, err)
}

func TestResolver_RequiresSealedTable(t *testing.T) {
	_, err := NewResolver(model.NewTable(), DefaultConfig()).Resolve()
	assert.Error(t, err)
}

func TestResolver_ConstructorWithReturn(t *testing.T) {
	foo := &jvm.Class{
		Path:      "a/Foo",
		Access:    jvm.AccPublic,
		SuperPath: "java/lang/Object",
		Methods:   []*jvm.Method{method(t, "<init>", "()I", jvm.AccPublic)},
	}

	p := resolve(t, config.ClassConfig{Bind: true}, foo)
	assert.Empty(t, find(t, p, "a/Foo").Methods)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeConstructorReturn, p.Diagnostics.Errors[0].Code)
}

func TestResolver_Fields(t *testing.T) {
	foo := &jvm.Class{
		Path:      "a/Foo",
		Access:    jvm.AccPublic,
		SuperPath: "java/lang/Object",
		Fields: []*jvm.Field{
			{
				Name:     "LIMIT",
				Type:     jvm.Prim(jvm.PrimInt),
				Access:   jvm.AccPublic | jvm.AccStatic | jvm.AccFinal,
				Constant: &jvm.Constant{Kind: jvm.ConstInt, Int: 42},
			},
			{Name: "name", Type: jvm.Object("java/lang/String"), Access: jvm.AccPublic},
			{Name: "ID", Type: jvm.Prim(jvm.PrimLong), Access: jvm.AccPublic | jvm.AccStatic | jvm.AccFinal},
		},
	}

	c := find(t, resolve(t, config.ClassConfig{Bind: true}, foo), "a/Foo")
	require.Len(t, c.Fields, 3)

	assert.Equal(t, &ResolvedConst{Name: "LIMIT", Type: "i32", Value: "42"}, c.Fields[0].Const)
	assert.Nil(t, c.Fields[0].Getter)

	name := c.Fields[1]
	assert.Equal(t, "get_name", name.Getter.Name)
	assert.Equal(t, "get_object_field", name.Getter.CallFn)
	assert.Equal(t, "set_name", name.Setter.Name)
	assert.Equal(t, "impl ::java_oxide::AsArg<crate::java::lang::String>", name.Setter.Type)

	id := c.Fields[2]
	assert.Equal(t, "get_static_long_field", id.Getter.CallFn)
	assert.Nil(t, id.Setter)
}

func TestResolver_DocsAndVisibility(t *testing.T) {
	rule := &config.DocRule{
		ClassURL:  "https://docs/{CLASS}.html",
		MethodURL: "https://docs/{CLASS}.html#{METHOD}({ARGUMENTS})",
		Sep:       config.DefaultSeparators(),
	}

	inner := &jvm.Class{
		Path:       "a/Outer$Inner",
		Access:     jvm.AccPrivate | jvm.AccStatic,
		SuperPath:  "java/lang/Object",
		Deprecated: true,
		Methods:    []*jvm.Method{method(t, "run", "(I)V", jvm.AccPublic)},
	}

	c := find(t, resolve(t, config.ClassConfig{Bind: true, Doc: rule}, inner), "a/Outer$Inner")
	assert.False(t, c.Public)
	assert.True(t, c.Deprecated)
	assert.Equal(t, "static class [Outer.Inner](https://docs/a/Outer.Inner.html)", c.Doc)
	assert.Equal(t, "[run](https://docs/a/Outer.Inner.html#run(int))", c.Methods[0].Doc)
	assert.Equal(t, "Outer_Inner", c.Native.Name)
}
