package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"binding-generator/internal/classfile/classfiletest"
	"binding-generator/internal/config"
	"binding-generator/internal/diagnostic"
	"binding-generator/internal/jvm"
	"binding-generator/internal/pipeline"
)

const greeterFixture = `Greeter is an abstract class with one abstract and one concrete method,
proxied through a companion class.

-- binding-generator.toml --
[sources]
inputs = ["lib.jar"]
output = "out/bindings.rs"

[proxy]
package = "java_oxide.proxy"
output = "out/java"

[[doc]]
match = "com/example/**"
class-url = "https://example.com/{CLASS}.html"
method-url = "https://example.com/{CLASS}.html#{METHOD}({ARGUMENTS})"

[[include]]
match = "java/lang/*"
bind = true

[[include]]
match = "com/example/**"
proxy = true
-- want/bindings.rs.lines --
pub mod com {
pub mod example {
#[doc = "class [Greeter](https://example.com/com/example/Greeter.html)"]
pub enum Greeter {}
unsafe impl ::java_oxide::AssignableTo<crate::java::lang::Object> for Greeter {}
#[doc = "[Greeter](https://example.com/com/example/Greeter.html#Greeter())"]
pub fn new<'env>(__jni_env: ::java_oxide::Env<'env>) -> ::std::result::Result<::java_oxide::Local<'env, Self>, ::java_oxide::Local<'env, crate::java::lang::Throwable>> {
#[doc = "[greet](https://example.com/com/example/Greeter.html#greet(java.lang.String))"]
pub fn greet<'env>(self: &::java_oxide::Ref<'env, Self>, arg0: impl ::java_oxide::AsArg<crate::java::lang::String>) -> ::std::result::Result<::std::option::Option<::java_oxide::Local<'env, crate::java::lang::String>>, ::java_oxide::Local<'env, crate::java::lang::Throwable>> {
pub fn new_proxy<'env>(__jni_env: ::java_oxide::Env<'env>, proxy: ::std::sync::Arc<dyn GreeterProxy>)
pub trait GreeterProxy: ::std::marker::Send + ::std::marker::Sync + 'static {
fn greet<'env>(&self, env: ::java_oxide::Env<'env>, arg0: ::std::option::Option<::java_oxide::Ref<'env, crate::java::lang::String>>) -> ::java_oxide::Return<'env, crate::java::lang::String>;
fn size<'env>(&self, env: ::java_oxide::Env<'env>) -> i32;
extern "system" fn Java_java_1oxide_proxy_com_example_Greeter_native_1greet__JLjava_lang_String_2<'env>(
extern "system" fn Java_java_1oxide_proxy_com_example_Greeter_native_1size__J<'env>(
extern "system" fn Java_java_1oxide_proxy_com_example_Greeter_native_1finalize__J(
pub mod java {
pub mod lang {
#[doc = "class java/lang/Object"]
pub enum Object {}
unsafe impl ::java_oxide::AssignableTo<Object> for Throwable {}
#[doc = "final class java/lang/String"]
-- want/Greeter.java --
// Code generated by binding-generator. DO NOT EDIT.

package java_oxide.proxy.com.example;

@SuppressWarnings("rawtypes")
class Greeter extends com.example.Greeter {
    long ptr;

    private Greeter(long ptr) {
        this.ptr = ptr;
    }

    @Override
    protected void finalize() throws Throwable {
        native_finalize(this.ptr);
    }
    private native void native_finalize(long ptr);

    @Override
    public java.lang.String greet(java.lang.String arg0) {
        return native_greet(ptr, arg0);
    }
    private native java.lang.String native_greet(long ptr, java.lang.String arg0);

    @Override
    public int size() {
        return native_size(ptr);
    }
    private native int native_size(long ptr);
}
`

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

// setup extracts the fixture into a temp dir, writes lib.jar next to it and
// loads the config.
func setup(t *testing.T, fixture string, classes ...*jvm.Class) (string, *config.File, *txtar.Archive) {
	t.Helper()

	dir := t.TempDir()
	ar := txtar.Parse([]byte(fixture))

	for _, f := range ar.Files {
		if strings.HasPrefix(f.Name, "want/") {
			continue
		}

		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
	}

	require.NoError(t, classfiletest.WriteJar(filepath.Join(dir, "lib.jar"), classes...))

	cfg, err := config.LoadFile(filepath.Join(dir, "binding-generator.toml"))
	require.NoError(t, err)

	return dir, cfg, ar
}

func want(t *testing.T, ar *txtar.Archive, name string) string {
	t.Helper()

	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}

	require.Failf(t, "missing fixture file", "%s", name)

	return ""
}

func greeter(t *testing.T) *jvm.Class {
	return &jvm.Class{
		Path:      "com/example/Greeter",
		Access:    jvm.AccPublic | jvm.AccAbstract,
		SuperPath: "java/lang/Object",
		Methods: []*jvm.Method{
			method(t, "<init>", "()V", jvm.AccPublic),
			method(t, "greet", "(Ljava/lang/String;)Ljava/lang/String;", jvm.AccPublic|jvm.AccAbstract),
			method(t, "size", "()I", jvm.AccPublic),
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	dir, cfg, ar := setup(t, greeterFixture, append(runtimeClasses(), greeter(t))...)

	res, err := pipeline.Run(context.Background(), cfg, pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Inputs)
	assert.Equal(t, 4, res.Bound)
	assert.Equal(t, 2, res.Written)
	assert.Empty(t, res.Diagnostics.Errors)

	rust, err := os.ReadFile(filepath.Join(dir, "out", "bindings.rs"))
	require.NoError(t, err)

	for _, line := range strings.Split(want(t, ar, "want/bindings.rs.lines"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			assert.Contains(t, string(rust), line)
		}
	}

	java, err := os.ReadFile(filepath.Join(dir, "out", "java", "java_oxide", "proxy", "com", "example", "Greeter.java"))
	require.NoError(t, err)
	assert.Equal(t, want(t, ar, "want/Greeter.java"), string(java))

	again, err := pipeline.Run(context.Background(), cfg, pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Written)
}

func TestRun_DryRun(t *testing.T) {
	dir, cfg, _ := setup(t, greeterFixture, append(runtimeClasses(), greeter(t))...)

	res, err := pipeline.Run(context.Background(), cfg, pipeline.Options{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
	assert.NoFileExists(t, filepath.Join(dir, "out", "bindings.rs"))
}

const strictFixture = `-- binding-generator.toml --
[sources]
inputs = ["lib.jar"]
output = "bindings.rs"

[[include]]
match = "bad/**"
bind = true
`

func TestRun_Strict(t *testing.T) {
	bad := &jvm.Class{Path: "bad/X", Access: jvm.AccPublic, SuperPath: "java/lang/Object"}

	_, cfg, _ := setup(t, strictFixture, bad)

	res, err := pipeline.Run(context.Background(), cfg, pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Diagnostics.CountByCode()[diagnostic.CodeMissingRuntimeClass])
	assert.Empty(t, res.Plan.Classes)

	res, err = pipeline.Run(context.Background(), cfg, pipeline.Options{Strict: true})
	require.ErrorIs(t, err, pipeline.ErrStrict)
	assert.NotNil(t, res.Plan)
}

const invalidFixture = `-- binding-generator.toml --
[sources]
inputs = ["lib.jar"]
output = "bindings.rs"

[[include]]
match = "a/**"
proxy = true
`

func TestRun_InvalidConfig(t *testing.T) {
	_, cfg, _ := setup(t, invalidFixture)

	_, err := pipeline.Run(context.Background(), cfg, pipeline.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy.package")
}

func TestGather(t *testing.T) {
	cfg := &config.File{
		Includes: []config.IncludeRule{{Match: config.StringOrList{"a/**"}, Bind: true}},
	}

	classes := []*jvm.Class{
		{Path: "a/B$C", Access: jvm.AccPublic},
		{Path: "a/B_C", Access: jvm.AccPublic},
		{Path: "a/fn", Access: jvm.AccPublic},
		{Path: "a/ok-not", Access: jvm.AccPublic},
		{Path: "b/Skipped", Access: jvm.AccPublic},
	}

	table, diags := pipeline.Gather(classes, cfg, slogDiscard())
	assert.True(t, table.Sealed())
	assert.Equal(t, 2, table.Len())

	_, ok := table.Lookup("a/fn")
	assert.True(t, ok)

	counts := diags.CountByCode()
	assert.Equal(t, 1, counts[diagnostic.CodeDuplicateNativePath])
	assert.Equal(t, 1, counts[diagnostic.CodeIdentifier])
}
