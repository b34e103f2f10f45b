package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
)

func rule() *config.DocRule {
	return &config.DocRule{
		ClassURL:  "https://developer.android.com/reference/{CLASS}.html",
		MethodURL: "https://developer.android.com/reference/{CLASS}.html#{METHOD}({ARGUMENTS})",
		FieldURL:  "https://developer.android.com/reference/{CLASS}.html#{FIELD}",
		Sep:       config.DefaultSeparators(),
	}
}

func method(t *testing.T, name, desc string, access jvm.AccessFlags) *jvm.Method {
	t.Helper()

	d, err := jvm.ParseMethodDescriptor(desc)
	require.NoError(t, err)

	return &jvm.Method{Name: name, Descriptor: d, Access: access}
}

func TestClass(t *testing.T) {
	link, ok := Class(rule(), "android/view/View$OnClickListener")
	require.True(t, ok)
	assert.Equal(t, "View.OnClickListener", link.Label)
	assert.Equal(t, "https://developer.android.com/reference/android/view/View.OnClickListener.html", link.URL)
	assert.Equal(t,
		"[View.OnClickListener](https://developer.android.com/reference/android/view/View.OnClickListener.html)",
		link.Markdown())

	_, ok = Class(rule(), "a/b-c/D")
	assert.False(t, ok)

	_, ok = Class(nil, "a/B")
	assert.False(t, ok)
}

func TestClass_Placeholders(t *testing.T) {
	r := rule()
	r.ClassURL = "https://x/{CLASS.LOWER}/{CLASS.OUTER}/{CLASS.INNER}"
	r.Sep.ClassNamespace = "."

	link, ok := Class(r, "java/util/Map$Entry")
	require.True(t, ok)
	assert.Equal(t, "https://x/java.util.map.entry/Map.Entry/Entry", link.URL)
}

func TestMethod(t *testing.T) {
	m := method(t, "format", "(Ljava/lang/String;[[I[Ljava/lang/Object;)Ljava/lang/String;", jvm.AccPublic|jvm.AccVarargs)

	link, ok := Method(rule(), "java/lang/String", m)
	require.True(t, ok)
	assert.Equal(t, "format", link.Label)
	assert.Equal(t,
		"https://developer.android.com/reference/java/lang/String.html#format(java.lang.String,int[][],java.lang.Object...)",
		link.URL)

	plain := method(t, "wrap", "([B)V", jvm.AccPublic)
	link, ok = Method(rule(), "java/nio/ByteBuffer", plain)
	require.True(t, ok)
	assert.Contains(t, link.URL, "#wrap(byte[])")
}

func TestMethod_Constructor(t *testing.T) {
	ctor := method(t, "<init>", "(Ljava/util/Map$Entry;)V", jvm.AccPublic)

	link, ok := Method(rule(), "a/Outer$Inner", ctor)
	require.True(t, ok)
	assert.Equal(t, "Inner", link.Label)
	assert.Equal(t, "https://developer.android.com/reference/a/Outer.Inner.html#Inner(java.util.Map.Entry)", link.URL)

	r := rule()
	r.ConstructorURL = "https://c/{CLASS.INNER}"
	link, ok = Method(r, "a/Outer$Inner", ctor)
	require.True(t, ok)
	assert.Equal(t, "https://c/Inner", link.URL)

	r = rule()
	r.MethodURL = ""
	_, ok = Method(r, "a/B", ctor)
	assert.False(t, ok)
}

func TestMethod_InvalidName(t *testing.T) {
	_, ok := Method(rule(), "a/B", method(t, "lambda$x$0", "()V", jvm.AccPrivate))
	assert.False(t, ok)
}

func TestField(t *testing.T) {
	link, ok := Field(rule(), "android/R$id", &jvm.Field{Name: "button1"})
	require.True(t, ok)
	assert.Equal(t, "button1", link.Label)
	assert.Equal(t, "https://developer.android.com/reference/android/R.id.html#button1", link.URL)

	_, ok = Field(rule(), "a/B", &jvm.Field{Name: "this$0"})
	assert.False(t, ok)

	r := rule()
	r.FieldURL = ""
	_, ok = Field(r, "a/B", &jvm.Field{Name: "x"})
	assert.False(t, ok)
}
