package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
	"binding-generator/internal/naming"
)

func class(path, super string, ifaces ...string) *jvm.Class {
	return &jvm.Class{Path: path, Access: jvm.AccPublic, SuperPath: super, Interfaces: ifaces}
}

func TestNewNativePath(t *testing.T) {
	np, err := NewNativePath("java/util/Map$Entry")
	require.NoError(t, err)
	assert.Equal(t, []string{"java", "util"}, np.Module)
	assert.Equal(t, "Map_Entry", np.Name)
	assert.Equal(t, "java::util", np.ModulePath())
	assert.Equal(t, "crate::java::util::Map_Entry", np.String())
	assert.Equal(t, "Map_Entry", np.RefFrom([]string{"java", "util"}))
	assert.Equal(t, "crate::java::util::Map_Entry", np.RefFrom([]string{"java"}))

	np, err = NewNativePath("org/impl/type")
	require.NoError(t, err)
	assert.Equal(t, []string{"org", "r#impl"}, np.Module)
	assert.Equal(t, "r#type", np.Name)

	np, err = NewNativePath("TopLevel")
	require.NoError(t, err)
	assert.Empty(t, np.Module)
	assert.Equal(t, "crate::TopLevel", np.String())
}

func TestNewNativePath_Invalid(t *testing.T) {
	for _, path := range []string{"a/Outer$1", "a/Outer$", "a//B", "a-b/C", "a/Café"} {
		_, err := NewNativePath(path)

		var ie *naming.IdentError
		assert.ErrorAs(t, err, &ie, path)
	}
}

func TestTable_RegisterAndSeal(t *testing.T) {
	tbl := NewTable()

	e, err := tbl.Register(class("a/B_C", "java/lang/Object"), config.ClassConfig{Bind: true})
	require.NoError(t, err)
	assert.Equal(t, "B_C", e.Native.Name)

	_, err = tbl.Register(class("a/B$C", "java/lang/Object"), config.ClassConfig{Bind: true})

	var de *DuplicateError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "a/B_C", de.Existing)
	assert.Equal(t, 1, tbl.Len())

	_, err = tbl.Register(class("a/B_C", "java/lang/Object"), config.ClassConfig{})
	require.ErrorAs(t, err, &de)

	tbl.Seal()
	assert.True(t, tbl.Sealed())

	_, err = tbl.Register(class("a/D", ""), config.ClassConfig{})
	assert.ErrorIs(t, err, ErrSealed)

	found, ok := tbl.Lookup("a/B_C")
	require.True(t, ok)
	assert.Same(t, e, found)

	_, ok = tbl.Lookup("a/B$C")
	assert.False(t, ok)
}

func TestTable_Supertypes(t *testing.T) {
	tbl := NewTable()

	for _, c := range []*jvm.Class{
		class("java/lang/Object", ""),
		class("a/Base", "java/lang/Object", "a/Iface"),
		class("a/Iface", "java/lang/Object"),
		class("a/Derived", "a/Base", "a/Iface", "a/Unbound"),
		class("a/Leaf", "a/Missing"),
	} {
		_, err := tbl.Register(c, config.ClassConfig{Bind: true})
		require.NoError(t, err)
	}

	tbl.Seal()

	got := tbl.Supertypes("a/Derived")
	assert.ElementsMatch(t, []string{"a/Base", "a/Iface", "java/lang/Object"}, got)
	assert.NotContains(t, got, "a/Derived")
	assert.Len(t, got, 3)

	assert.Empty(t, tbl.Supertypes("java/lang/Object"))
	assert.Empty(t, tbl.Supertypes("a/Leaf"))
	assert.Nil(t, tbl.Supertypes("a/Unknown"))

	// Discovery order is stable across calls.
	assert.Equal(t, got, tbl.Supertypes("a/Derived"))
}

func TestSelectors(t *testing.T) {
	c := &jvm.Class{
		Path: "a/C",
		Methods: []*jvm.Method{
			{Name: "pub", Access: jvm.AccPublic},
			{Name: "priv", Access: jvm.AccPrivate},
			{Name: "bridge", Access: jvm.AccPublic | jvm.AccBridge},
			{Name: "<clinit>", Access: jvm.AccStatic},
		},
		Fields: []*jvm.Field{
			{Name: "x", Access: jvm.AccPublic},
			{Name: "y", Access: jvm.AccPrivate},
		},
	}

	names := func(ms []*jvm.Method) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Name)
		}

		return out
	}

	assert.Equal(t, []string{"pub"}, names(SelectMethods(c, config.ClassConfig{})))
	assert.Equal(t, []string{"pub", "priv"}, names(SelectMethods(c, config.ClassConfig{BindPrivateMethods: true})))
	assert.Len(t, SelectFields(c, config.ClassConfig{}), 1)
	assert.Len(t, SelectFields(c, config.ClassConfig{BindPrivateFields: true}), 2)

	assert.False(t, ClassVisible(&jvm.Class{}, config.ClassConfig{}))
	assert.True(t, ClassVisible(&jvm.Class{}, config.ClassConfig{BindPrivateClasses: true}))
}

func TestProxyEligible(t *testing.T) {
	assert.True(t, ProxyEligible(&jvm.Method{Name: "run", Access: jvm.AccPublic | jvm.AccAbstract}))
	assert.True(t, ProxyEligible(&jvm.Method{Name: "toString", Access: jvm.AccPublic}))
	assert.False(t, ProxyEligible(&jvm.Method{Name: "<init>", Access: jvm.AccPublic}))
	assert.False(t, ProxyEligible(&jvm.Method{Name: "of", Access: jvm.AccPublic | jvm.AccStatic}))
	assert.False(t, ProxyEligible(&jvm.Method{Name: "getClass", Access: jvm.AccPublic | jvm.AccFinal}))
	assert.False(t, ProxyEligible(&jvm.Method{Name: "hidden", Access: jvm.AccPrivate}))
}
