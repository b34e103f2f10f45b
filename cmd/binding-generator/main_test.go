package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binding-generator/internal/classfile/classfiletest"
	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, config.Logging{}, 0)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = newLogger(&buf, config.Logging{}, 1)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = newLogger(&buf, config.Logging{Level: "error", Format: "json"}, 0)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Error("boom", "class", "a/B")
	assert.Contains(t, buf.String(), `"msg":"boom"`)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "binding-generator.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	valid := writeConfig(t, `
[sources]
inputs = ["lib.jar"]
output = "bindings.rs"

[[include]]
match = "java.lang.*"
bind = true
`)

	out, err := execute("check", "--config", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration OK (1 include rules, 0 doc rules)")

	invalid := writeConfig(t, `
[sources]
output = "bindings.rs"

[[include]]
match = "a/**"
proxy = true
`)

	out, err = execute("check", "--config", invalid)
	require.Error(t, err)
	assert.Contains(t, out, "proxy.package")
	assert.Contains(t, out, "sources.inputs")
}

func TestInspectCommand(t *testing.T) {
	path := writeConfig(t, `
[sources]
inputs = ["lib.jar"]
output = "bindings.rs"

[[include]]
match = "java/lang/*"
bind = true
`)

	d, err := jvm.ParseMethodDescriptor("(I)Ljava/lang/String;")
	require.NoError(t, err)

	require.NoError(t, classfiletest.WriteJar(filepath.Join(filepath.Dir(path), "lib.jar"),
		&jvm.Class{Path: "java/lang/Object", Access: jvm.AccPublic},
		&jvm.Class{Path: "java/lang/Throwable", Access: jvm.AccPublic, SuperPath: "java/lang/Object"},
		&jvm.Class{
			Path:      "java/lang/String",
			Access:    jvm.AccPublic | jvm.AccFinal,
			SuperPath: "java/lang/Object",
			Methods:   []*jvm.Method{{Name: "valueOf", Descriptor: d, Access: jvm.AccPublic | jvm.AccStatic}},
		},
	))

	out, err := execute("inspect", "--config", path, "java.lang.String")
	require.NoError(t, err)
	assert.Contains(t, out, "== java/lang/String")
	assert.Contains(t, out, "valueOf(I)Ljava/lang/String; -> valueOf (short)")
	assert.Contains(t, out, `CallFn: (string) (len=27) "call_static_object_method_a"`)

	_, err = execute("inspect", "--config", path, "a.Missing")
	assert.ErrorContains(t, err, "not bound")

	_, err = execute("inspect", "--config", path, "java.lang.Strng")
	assert.ErrorContains(t, err, "did you mean java/lang/String?")
}
