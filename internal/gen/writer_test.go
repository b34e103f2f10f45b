package gen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.rs")
	files := []GeneratedFile{{Filename: path, Content: []byte("pub enum A {}\n")}}

	n, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	n, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	files[0].Content = []byte("pub enum B {}\n")
	n, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pub enum B {}\n", string(got))
}

func TestTidy(t *testing.T) {
	in := "\n\nimpl A {\n\n    fn a() {}   \n\n\n    fn b() {}\n\n}\n\n"
	assert.Equal(t, "impl A {\n    fn a() {}\n\n    fn b() {}\n}\n", tidy(in))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", indent("a\n\nb", "  "))
	assert.Equal(t, "a", indent("a", ""))
}
