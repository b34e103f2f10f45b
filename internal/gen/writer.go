package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file, creating parent directories as
// needed. Files whose current content is identical are left untouched so
// build tools watching mtimes do not rebuild. It returns the number of
// files actually written.
func WriteFiles(files []GeneratedFile) (int, error) {
	written := 0

	for _, file := range files {
		changed, err := writeIfChanged(file.Filename, file.Content)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if changed {
			written++
		}
	}

	return written, nil
}

func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return false, err
	}

	return true, nil
}
