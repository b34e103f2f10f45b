package classfile

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"binding-generator/internal/jvm"
)

// ReadInputs decodes every class reachable from paths. Each path may be a
// .class file, a .jar archive or a directory searched for .class files.
// Inputs are decoded concurrently; the result keeps input order, and within
// an archive or directory classes are ordered by entry name.
func ReadInputs(ctx context.Context, paths []string) ([]*jvm.Class, error) {
	results := make([][]*jvm.Class, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range paths {
		g.Go(func() error {
			classes, err := readInput(ctx, p)
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}

			results[i] = classes

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*jvm.Class
	for _, classes := range results {
		all = append(all, classes...)
	}

	return all, nil
}

func readInput(ctx context.Context, path string) ([]*jvm.Class, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case info.IsDir():
		return readDir(ctx, path)
	case strings.HasSuffix(path, ".jar"):
		return ReadJar(ctx, path)
	case strings.HasSuffix(path, ".class"):
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		class, err := Parse(data)
		if err != nil {
			return nil, err
		}

		return []*jvm.Class{class}, nil
	default:
		return nil, fmt.Errorf("unsupported input type (want .class, .jar or a directory)")
	}
}

// ReadJar decodes every class entry of a JAR archive.
func ReadJar(ctx context.Context, path string) ([]*jvm.Class, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	files := slices.Clone(zr.File)
	slices.SortFunc(files, func(a, b *zip.File) int { return strings.Compare(a.Name, b.Name) })

	var classes []*jvm.Class

	for _, f := range files {
		if !isClassEntry(f.Name) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		class, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		classes = append(classes, class)
	}

	return classes, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func readDir(ctx context.Context, root string) ([]*jvm.Class, error) {
	var names []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && isClassEntry(filepath.ToSlash(path)) {
			names = append(names, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(names)

	classes := make([]*jvm.Class, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}

		class, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		classes = append(classes, class)
	}

	return classes, nil
}

// isClassEntry skips module and package descriptors and versioned or
// metadata entries under META-INF.
func isClassEntry(name string) bool {
	if !strings.HasSuffix(name, ".class") || strings.HasPrefix(name, "META-INF/") {
		return false
	}

	base := name[strings.LastIndexByte(name, '/')+1:]

	return base != "module-info.class" && base != "package-info.class"
}
