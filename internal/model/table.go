package model

import (
	"errors"
	"fmt"

	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
)

// ErrSealed is returned when registering into a sealed table.
var ErrSealed = errors.New("class table is sealed")

// DuplicateError reports two classes that map to the same native path.
type DuplicateError struct {
	Path     string
	Existing string
	Native   NativePath
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s maps to %s, already used by %s", e.Path, e.Native, e.Existing)
}

// Entry is one bound class.
type Entry struct {
	Class  *jvm.Class
	Config config.ClassConfig
	Native NativePath
}

// Table maps class paths to bound classes.
type Table struct {
	entries  map[string]*Entry
	order    []string
	byNative map[string]string
	sealed   bool
}

// NewTable returns an empty, unsealed table.
func NewTable() *Table {
	return &Table{
		entries:  map[string]*Entry{},
		byNative: map[string]string{},
	}
}

// Register adds a bound class. A class whose path has no Rust form, or whose
// native path is taken by a class registered earlier, is rejected and the
// table is left unchanged.
func (t *Table) Register(class *jvm.Class, cfg config.ClassConfig) (*Entry, error) {
	if t.sealed {
		return nil, ErrSealed
	}

	if existing, ok := t.entries[class.Path]; ok {
		return nil, &DuplicateError{Path: class.Path, Existing: existing.Class.Path, Native: existing.Native}
	}

	native, err := NewNativePath(class.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", class.Path, err)
	}

	key := native.String()
	if existing, ok := t.byNative[key]; ok {
		return nil, &DuplicateError{Path: class.Path, Existing: existing, Native: native}
	}

	e := &Entry{Class: class, Config: cfg, Native: native}
	t.entries[class.Path] = e
	t.byNative[key] = class.Path
	t.order = append(t.order, class.Path)

	return e, nil
}

// Seal ends the gather phase.
func (t *Table) Seal() { t.sealed = true }

// Sealed reports whether Seal was called.
func (t *Table) Sealed() bool { return t.sealed }

// Lookup returns the bound class at path.
func (t *Table) Lookup(path string) (*Entry, bool) {
	e, ok := t.entries[path]
	return e, ok
}

// Len returns the number of bound classes.
func (t *Table) Len() int { return len(t.order) }

// Entries returns every bound class in registration order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, len(t.order))
	for i, p := range t.order {
		out[i] = t.entries[p]
	}

	return out
}
