package model

// Supertypes returns every bound class that path is assignable to, in
// discovery order. The walk follows declared superclasses and interfaces
// but only through bound classes; an unbound intermediate ends that branch.
// path itself is never included.
func (t *Table) Supertypes(path string) []string {
	start, ok := t.entries[path]
	if !ok {
		return nil
	}

	visited := map[string]bool{path: true}
	stack := []*Entry{start}

	var out []string

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, super := range e.Class.Supertypes() {
			if visited[super] {
				continue
			}

			visited[super] = true

			superEntry, ok := t.entries[super]
			if !ok {
				continue
			}

			out = append(out, super)
			stack = append(stack, superEntry)
		}
	}

	return out
}
