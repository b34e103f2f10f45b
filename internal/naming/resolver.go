package naming

import (
	"fmt"
	"slices"
	"strings"

	"binding-generator/internal/jvm"
)

// Reserved names generated into every class impl block.
const (
	ClassRefName = "__class_global_ref"
	NewProxyName = "new_proxy"
)

// CollisionError reports names that still collide after every colliding
// method reached the longest style.
type CollisionError struct {
	Names []string
}

func (e *CollisionError) Error() string {
	return "unresolvable name collision: " + strings.Join(e.Names, ", ")
}

// Rejection is a member left out because its name cannot be escaped.
type Rejection struct {
	Member string
	Err    error
}

// Resolution is the collision-free naming of one class's members.
type Resolution struct {
	Methods  map[*jvm.Method]string
	Styles   map[*jvm.Method]Style
	Fields   map[*jvm.Field]FieldNames
	Rejected []Rejection
}

// Resolve assigns every method and field a unique Rust name within one impl
// block. reserved names count as already taken.
//
// Methods start in the Short style. Each pass names every member, and any
// method whose name occurs more than once moves one style up in the next
// pass. Field names never change. Resolve fails when a pass still has
// collisions and none of the colliding methods can move up.
func Resolve(methods []*jvm.Method, fields []*jvm.Field, reserved []string) (*Resolution, error) {
	res := &Resolution{
		Methods: map[*jvm.Method]string{},
		Styles:  map[*jvm.Method]Style{},
		Fields:  map[*jvm.Field]FieldNames{},
	}

	for _, f := range fields {
		names, err := FieldAccessorNames(f)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Member: f.Name, Err: err})
			continue
		}

		res.Fields[f] = names
	}

	styles := make(map[*jvm.Method]Style, len(methods))
	active := make([]*jvm.Method, 0, len(methods))

	for _, m := range methods {
		styles[m] = Short
		active = append(active, m)
	}

	for {
		counts := map[string]int{}
		for _, name := range reserved {
			counts[name]++
		}

		for _, names := range res.Fields {
			for _, name := range names.Names() {
				counts[name]++
			}
		}

		named := make(map[*jvm.Method]string, len(active))
		kept := active[:0:0]

		for _, m := range active {
			name, err := RustIdent(MethodName(m, styles[m]))
			if err != nil {
				res.Rejected = append(res.Rejected, Rejection{Member: m.Name, Err: err})
				continue
			}

			named[m] = name
			kept = append(kept, m)
			counts[name]++
		}

		active = kept

		next, escalated, colliding := escalate(active, named, styles, counts)
		if len(colliding) == 0 {
			res.Methods = named
			res.Styles = styles

			return res, nil
		}

		if !escalated {
			return nil, &CollisionError{Names: colliding}
		}

		styles = next
	}
}

// escalate computes the styles of the next pass without touching the
// current assignment.
func escalate(
	methods []*jvm.Method,
	named map[*jvm.Method]string,
	styles map[*jvm.Method]Style,
	counts map[string]int,
) (next map[*jvm.Method]Style, escalated bool, colliding []string) {
	for name, n := range counts {
		if n > 1 {
			colliding = append(colliding, name)
		}
	}

	slices.Sort(colliding)

	next = make(map[*jvm.Method]Style, len(styles))

	for _, m := range methods {
		next[m] = styles[m]

		if counts[named[m]] < 2 {
			continue
		}

		if s, ok := styles[m].Next(); ok {
			next[m] = s
			escalated = true
		}
	}

	return next, escalated, colliding
}

// String summarizes the resolution for debug output.
func (r *Resolution) String() string {
	var lines []string
	for m, name := range r.Methods {
		lines = append(lines, fmt.Sprintf("%s%s -> %s (%s)", m.Name, m.Descriptor, name, r.Styles[m]))
	}

	slices.Sort(lines)

	return strings.Join(lines, "\n")
}
