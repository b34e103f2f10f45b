package jvm

import "strings"

// PathParts splits a class path into its namespace, its enclosing classes
// and the leaf class name.
type PathParts struct {
	Namespace  []string
	Containing []string
	Leaf       string
}

// SplitPath splits "a/b/Outer$Mid$Leaf" into
// {[a b], [Outer Mid], Leaf}.
func SplitPath(classPath string) PathParts {
	var parts PathParts

	segments := strings.Split(classPath, "/")
	parts.Namespace = segments[:len(segments)-1]

	classes := strings.Split(segments[len(segments)-1], "$")
	parts.Containing = classes[:len(classes)-1]
	parts.Leaf = classes[len(classes)-1]

	return parts
}

// SimpleName returns the leaf class name of a class path.
func SimpleName(classPath string) string {
	return SplitPath(classPath).Leaf
}

// Package returns the namespace of a class path with '/' separators.
func Package(classPath string) string {
	return strings.Join(SplitPath(classPath).Namespace, "/")
}
