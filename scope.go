package metrics

import "strings"

const scopeDelimiter = "."

// Scope is an ordered sequence of name segments representing nesting, such as
// "secret.supersecret". Scope is an immutable value: deriving a child scope
// returns a new value and never mutates the parent.
type Scope struct {
	path string
}

// RootScope is the empty scope. Metrics created under it carry their bare
// name.
var RootScope = Scope{}

// Scoped returns a new Scope with the given segments appended. Empty
// segments are skipped.
func (s Scope) Scoped(segments ...string) Scope {
	path := s.path

	for _, seg := range segments {
		path = joinScope(path, seg)
	}

	return Scope{path: path}
}

// IsRoot reports whether the scope has no segments.
func (s Scope) IsRoot() bool { return s.path == "" }

// Segments returns the scope path split into its segments.
func (s Scope) Segments() []string {
	if s.path == "" {
		return nil
	}

	return strings.Split(s.path, scopeDelimiter)
}

func (s Scope) String() string { return s.path }

// qualify renders a metric name under the scope.
func (s Scope) qualify(name string) string { return joinScope(s.path, name) }

func joinScope(ss ...string) string {
	var res []string

	for _, s := range ss {
		if s != "" {
			res = append(res, s)
		}
	}

	return strings.Join(res, scopeDelimiter)
}
