package metrics

import (
	"strings"

	"github.com/upfluence/metrics/internal/hash"
)

// Key is the canonical identity of a metric: a name, a scope, and a set of
// labels. Two keys built from the same name and scope and from label sets
// containing the same pairs, in any order, compare equal. Keys are immutable.
type Key struct {
	scope  Scope
	name   string
	labels []Label

	id keyID
}

// keyID is the comparable form used as the registry map key. Labels are
// encoded sorted by key with separators no label string can contain.
type keyID struct {
	scope  string
	name   string
	labels string
}

// newKey canonicalizes the label groups and builds the identity. Duplicate
// label keys resolve last-wins.
func newKey(scope Scope, name string, groups ...[]Label) Key {
	ls := canonicalLabels(groups...)

	return Key{
		scope:  scope,
		name:   name,
		labels: ls,
		id: keyID{
			scope:  scope.path,
			name:   name,
			labels: encodeLabels(ls),
		},
	}
}

// Name returns the bare metric name, without the scope prefix.
func (k Key) Name() string { return k.name }

// Scope returns the scope the metric was created under.
func (k Key) Scope() Scope { return k.scope }

// FullName returns the scope-qualified name, e.g. "secret.supersecret.widgets".
func (k Key) FullName() string { return k.scope.qualify(k.name) }

// Labels returns the canonical labels, sorted by key. The returned slice must
// not be mutated.
func (k Key) Labels() []Label { return k.labels }

// LabelMap returns the labels as a fresh map.
func (k Key) LabelMap() map[string]string {
	res := make(map[string]string, len(k.labels))

	for _, l := range k.labels {
		res[l.K] = l.V
	}

	return res
}

// Hash returns a fnv64a hash of the canonical identity.
func (k Key) Hash() uint64 {
	h := hash.Add(hash.Add(hash.New(), k.id.scope), k.id.name)

	return hash.Add(h, k.id.labels)
}

func (k Key) String() string {
	if len(k.labels) == 0 {
		return k.FullName()
	}

	var sb strings.Builder

	sb.WriteString(k.FullName())
	sb.WriteByte('{')

	for i, l := range k.labels {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(l.K)
		sb.WriteByte('=')
		sb.WriteString(l.V)
	}

	sb.WriteByte('}')

	return sb.String()
}

func (id keyID) less(other keyID) bool {
	if id.scope != other.scope {
		return id.scope < other.scope
	}

	if id.name != other.name {
		return id.name < other.name
	}

	return id.labels < other.labels
}

func encodeLabels(ls []Label) string {
	if len(ls) == 0 {
		return ""
	}

	var sb strings.Builder

	for _, l := range ls {
		sb.WriteString(l.K)
		sb.WriteByte(0x1f)
		sb.WriteString(l.V)
		sb.WriteByte(0x1e)
	}

	return sb.String()
}
