package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLabelOrderIndependence(t *testing.T) {
	var (
		scope = RootScope.Scoped("db")

		k1 = newKey(scope, "rows_updated", []Label{
			{K: "table", V: "posts"},
			{K: "database", V: "primary"},
		})
		k2 = newKey(scope, "rows_updated", []Label{
			{K: "database", V: "primary"},
			{K: "table", V: "posts"},
		})
	)

	assert.Equal(t, k1.id, k2.id)
	assert.Equal(t, k1.Hash(), k2.Hash())
	assert.Equal(t, k1.Labels(), k2.Labels())
}

func TestKeyDistinctness(t *testing.T) {
	base := newKey(RootScope, "foo", nil)

	for _, tt := range []struct {
		name  string
		other Key
	}{
		{name: "different name", other: newKey(RootScope, "bar", nil)},
		{name: "different scope", other: newKey(RootScope.Scoped("a"), "foo", nil)},
		{
			name:  "different labels",
			other: newKey(RootScope, "foo", []Label{{K: "a", V: "1"}}),
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base.id, tt.other.id)
		})
	}
}

func TestKeyAmbiguousLabelEncoding(t *testing.T) {
	k1 := newKey(RootScope, "foo", []Label{{K: "ab", V: "c"}})
	k2 := newKey(RootScope, "foo", []Label{{K: "a", V: "bc"}})

	assert.NotEqual(t, k1.id, k2.id)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "foo", newKey(RootScope, "foo", nil).String())
	assert.Equal(
		t,
		"a.b.foo{bar=buz,fiz=baz}",
		newKey(
			RootScope.Scoped("a", "b"),
			"foo",
			[]Label{{K: "fiz", V: "baz"}, {K: "bar", V: "buz"}},
		).String(),
	)
}

func TestKeyAccessors(t *testing.T) {
	k := newKey(RootScope.Scoped("a"), "foo", []Label{{K: "bar", V: "buz"}})

	assert.Equal(t, "foo", k.Name())
	assert.Equal(t, "a.foo", k.FullName())
	assert.Equal(t, "a", k.Scope().String())
	assert.Equal(t, map[string]string{"bar": "buz"}, k.LabelMap())
}
