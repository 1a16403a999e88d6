package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelPairs(t *testing.T) {
	for _, tt := range []struct {
		name    string
		in      []string
		want    []Label
		wantErr error
	}{
		{name: "empty", in: nil, want: []Label{}},
		{
			name: "pairs",
			in:   []string{"table", "posts", "database", "primary"},
			want: []Label{
				{K: "table", V: "posts"},
				{K: "database", V: "primary"},
			},
		},
		{
			name:    "unpaired",
			in:      []string{"table", "posts", "database"},
			wantErr: ErrUnpairedLabel,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ls, err := LabelPairs(tt.in...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ls)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, ls)
		})
	}
}

func TestCanonicalLabels(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   [][]Label
		want []Label
	}{
		{name: "empty", in: nil, want: nil},
		{
			name: "sorted by key",
			in:   [][]Label{{{K: "b", V: "2"}, {K: "a", V: "1"}}},
			want: []Label{{K: "a", V: "1"}, {K: "b", V: "2"}},
		},
		{
			name: "duplicate key last wins within group",
			in:   [][]Label{{{K: "a", V: "1"}, {K: "a", V: "2"}}},
			want: []Label{{K: "a", V: "2"}},
		},
		{
			name: "later group wins",
			in: [][]Label{
				{{K: "a", V: "default"}, {K: "b", V: "kept"}},
				{{K: "a", V: "override"}},
			},
			want: []Label{{K: "a", V: "override"}, {K: "b", V: "kept"}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalLabels(tt.in...))
		})
	}
}
