package metrics

import "sort"

// Label is a single key/value pair attached to a metric identity.
type Label struct {
	K, V string
}

// LabelKV builds a Label.
func LabelKV(k, v string) Label { return Label{K: k, V: v} }

// LabelPairs converts alternating key/value strings into labels. An odd
// number of strings is malformed input and returns ErrUnpairedLabel rather
// than being accepted as a truncated set.
func LabelPairs(kvs ...string) ([]Label, error) {
	if len(kvs)%2 != 0 {
		return nil, ErrUnpairedLabel
	}

	ls := make([]Label, 0, len(kvs)/2)

	for i := 0; i < len(kvs); i += 2 {
		ls = append(ls, Label{K: kvs[i], V: kvs[i+1]})
	}

	return ls, nil
}

// canonicalLabels merges the given label groups into a single set sorted by
// key. Later occurrences of a key, within a group or across groups, win.
func canonicalLabels(groups ...[]Label) []Label {
	var n int

	for _, g := range groups {
		n += len(g)
	}

	if n == 0 {
		return nil
	}

	kvs := make(map[string]string, n)

	for _, g := range groups {
		for _, l := range g {
			kvs[l.K] = l.V
		}
	}

	res := make([]Label, 0, len(kvs))

	for k, v := range kvs {
		res = append(res, Label{K: k, V: v})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].K < res[j].K })

	return res
}
