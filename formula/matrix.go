package formula

import "sort"

// Matrix describes the build variant an output directory holds, e.g.
// {"arch": {"amd64"}, "os": {"linux"}}.
type Matrix struct {
	Require map[string][]string
}

// Combinations returns the cartesian product of Require. Keys are sorted and
// values within a combination are joined with "-".
func (m Matrix) Combinations() []string {
	if len(m.Require) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m.Require))
	for k := range m.Require {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []string{""}
	for _, k := range keys {
		values := m.Require[k]
		if len(values) == 0 {
			continue
		}
		next := make([]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				if prev == "" {
					next = append(next, v)
				} else {
					next = append(next, prev+"-"+v)
				}
			}
		}
		result = next
	}
	return result
}

// String returns the first combination, which names a single-variant matrix.
func (m Matrix) String() string {
	if c := m.Combinations(); len(c) > 0 {
		return c[0]
	}
	return ""
}
