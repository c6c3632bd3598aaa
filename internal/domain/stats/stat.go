package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Stat is a single (id, value) pair
type Stat struct {
	ID    ID  `json:"id"`
	Value int `json:"value"`
}

// List is an unordered collection of stats. Lists are treated as values:
// every operation that changes entries returns a new List and leaves its
// input untouched.
type List []Stat

// Clone returns a copy that shares no backing array with l
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Get sums every entry matching id. Missing ids and empty lists yield 0.
func Get(list List, id ID) int {
	total := 0
	for _, s := range list {
		if s.ID == id {
			total += s.Value
		}
	}
	return total
}

// Set writes value into the first entry matching id and reports whether a
// match existed. Callers that need the stat must create it first; unknown ids
// are ignored rather than rejected.
func Set(list List, id ID, value int) (List, bool) {
	out := list.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Value = value
			// zero any duplicates so Get reflects the write
			for j := i + 1; j < len(out); j++ {
				if out[j].ID == id {
					out[j].Value = 0
				}
			}
			return out, true
		}
	}
	return out, false
}

// Add increments the stat by delta, inserting it when absent
func Add(list List, id ID, delta int) List {
	out, ok := Set(list, id, Get(list, id)+delta)
	if !ok {
		out = append(out, Stat{ID: id, Value: delta})
	}
	return out
}

// Reduce collapses duplicate ids into one entry per id by summation.
// Output is ordered by id.
func Reduce(list List) List {
	if len(list) == 0 {
		return List{}
	}

	sums := make(map[ID]int, len(list))
	for _, s := range list {
		sums[s.ID] += s.Value
	}

	out := make(List, 0, len(sums))
	for id, v := range sums {
		out = append(out, Stat{ID: id, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Merge concatenates lists and reduces the result
func Merge(lists ...List) List {
	var all List
	for _, l := range lists {
		all = append(all, l...)
	}
	return Reduce(all)
}

// ApplyOverrides replaces each matching stat in target with the override's
// value and appends overrides with no match.
func ApplyOverrides(target, overrides List) List {
	out := target.Clone()
	for _, o := range overrides {
		var ok bool
		out, ok = Set(out, o.ID, o.Value)
		if !ok {
			out = append(out, o)
		}
	}
	return out
}

// Scale multiplies every stat whose id is in ids by factor
func Scale(list List, factor int, ids ...ID) List {
	want := make(map[ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	out := list.Clone()
	for i := range out {
		if want[out[i].ID] {
			out[i].Value *= factor
		}
	}
	return out
}

// Format renders the list with the catalog's short names, ordered by id
func Format(c *Catalog, list List) string {
	reduced := Reduce(list)
	parts := make([]string, 0, len(reduced))
	for _, s := range reduced {
		name := fmt.Sprintf("#%d", s.ID)
		if d, err := c.Lookup(s.ID); err == nil {
			name = d.Short
		}
		parts = append(parts, fmt.Sprintf("%s %+d", name, s.Value))
	}
	return strings.Join(parts, ", ")
}
