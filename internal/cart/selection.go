package cart

import (
	"sort"
)

// Selection maps a complement group title to the set of complement names
// chosen in it. Name order and duplicates carry no meaning.
type Selection map[string][]string

// Normalize returns a copy with names deduplicated and sorted and with
// empty groups dropped.
func (s Selection) Normalize() Selection {
	out := make(Selection, len(s))
	for group, names := range s {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		if len(set) == 0 {
			continue
		}

		sorted := make([]string, 0, len(set))
		for n := range set {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)
		out[group] = sorted
	}
	return out
}

// Groups returns the non-empty group titles in sorted order.
func (s Selection) Groups() []string {
	groups := make([]string, 0, len(s))
	for g, names := range s {
		if len(names) > 0 {
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)
	return groups
}

// Count is the number of distinct names selected in group.
func (s Selection) Count(group string) int {
	return len(s.Normalize()[group])
}

// Equal reports set equality per group. Empty groups are ignored.
func (s Selection) Equal(other Selection) bool {
	a, b := s.Normalize(), other.Normalize()
	if len(a) != len(b) {
		return false
	}
	for group, names := range a {
		theirs, ok := b[group]
		if !ok || len(theirs) != len(names) {
			return false
		}
		for i := range names {
			if names[i] != theirs[i] {
				return false
			}
		}
	}
	return true
}
