// Package match ranks page names against a query in three disjoint tiers.
package match

import (
	"sort"
	"strings"

	"manview/internal/domain"
)

// Rank classifies names against query, ignoring case:
// exact matches first, then names starting with query, then names
// containing it anywhere. A name lands in the first tier it qualifies for
// and no other. Each tier is sorted ignoring case. An empty query matches
// nothing.
func Rank(names []string, query string) domain.Tiers {
	var tiers domain.Tiers
	if query == "" {
		return tiers
	}
	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		lower := strings.ToLower(name)
		switch {
		case lower == q:
			tiers.Exact = append(tiers.Exact, name)
		case strings.HasPrefix(lower, q):
			tiers.Prefix = append(tiers.Prefix, name)
		case strings.Contains(lower, q):
			tiers.Substring = append(tiers.Substring, name)
		default:
			continue
		}
		seen[name] = struct{}{}
	}
	sortFold(tiers.Exact)
	sortFold(tiers.Prefix)
	sortFold(tiers.Substring)
	return tiers
}

func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}
