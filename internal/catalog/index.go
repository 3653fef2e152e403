package catalog

import (
	"math/rand/v2"
	"sort"
	"strings"

	"manview/internal/apropos"
	"manview/internal/domain"
)

// BuildSearchIndex returns one record per distinct name, keeping the first
// line seen, sorted by name ignoring case. Malformed lines are skipped.
func BuildSearchIndex(lines []string) []domain.SearchRecord {
	seen := make(map[string]struct{}, len(lines))
	index := make([]domain.SearchRecord, 0, len(lines))
	for _, line := range lines {
		e, ok := apropos.ParseLine(line)
		if !ok {
			continue
		}
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		index = append(index, domain.SearchRecord{Name: e.Name, Line: line})
	}
	sort.SliceStable(index, func(i, j int) bool {
		return strings.ToLower(index[i].Name) < strings.ToLower(index[j].Name)
	})
	return index
}

// Names returns the record names in index order.
func Names(index []domain.SearchRecord) []string {
	names := make([]string, len(index))
	for i, r := range index {
		names[i] = r.Name
	}
	return names
}

// Pick returns a random name drawn with r.
func Pick(names []string, r *rand.Rand) (string, bool) {
	if len(names) == 0 || r == nil {
		return "", false
	}
	return names[r.IntN(len(names))], true
}
