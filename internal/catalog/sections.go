// Package catalog groups parsed entries for hierarchical browsing and
// builds the name index used by search.
package catalog

import (
	"sort"
	"strings"

	"manview/internal/domain"
)

var sectionLabels = map[string]string{
	"1": "User Commands",
	"2": "System Calls",
	"3": "Library Functions",
	"4": "Device Files",
	"5": "File Formats",
	"6": "Games",
	"7": "Miscellaneous",
	"8": "System Administration",
	"9": "Kernel Routines",
	"n": "New",
	"l": "Local",
	"p": "Public",
	"o": "Old",
	"t": "TeX",
}

// Label returns the human label for a section code.
func Label(code string) string {
	if l, ok := sectionLabels[code]; ok {
		return l
	}
	return "Section " + code
}

// Section is one group of page names.
type Section struct {
	Code  string
	Names []string
}

func (s Section) Label() string { return Label(s.Code) }

// Sections maps section codes to sorted, deduplicated names. It is
// read-only once built; a reload builds a new value.
type Sections struct {
	codes  []string
	byCode map[string][]string
}

// BuildSections groups entries by section. Names are sorted in byte order.
func BuildSections(entries []domain.Entry) *Sections {
	seen := make(map[string]map[string]struct{})
	byCode := make(map[string][]string)
	for _, e := range entries {
		set, ok := seen[e.Section]
		if !ok {
			set = make(map[string]struct{})
			seen[e.Section] = set
		}
		if _, dup := set[e.Name]; dup {
			continue
		}
		set[e.Name] = struct{}{}
		byCode[e.Section] = append(byCode[e.Section], e.Name)
	}
	for _, names := range byCode {
		sort.Strings(names)
	}
	return newSections(byCode)
}

func newSections(byCode map[string][]string) *Sections {
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return &Sections{codes: codes, byCode: byCode}
}

// Codes returns the section codes in sorted order.
func (s *Sections) Codes() []string { return append([]string(nil), s.codes...) }

// Names returns the names in section code.
func (s *Sections) Names(code string) []string { return s.byCode[code] }

// List returns every section in code order.
func (s *Sections) List() []Section {
	out := make([]Section, 0, len(s.codes))
	for _, code := range s.codes {
		out = append(out, Section{Code: code, Names: s.byCode[code]})
	}
	return out
}

// Len returns the number of sections.
func (s *Sections) Len() int { return len(s.codes) }

// Count returns the number of names across all sections.
func (s *Sections) Count() int {
	n := 0
	for _, names := range s.byCode {
		n += len(names)
	}
	return n
}

// Filter keeps names containing query, ignoring case. Sections left empty
// are dropped. An empty query returns s itself.
func (s *Sections) Filter(query string) *Sections {
	if query == "" {
		return s
	}
	q := strings.ToLower(query)
	byCode := make(map[string][]string)
	for _, code := range s.codes {
		var kept []string
		for _, name := range s.byCode[code] {
			if strings.Contains(strings.ToLower(name), q) {
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			byCode[code] = kept
		}
	}
	return newSections(byCode)
}
