package apropos

import (
	"strings"

	"manview/internal/domain"
)

// ParseLine parses one listing line of the form
//
//	name[, alias...] (section) - summary
//
// Only the first comma-separated name is kept. It reports false for lines
// without a parenthesised section or with an empty name.
func ParseLine(line string) (domain.Entry, bool) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return domain.Entry{}, false
	}
	closeIdx := strings.IndexByte(line[open+1:], ')')
	if closeIdx < 0 {
		return domain.Entry{}, false
	}
	closeIdx += open + 1

	names := strings.TrimSpace(line[:open])
	name, _, _ := strings.Cut(names, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Entry{}, false
	}
	section := strings.TrimSpace(line[open+1 : closeIdx])

	var summary string
	rest := line[closeIdx+1:]
	if _, after, ok := strings.Cut(rest, " - "); ok {
		summary = strings.TrimSpace(after)
	} else {
		summary = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "-"))
	}

	return domain.Entry{Name: name, Section: section, Summary: summary}, true
}

// Parse parses every line, silently skipping malformed ones.
func Parse(lines []string) []domain.Entry {
	entries := make([]domain.Entry, 0, len(lines))
	for _, line := range lines {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// Describe returns the summary of the first entry named name.
func Describe(entries []domain.Entry, name string) (string, bool) {
	for _, e := range entries {
		if e.Name == name && e.Summary != "" {
			return e.Summary, true
		}
	}
	return "", false
}
