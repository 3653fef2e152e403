package catalog_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manview/internal/catalog"
	"manview/internal/domain"
)

func entries() []domain.Entry {
	return []domain.Entry{
		{Name: "ls", Section: "1"},
		{Name: "grep", Section: "1"},
		{Name: "Xorg", Section: "1"},
		{Name: "ls", Section: "1"},
		{Name: "open", Section: "2"},
		{Name: "lsof", Section: "8"},
		{Name: "printf", Section: "3p"},
		{Name: "printf", Section: "1"},
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"1":  "User Commands",
		"2":  "System Calls",
		"3":  "Library Functions",
		"8":  "System Administration",
		"n":  "New",
		"t":  "TeX",
		"3p": "Section 3p",
		"":   "Section ",
	}
	for code, want := range tests {
		assert.Equal(t, want, catalog.Label(code), "code %q", code)
	}
}

func TestBuildSections(t *testing.T) {
	t.Parallel()

	s := catalog.BuildSections(entries())

	assert.Equal(t, []string{"1", "2", "3p", "8"}, s.Codes())
	assert.Equal(t, []string{"Xorg", "grep", "ls", "printf"}, s.Names("1"))
	assert.Equal(t, []string{"printf"}, s.Names("3p"))
	assert.Equal(t, 7, s.Count())

	for _, sec := range s.List() {
		assert.True(t, sort.StringsAreSorted(sec.Names), "section %s not sorted", sec.Code)
		seen := map[string]bool{}
		for _, n := range sec.Names {
			assert.False(t, seen[n], "duplicate %s in section %s", n, sec.Code)
			seen[n] = true
		}
	}
	assert.Equal(t, "User Commands", s.List()[0].Label())
}

func TestBuildSections_Empty(t *testing.T) {
	t.Parallel()

	s := catalog.BuildSections(nil)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.List())
}

func TestSections_Filter(t *testing.T) {
	t.Parallel()

	s := catalog.BuildSections(entries())

	t.Run("empty query returns unfiltered structure", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, s, s.Filter(""))
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		t.Parallel()
		f := s.Filter("LS")
		assert.Equal(t, []string{"1", "8"}, f.Codes())
		assert.Equal(t, []string{"ls"}, f.Names("1"))
		assert.Equal(t, []string{"lsof"}, f.Names("8"))
	})

	t.Run("no match yields no sections", func(t *testing.T) {
		t.Parallel()
		f := s.Filter("zzz")
		assert.Zero(t, f.Len())
		assert.Empty(t, f.List())
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		t.Parallel()
		_ = s.Filter("x")
		require.Equal(t, 4, s.Len())
	})
}
