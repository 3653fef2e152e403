package match_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"manview/internal/domain"
	"manview/internal/match"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		query string
		want  domain.Tiers
	}{
		{
			name:  "exact and prefix",
			names: []string{"ls", "lsof"},
			query: "ls",
			want:  domain.Tiers{Exact: []string{"ls"}, Prefix: []string{"lsof"}},
		},
		{
			name:  "substring only",
			names: []string{"grep"},
			query: "ep",
			want:  domain.Tiers{Substring: []string{"grep"}},
		},
		{
			name:  "case-insensitive across tiers",
			names: []string{"GREP", "grep", "egrep", "Grepper", "zgrep"},
			query: "Grep",
			want: domain.Tiers{
				Exact:     []string{"GREP", "grep"},
				Prefix:    []string{"Grepper"},
				Substring: []string{"egrep", "zgrep"},
			},
		},
		{
			name:  "tiers sorted ignoring case",
			names: []string{"stat", "Stash", "status", "strace", "ss"},
			query: "s",
			want:  domain.Tiers{Prefix: []string{"ss", "Stash", "stat", "status", "strace"}},
		},
		{
			name:  "name containing query twice stays in prefix",
			names: []string{"lsls"},
			query: "ls",
			want:  domain.Tiers{Prefix: []string{"lsls"}},
		},
		{
			name:  "empty query yields nothing",
			names: []string{"ls", "lsof"},
			query: "",
			want:  domain.Tiers{},
		},
		{
			name:  "no matches",
			names: []string{"ls"},
			query: "xyz",
			want:  domain.Tiers{},
		},
		{
			name:  "duplicate inputs appear once",
			names: []string{"ls", "ls", "lsof", "lsof"},
			query: "ls",
			want:  domain.Tiers{Exact: []string{"ls"}, Prefix: []string{"lsof"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, match.Rank(tt.names, tt.query))
		})
	}
}

func TestRank_TiersDisjointAndComplete(t *testing.T) {
	t.Parallel()

	names := []string{
		"ls", "lsof", "lsblk", "false", "else", "pulseaudio", "LS", "tls", "cls",
		"grep", "egrep", "tar", "star", "start", "Stat", "a", "aa", "aaa",
	}
	for _, q := range []string{"ls", "a", "st", "AR", "e", "aa", "x", "s"} {
		tiers := match.Rank(names, q)

		seen := map[string]int{}
		for _, n := range tiers.All() {
			seen[n]++
		}
		for n, c := range seen {
			assert.Equal(t, 1, c, "query %q: %s in %d tiers", q, n, c)
		}

		lq := strings.ToLower(q)
		for _, n := range names {
			_, ok := seen[n]
			assert.Equal(t, strings.Contains(strings.ToLower(n), lq), ok, "query %q name %q", q, n)
		}
		assert.Equal(t, len(seen), tiers.Len())
	}
}
