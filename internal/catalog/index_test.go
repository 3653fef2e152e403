package catalog_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manview/internal/catalog"
)

func TestBuildSearchIndex(t *testing.T) {
	t.Parallel()

	lines := []string{
		"zcat, gzip (1) - compress",
		"Xorg (1) - X server",
		"bad line",
		"ls (1) - list directory contents",
		"ls (1p) - list directory contents (POSIX)",
		"apropos (1) - search the manual page names",
	}
	index := catalog.BuildSearchIndex(lines)

	require.Len(t, index, 4)
	assert.Equal(t, []string{"apropos", "ls", "Xorg", "zcat"}, catalog.Names(index))
	assert.Equal(t, "ls (1) - list directory contents", index[1].Line)
}

func TestPick(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c"}
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		got, ok := catalog.Pick(names, r)
		require.True(t, ok)
		assert.Contains(t, names, got)
	}

	_, ok := catalog.Pick(nil, r)
	assert.False(t, ok)
	_, ok = catalog.Pick(names, nil)
	assert.False(t, ok)
}

func TestPick_Deterministic(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c", "d", "e"}
	a, _ := catalog.Pick(names, rand.New(rand.NewPCG(7, 7)))
	b, _ := catalog.Pick(names, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}
