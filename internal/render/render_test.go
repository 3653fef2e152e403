package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manview/internal/domain"
	"manview/internal/render"
	"manview/internal/tool"
)

type call struct {
	name string
	html bool
}

type fakeFormatter struct {
	html, plain       []byte
	htmlErr, plainErr error
	calls             []call
}

func (f *fakeFormatter) Format(_ context.Context, name string, asHTML bool) ([]byte, error) {
	f.calls = append(f.calls, call{name, asHTML})
	if asHTML {
		return f.html, f.htmlErr
	}
	return f.plain, f.plainErr
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("uses html mode when it works", func(t *testing.T) {
		t.Parallel()

		f := &fakeFormatter{html: []byte("<html><body><p>ls</p></body></html>")}
		page, err := render.NewRenderer(f, nil).Render(context.Background(), "ls")

		require.NoError(t, err)
		assert.Equal(t, domain.FormatHTML, page.Format)
		assert.Equal(t, "<html><body><p>ls</p></body></html>", page.Content)
		assert.Equal(t, []call{{"ls", true}}, f.calls)
	})

	t.Run("falls back to plain on html failure", func(t *testing.T) {
		t.Parallel()

		f := &fakeFormatter{htmlErr: errors.New("groff missing"), plain: []byte("LS(1)  a < b\n")}
		page, err := render.NewRenderer(f, nil).Render(context.Background(), "ls")

		require.NoError(t, err)
		assert.Equal(t, domain.FormatPreformatted, page.Format)
		assert.Equal(t, "<pre>LS(1)  a &lt; b\n</pre>", page.Content)
		assert.Equal(t, "LS(1)  a < b\n", page.Raw)
		assert.Equal(t, []call{{"ls", true}, {"ls", false}}, f.calls)
	})

	t.Run("falls back to plain on empty html", func(t *testing.T) {
		t.Parallel()

		f := &fakeFormatter{html: []byte("  \n"), plain: []byte("text")}
		page, err := render.NewRenderer(f, nil).Render(context.Background(), "ls")

		require.NoError(t, err)
		assert.Equal(t, domain.FormatPreformatted, page.Format)
	})

	t.Run("strips overstrike sequences", func(t *testing.T) {
		t.Parallel()

		f := &fakeFormatter{htmlErr: errors.New("no"), plain: []byte("N\bNA\bAM\bME\bE _\bx")}
		page, err := render.NewRenderer(f, nil).Render(context.Background(), "ls")

		require.NoError(t, err)
		assert.Equal(t, "NAME x", page.Raw)
	})

	t.Run("both modes fail", func(t *testing.T) {
		t.Parallel()

		htmlErr := &tool.Error{Binary: "man", Kind: tool.ErrToolFailed}
		plainErr := &tool.Error{Binary: "man", Kind: tool.ErrToolFailed}
		f := &fakeFormatter{htmlErr: htmlErr, plainErr: plainErr}
		_, err := render.NewRenderer(f, nil).Render(context.Background(), "nonexistent123")

		require.Error(t, err)
		assert.True(t, render.IsRenderError(err))
		var re *render.RenderError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "nonexistent123", re.Name)
		assert.Equal(t, "Error: Man page for 'nonexistent123' not found or could not be rendered.", re.Placeholder())
		assert.ErrorIs(t, err, tool.ErrToolFailed)
	})

	t.Run("empty plain output counts as failure", func(t *testing.T) {
		t.Parallel()

		f := &fakeFormatter{htmlErr: errors.New("no")}
		_, err := render.NewRenderer(f, nil).Render(context.Background(), "x")

		require.Error(t, err)
		assert.ErrorIs(t, err, render.ErrEmptyOutput)
	})
}

func TestManFormatter_Exec(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	man := filepath.Join(dir, "fake-man")
	script := `#!/bin/sh
if [ "$1" = "-Thtml" ]; then
  if [ "$2" = "html-broken" ]; then exit 1; fi
  if [ "$2" = "nonexistent123" ]; then exit 16; fi
  echo "<html><body><p>$2</p></body></html>"
  exit 0
fi
if [ "$1" = "nonexistent123" ]; then
  echo "No manual entry for $1" >&2
  exit 16
fi
echo "plain $1 width=$MANWIDTH pager=$MANPAGER"
`
	require.NoError(t, os.WriteFile(man, []byte(script), 0o755))
	r := render.NewRenderer(render.NewManFormatter(man, 72), nil)

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		page, err := r.Render(context.Background(), "ls")
		require.NoError(t, err)
		assert.Equal(t, domain.FormatHTML, page.Format)
		assert.Contains(t, page.Content, "<p>ls</p>")
	})

	t.Run("plain fallback", func(t *testing.T) {
		t.Parallel()
		page, err := r.Render(context.Background(), "html-broken")
		require.NoError(t, err)
		assert.Equal(t, domain.FormatPreformatted, page.Format)
		assert.Equal(t, "plain html-broken width=72 pager=cat\n", page.Raw)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render(context.Background(), "nonexistent123")
		var re *render.RenderError
		require.ErrorAs(t, err, &re)
		assert.Contains(t, re.Placeholder(), "nonexistent123")
	})
}
