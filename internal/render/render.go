// Package render obtains formatted manual pages from the external page
// formatter, falling back from HTML mode to plain text.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"manview/internal/domain"
	"manview/internal/tool"
)

// ErrEmptyOutput reports that the formatter exited cleanly but printed nothing.
var ErrEmptyOutput = errors.New("empty output")

// RenderError reports that a page could not be rendered in either mode.
type RenderError struct {
	Name     string
	HTMLErr  error
	PlainErr error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: html: %v; plain: %v", e.Name, e.HTMLErr, e.PlainErr)
}

func (e *RenderError) Unwrap() []error { return []error{e.HTMLErr, e.PlainErr} }

// Placeholder is the text shown instead of the page viewer.
func (e *RenderError) Placeholder() string {
	return fmt.Sprintf("Error: Man page for '%s' not found or could not be rendered.", e.Name)
}

// IsRenderError reports whether err is, or wraps, a *RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// ManFormatter runs man(1) in HTML or plain mode.
type ManFormatter struct {
	Runner *tool.Runner
}

// NewManFormatter returns a formatter for binary ("man" when empty). A
// positive width is passed to man as MANWIDTH for plain output.
func NewManFormatter(binary string, width int) *ManFormatter {
	if binary == "" {
		binary = "man"
	}
	env := []string{"MANPAGER=cat", "PAGER=cat"}
	if width > 0 {
		env = append(env, "MANWIDTH="+strconv.Itoa(width))
	}
	return &ManFormatter{Runner: &tool.Runner{Binary: binary, Env: env}}
}

func (f *ManFormatter) Format(ctx context.Context, name string, asHTML bool) ([]byte, error) {
	if asHTML {
		return f.Runner.Run(ctx, "-Thtml", name)
	}
	return f.Runner.Run(ctx, name)
}

// Renderer wraps a Formatter with the HTML-then-plain fallback.
type Renderer struct {
	Formatter domain.Formatter
	Logger    *slog.Logger
}

func NewRenderer(f domain.Formatter, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{Formatter: f, Logger: logger}
}

// Render returns the page as HTML when the formatter's HTML mode works,
// otherwise as escaped plain text inside a <pre> block. When both modes
// fail the error is a *RenderError.
func (r *Renderer) Render(ctx context.Context, name string) (domain.Page, error) {
	out, htmlErr := r.Formatter.Format(ctx, name, true)
	if htmlErr == nil && len(bytes.TrimSpace(out)) > 0 {
		return domain.Page{Name: name, Format: domain.FormatHTML, Content: string(out)}, nil
	}
	if htmlErr == nil {
		htmlErr = ErrEmptyOutput
	}
	r.Logger.Warn("html render failed, retrying plain", "page", name, "error", htmlErr)

	out, plainErr := r.Formatter.Format(ctx, name, false)
	if plainErr == nil && len(bytes.TrimSpace(out)) > 0 {
		raw := stripOverstrike(string(out))
		return domain.Page{
			Name:    name,
			Format:  domain.FormatPreformatted,
			Content: "<pre>" + html.EscapeString(raw) + "</pre>",
			Raw:     raw,
		}, nil
	}
	if plainErr == nil {
		plainErr = ErrEmptyOutput
	}
	r.Logger.Warn("plain render failed", "page", name, "error", plainErr)
	return domain.Page{}, &RenderError{Name: name, HTMLErr: htmlErr, PlainErr: plainErr}
}

// stripOverstrike removes nroff backspace sequences (bold "c\bc",
// underline "_\bc") that some formatters emit when not on a terminal.
func stripOverstrike(s string) string {
	if !strings.ContainsRune(s, '\b') {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
