package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"

	"manview/internal/apropos"
	"manview/internal/catalog"
	"manview/internal/domain"
	"manview/internal/match"
	"manview/internal/render"
)

// PageRenderer renders one page by name.
type PageRenderer interface {
	Render(ctx context.Context, name string) (domain.Page, error)
}

// TextConverter turns a rendered page into terminal text.
type TextConverter interface {
	Text(page domain.Page) (string, error)
}

// View is the outcome of opening a page: either a page with its terminal
// text, or an error whose Placeholder replaces the viewer.
type View struct {
	Name        string
	Title       string
	Page        domain.Page
	Text        string
	Err         error
	Placeholder string
}

// OK reports whether the page rendered.
func (v View) OK() bool { return v.Err == nil }

// ViewerService is the application core shared by the terminal UI and the
// command line. Load must be called before the query methods; a reload
// replaces every derived structure.
type ViewerService struct {
	loader   *apropos.Loader
	renderer PageRenderer
	text     TextConverter
	rnd      *rand.Rand
	logger   *slog.Logger

	entries    []domain.Entry
	sections   *catalog.Sections
	index      []domain.SearchRecord
	names      []string
	diagnostic string
	loadErr    error
}

func NewViewerService(loader *apropos.Loader, renderer PageRenderer, text TextConverter, rnd *rand.Rand, logger *slog.Logger) *ViewerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ViewerService{
		loader:   loader,
		renderer: renderer,
		text:     text,
		rnd:      rnd,
		logger:   logger,
		sections: catalog.BuildSections(nil),
	}
}

// Load runs one catalog load and rebuilds the sections, the search index
// and the name list. It returns the diagnostic, empty on success.
func (s *ViewerService) Load(ctx context.Context) string {
	res := s.loader.Load(ctx)
	s.entries = res.Entries
	s.sections = catalog.BuildSections(res.Entries)
	s.index = catalog.BuildSearchIndex(res.Lines)
	s.names = catalog.Names(s.index)
	s.diagnostic = res.Diagnostic
	s.loadErr = res.Err
	s.logger.Debug("catalog ready",
		"entries", len(s.entries),
		"sections", s.sections.Len(),
		"names", len(s.names),
	)
	return s.diagnostic
}

// Diagnostic returns the message from the last load, empty on success.
func (s *ViewerService) Diagnostic() string { return s.diagnostic }

// LoadErr returns the classified error from the last load.
func (s *ViewerService) LoadErr() error { return s.loadErr }

// Sections returns the section index filtered by query.
func (s *ViewerService) Sections(query string) *catalog.Sections {
	return s.sections.Filter(query)
}

// Names returns every distinct page name in index order.
func (s *ViewerService) Names() []string { return s.names }

// Index returns the search index.
func (s *ViewerService) Index() []domain.SearchRecord { return s.index }

// Suggest ranks the cached names against query.
func (s *ViewerService) Suggest(query string) domain.Tiers {
	return match.Rank(s.names, query)
}

// Describe returns the listing summary for name.
func (s *ViewerService) Describe(name string) (string, bool) {
	return apropos.Describe(s.entries, name)
}

// Random picks a page name and its summary.
func (s *ViewerService) Random() (name, summary string, ok bool) {
	name, ok = catalog.Pick(s.names, s.rnd)
	if !ok {
		return "", "", false
	}
	summary, _ = s.Describe(name)
	return name, summary, true
}

// Open renders name and converts it for the terminal.
func (s *ViewerService) Open(ctx context.Context, name string) View {
	page, err := s.renderer.Render(ctx, name)
	if err != nil {
		return failedView(name, err)
	}
	text, err := s.text.Text(page)
	if err != nil {
		s.logger.Warn("text conversion failed", "page", name, "error", err)
		if page.Raw == "" {
			return failedView(name, err)
		}
		text = page.Raw
	}
	return View{Name: name, Title: render.Title(page), Page: page, Text: text}
}

// Preview renders name and returns its first few non-blank lines of text.
// It returns "" when the page cannot be rendered.
func (s *ViewerService) Preview(ctx context.Context, name string) string {
	v := s.Open(ctx, name)
	if !v.OK() {
		return ""
	}
	var out []string
	for _, line := range strings.Split(v.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == previewLines {
			break
		}
	}
	return strings.Join(out, "\n")
}

const previewLines = 3

func failedView(name string, err error) View {
	v := View{Name: name, Err: err}
	var re *render.RenderError
	if errors.As(err, &re) {
		v.Placeholder = re.Placeholder()
	} else {
		v.Placeholder = (&render.RenderError{Name: name}).Placeholder()
	}
	return v
}
