package domain

import "context"

// Entry is one parsed line of the documentation index listing.
type Entry struct {
	Name    string
	Section string
	Summary string
}

// SearchRecord pairs a page name with the raw listing line it came from.
type SearchRecord struct {
	Name string
	Line string
}

// Tiers holds the ranked matcher output. A name appears in at most one tier.
type Tiers struct {
	Exact     []string
	Prefix    []string
	Substring []string
}

// Len returns the total number of matched names.
func (t Tiers) Len() int { return len(t.Exact) + len(t.Prefix) + len(t.Substring) }

// All returns every matched name in tier order.
func (t Tiers) All() []string {
	out := make([]string, 0, t.Len())
	out = append(out, t.Exact...)
	out = append(out, t.Prefix...)
	return append(out, t.Substring...)
}

// Format identifies how a rendered page's content is encoded.
type Format int

const (
	// FormatHTML is markup produced by the formatter's HTML mode.
	FormatHTML Format = iota
	// FormatPreformatted is plain formatter output wrapped in a <pre> block.
	FormatPreformatted
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatPreformatted:
		return "preformatted"
	default:
		return "unknown"
	}
}

// Page is a successfully rendered manual page. It is never persisted.
type Page struct {
	Name    string
	Format  Format
	Content string
	// Raw is the unwrapped formatter output for preformatted pages.
	Raw string
}

// Lister runs the documentation index listing and returns its stdout.
type Lister interface {
	List(ctx context.Context) ([]byte, error)
}

// Formatter runs the page formatting tool for a single page name.
// When html is false the tool is invoked in plain mode.
type Formatter interface {
	Format(ctx context.Context, name string, html bool) ([]byte, error)
}
