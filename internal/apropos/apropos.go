// Package apropos loads the system documentation catalog from the index
// listing tool and parses its line-oriented output.
package apropos

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"manview/internal/domain"
	"manview/internal/tool"
)

// ErrNoMatches reports that the listing ran but produced no parsable entries.
var ErrNoMatches = errors.New("no manual pages found")

// Lister runs apropos with a wildcard query.
type Lister struct {
	Runner *tool.Runner
	Query  string
}

// NewLister returns a Lister for binary. An empty binary means "apropos"
// and an empty query means ".".
func NewLister(binary, query string) *Lister {
	if binary == "" {
		binary = "apropos"
	}
	if query == "" {
		query = "."
	}
	return &Lister{Runner: &tool.Runner{Binary: binary}, Query: query}
}

func (l *Lister) List(ctx context.Context) ([]byte, error) {
	return l.Runner.Run(ctx, l.Query)
}

// Result is the outcome of one catalog load. Err is nil on success;
// otherwise Diagnostic holds a one-line message for the user.
type Result struct {
	Entries    []domain.Entry
	Lines      []string
	Diagnostic string
	Err        error
}

// Loader turns listing output into entries. It never fails hard: tool
// problems are reported through Result.
type Loader struct {
	Lister domain.Lister
	Logger *slog.Logger
}

func NewLoader(lister domain.Lister, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{Lister: lister, Logger: logger}
}

func (l *Loader) Load(ctx context.Context) Result {
	out, err := l.Lister.List(ctx)
	if err != nil {
		res := Result{Err: err, Diagnostic: Diagnose(err)}
		l.Logger.Warn("catalog load failed", "error", err)
		return res
	}

	lines := SplitLines(out)
	entries := Parse(lines)
	if len(entries) == 0 {
		l.Logger.Warn("catalog empty", "lines", len(lines))
		return Result{Lines: lines, Err: ErrNoMatches, Diagnostic: Diagnose(ErrNoMatches)}
	}
	l.Logger.Debug("catalog loaded", "lines", len(lines), "entries", len(entries))
	return Result{Entries: entries, Lines: lines}
}

// Diagnose renders err as the one-line text shown in place of the catalog.
func Diagnose(err error) string {
	var te *tool.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, tool.ErrToolNotFound):
		binary := "apropos"
		if errors.As(err, &te) {
			binary = te.Binary
		}
		return fmt.Sprintf("Error: '%s' command not found.", binary)
	case errors.Is(err, tool.ErrToolFailed):
		detail := err.Error()
		if errors.As(err, &te) && te.Stderr != "" {
			detail = te.Stderr
		}
		return "Error loading man pages: " + firstLine(detail)
	case errors.Is(err, ErrNoMatches):
		return "No man pages found."
	default:
		return "Error loading man pages: " + firstLine(err.Error())
	}
}

// SplitLines splits listing output into lines, dropping blank ones.
func SplitLines(out []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
