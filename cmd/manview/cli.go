package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"manview/internal/config"
	"manview/internal/service"
	"manview/internal/tui"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `help:"Path to YAML config file." type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"MANVIEW_LOG_LEVEL"`

	UI         UICmd         `cmd:"" default:"1" help:"Open the interactive viewer."`
	List       ListCmd       `cmd:"" help:"List man pages grouped by section."`
	Search     SearchCmd     `cmd:"" help:"Search man page names."`
	Show       ShowCmd       `cmd:"" help:"Print a rendered man page."`
	Random     RandomCmd     `cmd:"" help:"Print a random man page name and summary."`
	Version    VersionCmd    `cmd:"" help:"Print the version."`
	InitConfig InitConfigCmd `cmd:"" help:"Write the effective config to a YAML file."`
}

// Dependencies holds injected dependencies for commands.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.AppConfig
	ConfigPath string
	Logger     *slog.Logger
	Version    string
	Viewer     *service.ViewerService
}

// UICmd starts the terminal UI.
type UICmd struct{}

func (c *UICmd) Run(deps *Dependencies) error {
	m := tui.New(deps.Ctx, deps.Viewer, deps.Version)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(deps.Ctx)).Run()
	return err
}

// ListCmd prints the section index.
type ListCmd struct {
	Filter  string `short:"f" help:"Only names containing this text (case-insensitive)."`
	Section string `short:"s" help:"Only this section code."`
}

func (c *ListCmd) Run(deps *Dependencies) error {
	if diag := deps.Viewer.Load(deps.Ctx); diag != "" {
		fmt.Fprintln(deps.Stderr, diag)
		return nil
	}
	for _, sec := range deps.Viewer.Sections(c.Filter).List() {
		if c.Section != "" && sec.Code != c.Section {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s (%s)\n", sec.Label(), sec.Code)
		for _, name := range sec.Names {
			fmt.Fprintf(deps.Stdout, "  %s\n", name)
		}
	}
	return nil
}

// SearchCmd prints the ranked matches for a query.
type SearchCmd struct {
	Query string `arg:"" help:"Text to match against page names."`
}

func (c *SearchCmd) Run(deps *Dependencies) error {
	if diag := deps.Viewer.Load(deps.Ctx); diag != "" {
		fmt.Fprintln(deps.Stderr, diag)
		return nil
	}
	tiers := deps.Viewer.Suggest(c.Query)
	if tiers.Len() == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q\n", c.Query)
		return nil
	}
	printTier(deps.Stdout, "Exact Matches", tiers.Exact)
	printTier(deps.Stdout, "Starts With", tiers.Prefix)
	printTier(deps.Stdout, "Contains (Partial/Keyword)", tiers.Substring)
	return nil
}

func printTier(w io.Writer, header string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
}

// ShowCmd renders one page to stdout.
type ShowCmd struct {
	Name string `arg:"" help:"Man page name."`
	HTML bool   `help:"Print the formatter markup instead of terminal text."`
}

func (c *ShowCmd) Run(deps *Dependencies) error {
	v := deps.Viewer.Open(deps.Ctx, c.Name)
	if !v.OK() {
		fmt.Fprintln(deps.Stderr, v.Placeholder)
		return v.Err
	}
	if c.HTML {
		fmt.Fprintln(deps.Stdout, v.Page.Content)
		return nil
	}
	fmt.Fprintln(deps.Stdout, v.Text)
	return nil
}

// RandomCmd prints a random page.
type RandomCmd struct{}

func (c *RandomCmd) Run(deps *Dependencies) error {
	if diag := deps.Viewer.Load(deps.Ctx); diag != "" {
		fmt.Fprintln(deps.Stderr, diag)
		return nil
	}
	name, summary, ok := deps.Viewer.Random()
	if !ok {
		fmt.Fprintln(deps.Stdout, "No man pages found.")
		return nil
	}
	if summary == "" {
		fmt.Fprintln(deps.Stdout, name)
		if preview := deps.Viewer.Preview(deps.Ctx, name); preview != "" {
			for _, line := range strings.Split(preview, "\n") {
				fmt.Fprintln(deps.Stdout, "  "+line)
			}
		}
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%s - %s\n", name, summary)
	return nil
}

// VersionCmd prints the version string.
type VersionCmd struct{}

func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "manview %s\n", deps.Version)
	return nil
}

// InitConfigCmd writes the effective configuration.
type InitConfigCmd struct {
	Path string `arg:"" help:"Destination YAML file."`
}

func (c *InitConfigCmd) Run(deps *Dependencies) error {
	if err := config.Save(c.Path, deps.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "wrote %s\n", c.Path)
	return nil
}
