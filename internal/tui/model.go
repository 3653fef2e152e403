package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"manview/internal/catalog"
	"manview/internal/domain"
	"manview/internal/service"
	"manview/internal/shell"
)

// ViewerPort is the TUI-facing subset of the viewer service.
type ViewerPort interface {
	Load(ctx context.Context) string
	Sections(query string) *catalog.Sections
	Suggest(query string) domain.Tiers
	Random() (name, summary string, ok bool)
	Open(ctx context.Context, name string) service.View
	Preview(ctx context.Context, name string) string
}

type catalogLoadedMsg struct{ diagnostic string }

type pageOpenedMsg struct{ view service.View }

type previewMsg struct{ name, text string }

type row struct {
	text   string
	header bool
}

// Model is the Bubble Tea model for the viewer. Screen changes go through
// the shell state machine.
type Model struct {
	ctx     context.Context
	service ViewerPort
	machine shell.Machine
	version string

	filter   textinput.Model
	query    textinput.Model
	viewport viewport.Model

	width, height int
	ready         bool
	loading       bool
	rendering     bool

	diagnostic    string
	randomName    string
	randomSummary string
	randomPreview string

	rows   []row
	cursor int
	offset int

	page   service.View
	status string
}

// New creates a new TUI model instance.
func New(ctx context.Context, svc ViewerPort, version string) Model {
	filter := textinput.New()
	filter.Prompt = "Search: "
	filter.Placeholder = "Type to filter man pages..."
	filter.CharLimit = 0

	query := textinput.New()
	query.Prompt = "> "
	query.Placeholder = "Type to search man pages..."
	query.CharLimit = 0

	return Model{
		ctx:      ctx,
		service:  svc,
		version:  version,
		filter:   filter,
		query:    query,
		viewport: viewport.New(0, 0),
		loading:  true,
		status:   "Loading man pages...",
	}
}

// Init starts the catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCatalog())
}

// State returns the current screen.
func (m Model) State() shell.State { return m.machine.State() }

func (m Model) loadCatalog() tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return catalogLoadedMsg{diagnostic: svc.Load(ctx)}
	}
}

func (m Model) loadPreview(name string) tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return previewMsg{name: name, text: svc.Preview(ctx, name)}
	}
}

func (m Model) openPage(name string) tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return pageOpenedMsg{view: svc.Open(ctx, name)}
	}
}

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width, m.height = msg.Width, msg.Height
		fw, fh := pageBoxStyle.GetFrameSize()
		m.viewport.Width = max(20, msg.Width-fw)
		m.viewport.Height = max(3, msg.Height-headerLines-footerLines-fh)
		return m, nil
	case catalogLoadedMsg:
		m.loading = false
		m.diagnostic = msg.diagnostic
		m.status = "Ready."
		if msg.diagnostic != "" {
			m.status = msg.diagnostic
		}
		cmd := m.pickRandom()
		m.refreshRows()
		return m, cmd
	case previewMsg:
		// a newer pick may have replaced the page in the meantime
		if msg.name == m.randomName && m.randomSummary == "" {
			m.randomPreview = msg.text
		}
		return m, nil
	case pageOpenedMsg:
		m.rendering = false
		m.page = msg.view
		if msg.view.OK() {
			m.viewport.SetContent(msg.view.Text)
			m.viewport.GotoTop()
			m.status = msg.view.Name
		} else {
			m.viewport.SetContent("")
			m.status = msg.view.Placeholder
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch m.machine.State() {
		case shell.Welcome:
			return m.updateWelcome(msg)
		case shell.Browse, shell.Search:
			return m.updateList(msg)
		case shell.ViewPage:
			return m.updateViewPage(msg)
		}
	}
	var cmd tea.Cmd
	switch m.machine.State() {
	case shell.Browse:
		m.filter, cmd = m.filter.Update(msg)
	case shell.Search:
		m.query, cmd = m.query.Update(msg)
	}
	return m, cmd
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "b":
		return m.fire(shell.ShowBrowse)
	case "s", "/":
		return m.fire(shell.ShowSearch)
	case "r":
		return m, m.pickRandom()
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := &m.filter
	if m.machine.State() == shell.Search {
		input = &m.query
	}
	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyDown:
		m.move(1)
		return m, nil
	case tea.KeyEnter:
		if name, ok := m.selected(); ok && !m.rendering {
			mm, cmd := m.fire(shell.Open)
			next := mm.(Model)
			next.rendering = true
			next.status = "Rendering " + name + "..."
			return next, tea.Batch(cmd, next.openPage(name))
		}
		m.refreshRows()
		return m, nil
	}
	var cmd tea.Cmd
	before := input.Value()
	*input, cmd = input.Update(msg)
	if input.Value() != before {
		m.refreshRows()
	}
	return m, cmd
}

func (m Model) updateViewPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "b":
		mm, cmd := m.fire(shell.Back)
		next := mm.(Model)
		pick := next.pickRandom()
		return next, tea.Batch(cmd, pick)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// fire applies ev to the state machine and focuses the input of the new
// screen. Disallowed events leave the model untouched.
func (m Model) fire(ev shell.Event) (tea.Model, tea.Cmd) {
	state, err := m.machine.Fire(ev)
	if err != nil {
		return m, nil
	}
	m.filter.Blur()
	m.query.Blur()
	var cmd tea.Cmd
	switch state {
	case shell.Browse:
		cmd = m.filter.Focus()
		m.refreshRows()
	case shell.Search:
		cmd = m.query.Focus()
		m.refreshRows()
	}
	return m, cmd
}

// pickRandom chooses a new welcome page. Pages without a listing summary
// get a rendered preview, loaded by the returned command.
func (m *Model) pickRandom() tea.Cmd {
	m.randomPreview = ""
	if m.loading {
		return nil
	}
	name, summary, ok := m.service.Random()
	if !ok {
		m.randomName, m.randomSummary = "", ""
		return nil
	}
	m.randomName, m.randomSummary = name, summary
	if summary == "" {
		return m.loadPreview(name)
	}
	return nil
}

func (m *Model) refreshRows() {
	if m.loading {
		m.rows = nil
		return
	}
	switch m.machine.State() {
	case shell.Browse:
		m.rows = browseRows(m.service.Sections(m.filter.Value()))
	case shell.Search:
		m.rows = searchRows(m.service.Suggest(m.query.Value()))
	default:
		m.rows = nil
	}
	m.cursor, m.offset = -1, 0
	m.move(1)
}

func browseRows(sections *catalog.Sections) []row {
	var rows []row
	for _, sec := range sections.List() {
		rows = append(rows, row{text: sec.Label(), header: true})
		for _, name := range sec.Names {
			rows = append(rows, row{text: name})
		}
	}
	return rows
}

func searchRows(t domain.Tiers) []row {
	var rows []row
	add := func(header string, names []string) {
		if len(names) == 0 {
			return
		}
		rows = append(rows, row{text: header, header: true})
		for _, n := range names {
			rows = append(rows, row{text: n})
		}
	}
	add("Exact Matches", t.Exact)
	add("Starts With", t.Prefix)
	add("Contains (Partial/Keyword)", t.Substring)
	return rows
}

// move steps the cursor by dir over selectable rows, skipping headers.
func (m *Model) move(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if !m.rows[i].header {
			m.cursor = i
			break
		}
	}
	if m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].header {
		m.cursor = -1
	}
	h := m.listHeight()
	if m.cursor >= 0 {
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+h {
			m.offset = m.cursor - h + 1
		}
	}
	// keep the header of the first visible group on screen
	if m.offset > 0 && m.cursor == m.offset && m.rows[m.offset-1].header {
		m.offset--
	}
}

func (m Model) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].header {
		return "", false
	}
	return m.rows[m.cursor].text, true
}

const (
	headerLines = 2
	footerLines = 2
)

func (m Model) listHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(3, m.height-headerLines-footerLines-2)
}

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var body string
	switch m.machine.State() {
	case shell.Welcome:
		body = m.viewWelcome()
	case shell.Browse:
		body = m.viewList("Man Pages", m.filter)
	case shell.Search:
		body = m.viewList("Search Man Pages", m.query)
	case shell.ViewPage:
		body = m.viewPage()
	}
	status := statusStyle.Render(m.status)
	return body + "\n" + status + "\n" + hintStyle.Render(m.hints())
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to Man Viewer!"))
	b.WriteString("\n\n")
	b.WriteString(menuStyle.Render("[s] Search Man Pages\n[b] View All Man Pages"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Random Man Page:"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.randomName == "":
		b.WriteString("No man pages found.\n")
		b.WriteString(summaryStyle.Render("No man pages available."))
	default:
		b.WriteString(linkStyle.Render(m.randomName))
		if m.randomSummary != "" {
			b.WriteString("\n")
			b.WriteString(summaryStyle.Render(m.randomSummary))
		} else if m.randomPreview != "" {
			b.WriteString("\n")
			b.WriteString(summaryStyle.Render(m.randomPreview))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(summaryStyle.Render("Version " + m.version))
	return b.String()
}

func (m Model) viewList(title string, input textinput.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
	if m.diagnostic != "" && m.machine.State() == shell.Browse {
		b.WriteString(errorStyle.Render(m.diagnostic))
		return b.String()
	}
	end := min(len(m.rows), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		switch {
		case r.header:
			b.WriteString(headerStyle.Render(r.text))
		case i == m.cursor:
			b.WriteString(cursorStyle.Render("> " + r.text))
		default:
			b.WriteString("  " + r.text)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewPage() string {
	nav := menuStyle.Render("← Back to Main [esc]")
	if m.rendering {
		return nav + "\n" + "Rendering..."
	}
	if !m.page.OK() {
		return nav + "\n\n" + errorStyle.Render(m.page.Placeholder)
	}
	title := titleStyle.Render(m.page.Title)
	scroll := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	return nav + "  " + title + "  " + summaryStyle.Render(scroll) + "\n" + pageBoxStyle.Render(m.viewport.View())
}

func (m Model) hints() string {
	switch m.machine.State() {
	case shell.Welcome:
		return "s search • b browse • r new random page • q quit"
	case shell.Browse, shell.Search:
		return "↑/↓ select • enter open • ctrl+c quit"
	case shell.ViewPage:
		return "↑/↓/pgup/pgdn scroll • esc back • q quit"
	}
	return ""
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	menuStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	linkStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pageBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
