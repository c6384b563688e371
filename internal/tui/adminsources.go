package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MayankLuthyagi/newsly/internal/feedcheck"
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

type sourcesLoadedMsg struct {
	gen     int
	sources []newsapi.Source
	err     error
}

type feedProbedMsg struct {
	gen   int
	title string
	err   error
}

type sourceSavedMsg struct {
	err error
}

type sourceDeletedMsg struct {
	id  string
	err error
}

type sourceFormField int

const (
	formName sourceFormField = iota
	formURL
	formCategory
	formFieldCount
)

type adminSourcesPage struct {
	deps       deps
	loadedOnce bool

	sources []newsapi.Source
	table   *table.Table
	cursor  int
	gen     int

	editing bool
	editID  string
	inputs  [formFieldCount]textinput.Model
	focused sourceFormField
	probing bool
	formErr string

	errText string
	status  string
	ready   bool
	width   int
	height  int
}

func newAdminSourcesPage(d deps) adminSourcesPage {
	p := adminSourcesPage{deps: d}
	placeholders := [formFieldCount]string{"source name", "rss feed url", "category"}
	for i := range p.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		p.inputs[i] = in
	}
	return p
}

func (m *adminSourcesPage) loadCmd() tea.Cmd {
	m.loadedOnce = true
	m.gen++
	gen := m.gen
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		sources, err := d.client.Sources(ctx)
		return sourcesLoadedMsg{gen: gen, sources: sources, err: err}
	}
}

// probeFeedCmd validates an RSS URL by actually parsing it. The feed
// title comes back so an empty name field can be prefilled.
func (m *adminSourcesPage) probeFeedCmd(rawURL string) tea.Cmd {
	m.gen++
	gen := m.gen
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		rep, err := feedcheck.New(d.cfg.Timeout()).Check(ctx, rawURL)
		if err != nil {
			return feedProbedMsg{gen: gen, err: err}
		}
		return feedProbedMsg{gen: gen, title: rep.Title}
	}
}

func (m *adminSourcesPage) saveCmd(id string, in newsapi.SourceInput) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		if id == "" {
			return sourceSavedMsg{err: d.client.CreateSource(ctx, in)}
		}
		return sourceSavedMsg{err: d.client.UpdateSource(ctx, id, in)}
	}
}

func (m *adminSourcesPage) deleteCmd(id string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		return sourceDeletedMsg{id: id, err: d.client.DeleteSource(ctx, id)}
	}
}

func (m adminSourcesPage) Init() tea.Cmd {
	return nil
}

func (m adminSourcesPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sourcesLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.errText = "Failed to load sources: " + msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.sources = msg.sources
		if m.cursor >= len(m.sources) {
			m.cursor = max(0, len(m.sources)-1)
		}
		m.rebuildTable()
		return m, nil
	case feedProbedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.probing = false
		if msg.err != nil {
			m.formErr = "Feed check failed: " + msg.err.Error()
			return m, nil
		}
		if strings.TrimSpace(m.inputs[formName].Value()) == "" && msg.title != "" {
			m.inputs[formName].SetValue(msg.title)
		}
		return m.submitForm()
	case sourceSavedMsg:
		if msg.err != nil {
			m.formErr = "Save rejected: " + msg.err.Error()
			m.editing = true
			return m, nil
		}
		m.editing = false
		m.status = "Source saved"
		return m, m.loadCmd()
	case sourceDeletedMsg:
		if msg.err != nil {
			m.errText = "Delete rejected: " + msg.err.Error()
			return m, nil
		}
		m.status = "Source deleted"
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.rebuildTable()
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m adminSourcesPage) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "n":
		return m, func() tea.Msg { return goToAdminNewsMsg{} }
	case "r":
		return m, m.loadCmd()
	case "j", "down":
		if m.cursor < len(m.sources)-1 {
			m.cursor++
			m.rebuildTable()
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.rebuildTable()
		}
		return m, nil
	case "a":
		return m.startForm(newsapi.Source{})
	case "e", "enter":
		if m.cursor < len(m.sources) {
			return m.startForm(m.sources[m.cursor])
		}
		return m, nil
	case "d":
		if m.cursor < len(m.sources) {
			return m, m.deleteCmd(m.sources[m.cursor].ID)
		}
		return m, nil
	}
	return m, nil
}

func (m adminSourcesPage) startForm(src newsapi.Source) (tea.Model, tea.Cmd) {
	m.editing = true
	m.editID = src.ID
	m.formErr = ""
	m.status = ""
	m.inputs[formName].SetValue(src.SourceName)
	m.inputs[formURL].SetValue(src.RSSURL)
	m.inputs[formCategory].SetValue(src.Category)
	m.focused = formName
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[formName].Focus()
	return m, textinput.Blink
}

func (m adminSourcesPage) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		m.probing = false
		return m, nil
	case "tab", "down":
		return m.focusField((m.focused + 1) % formFieldCount)
	case "shift+tab", "up":
		return m.focusField((m.focused - 1 + formFieldCount) % formFieldCount)
	case "enter":
		if m.focused < formFieldCount-1 {
			return m.focusField(m.focused + 1)
		}
		rawURL := strings.TrimSpace(m.inputs[formURL].Value())
		if rawURL == "" {
			m.formErr = "An RSS URL is required"
			return m, nil
		}
		m.formErr = ""
		m.probing = true
		return m, m.probeFeedCmd(rawURL)
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m adminSourcesPage) focusField(f sourceFormField) (tea.Model, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = f
	m.inputs[m.focused].Focus()
	return m, textinput.Blink
}

func (m adminSourcesPage) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[formName].Value())
	if name == "" {
		m.formErr = "A source name is required"
		return m, nil
	}
	in := newsapi.SourceInput{
		SourceName: name,
		RSSURL:     strings.TrimSpace(m.inputs[formURL].Value()),
		Category:   strings.TrimSpace(m.inputs[formCategory].Value()),
	}
	return m, m.saveCmd(m.editID, in)
}

func (m *adminSourcesPage) rebuildTable() {
	if !m.ready {
		return
	}
	width := m.width - 2
	nameWidth := max(16, width*28/100)
	urlWidth := max(24, width*48/100)
	catWidth := max(10, width*16/100)

	headers := []string{
		truncateString("Name", nameWidth),
		truncateString("RSS URL", urlWidth),
		truncateString("Category", catWidth),
	}

	var rows [][]string
	for _, src := range m.sources {
		rows = append(rows, []string{
			truncateString(src.SourceName, nameWidth),
			truncateString(src.RSSURL, urlWidth),
			truncateString(src.Category, catWidth),
		})
	}

	m.table = styledTable(width, headers, rows, m.cursor)
}

func (m adminSourcesPage) View() string {
	if !m.ready {
		return "...Loading"
	}

	title := lipgloss.NewStyle().
		Foreground(accentColor()).
		Bold(true).
		Render("Newsly Admin — Sources")

	if m.editing {
		return pageLayout(m.renderForm(title))
	}

	sections := []string{title}
	if m.errText != "" {
		sections = append(sections, banner(m.errText))
	}
	if len(m.sources) == 0 {
		sections = append(sections, "No sources configured yet. Press a to add one.")
	} else if m.table != nil {
		sections = append(sections, m.table.Render())
	}
	if m.status != "" {
		sections = append(sections, statusLine(m.status))
	}
	sections = append(sections, helpBar([]string{
		"j/k: move", "a: add", "e: edit", "d: delete", "n: articles", "r: refresh", "q: quit",
	}))
	return pageLayout(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m adminSourcesPage) renderForm(title string) string {
	heading := "Add source"
	if m.editID != "" {
		heading = "Edit source"
	}

	lines := []string{
		title,
		"",
		lipgloss.NewStyle().Bold(true).Render(heading),
		"Name:     " + m.inputs[formName].View(),
		"RSS URL:  " + m.inputs[formURL].View(),
		"Category: " + m.inputs[formCategory].View(),
	}
	if m.probing {
		lines = append(lines, "", "Checking the feed...")
	}
	if m.formErr != "" {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(errorColor()).Render(m.formErr))
	}
	lines = append(lines, "", helpBar([]string{"tab: next field", "enter: save", "esc: cancel"}))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
