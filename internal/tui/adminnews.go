package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MayankLuthyagi/newsly/internal/admin"
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

type adminListLoadedMsg struct {
	gen int
	res newsapi.FeedResult
	err error
}

type allowToggledMsg struct {
	id   string
	prev *bool
	err  error
}

type articleDeletedMsg struct {
	id  string
	err error
}

type articleSavedMsg struct {
	err error
}

type articleFormField int

const (
	afTitle articleFormField = iota
	afSummary
	afLink
	afCategory
	afFieldCount
)

// filterField cycles category -> source -> allow.
type filterField int

const (
	filterCategory filterField = iota
	filterSource
	filterAllow
)

type adminNewsPage struct {
	deps     deps
	username string
	listing  *admin.Listing

	table  *table.Table
	cursor int

	filtering   bool
	filterOn    filterField
	filterInput textinput.Model

	editing   bool
	editID    string
	formBase  newsapi.ArticleInput
	formInput [afFieldCount]textinput.Model
	formFocus articleFormField
	formErr   string

	status string
	ready  bool
	width  int
	height int
}

func newAdminNewsPage(d deps, username string) adminNewsPage {
	in := textinput.New()
	in.CharLimit = 64
	p := adminNewsPage{
		deps:        d,
		username:    username,
		listing:     admin.NewListing(0),
		filterInput: in,
	}
	placeholders := [afFieldCount]string{"title", "summary", "link", "category"}
	for i := range p.formInput {
		fi := textinput.New()
		fi.Placeholder = placeholders[i]
		fi.CharLimit = 512
		p.formInput[i] = fi
	}
	return p
}

func (m *adminNewsPage) loadCmd() tea.Cmd {
	gen := m.listing.BeginLoad()
	fq := m.listing.Query()
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		res, err := d.client.AdminList(ctx, fq)
		return adminListLoadedMsg{gen: gen, res: res, err: err}
	}
}

func (m *adminNewsPage) toggleAllowCmd(id string, prev *bool, next bool) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		return allowToggledMsg{id: id, prev: prev, err: d.client.SetAllow(ctx, id, next)}
	}
}

func (m *adminNewsPage) saveArticleCmd(id string, in newsapi.ArticleInput) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		if id == "" {
			return articleSavedMsg{err: d.client.CreateArticle(ctx, in)}
		}
		return articleSavedMsg{err: d.client.UpdateArticle(ctx, id, in)}
	}
}

func (m *adminNewsPage) deleteCmd(id string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		return articleDeletedMsg{id: id, err: d.client.DeleteArticle(ctx, id)}
	}
}

func (m adminNewsPage) Init() tea.Cmd {
	return nil
}

func (m adminNewsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adminListLoadedMsg:
		if msg.err != nil {
			m.listing.ApplyError(msg.gen, msg.err)
		} else if m.listing.ApplyResult(msg.gen, msg.res) {
			if m.cursor >= len(m.listing.Items()) {
				m.cursor = max(0, len(m.listing.Items())-1)
			}
		}
		m.rebuildTable()
		return m, nil
	case allowToggledMsg:
		if msg.err != nil {
			m.listing.RollbackAllow(msg.id, msg.prev, msg.err.Error())
			m.rebuildTable()
		}
		return m, nil
	case articleDeletedMsg:
		if msg.err != nil {
			// the row was never removed locally; just resync
			m.status = ""
			return m, m.loadCmd()
		}
		m.listing.RemoveItem(msg.id)
		if m.cursor >= len(m.listing.Items()) {
			m.cursor = max(0, len(m.listing.Items())-1)
		}
		m.status = "Article deleted"
		m.rebuildTable()
		return m, nil
	case articleSavedMsg:
		if msg.err != nil {
			m.formErr = "Save rejected: " + msg.err.Error()
			m.editing = true
			return m, nil
		}
		m.editing = false
		m.status = "Article saved"
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		if m.filtering {
			return m.updateFilterInput(msg)
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

func (m adminNewsPage) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, func() tea.Msg { return goToFeedMsg{} }
	case "s":
		return m, func() tea.Msg { return goToAdminSourcesMsg{} }
	case "L":
		if m.deps.store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = m.deps.store.Clear(ctx)
		}
		return m, tea.Quit
	case "r":
		return m, m.loadCmd()
	case "b":
		m.listing.DismissBanner()
		return m, nil
	case "j", "down":
		if m.cursor < len(m.listing.Items())-1 {
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
	case "l", "right":
		if m.listing.NextPage() {
			m.cursor = 0
			return m, m.loadCmd()
		}
		return m, nil
	case "h", "left":
		if m.listing.PrevPage() {
			m.cursor = 0
			return m, m.loadCmd()
		}
		return m, nil
	case "c":
		return m.startFilter(filterCategory)
	case "o":
		return m.startFilter(filterSource)
	case "a":
		return m.cycleAllowFilter()
	case "x":
		m.listing.SetCategory("")
		m.listing.SetSource("")
		m.listing.SetAllow(nil)
		m.cursor = 0
		return m, m.loadCmd()
	case "t", "enter":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		prev, next, ok := m.listing.ToggleAllow(item.ID)
		if !ok {
			return m, nil
		}
		m.rebuildTable()
		return m, m.toggleAllowCmd(item.ID, prev, next)
	case "d":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(item.ID)
	case "A":
		return m.startForm(newsapi.Article{})
	case "e":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.startForm(item)
	case "g":
		m.cursor = 0
		m.rebuildTable()
		return m, nil
	case "G":
		m.cursor = max(0, len(m.listing.Items())-1)
		m.rebuildTable()
		return m, nil
	}
	return m, nil
}

func (m adminNewsPage) selected() (newsapi.Article, bool) {
	items := m.listing.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return newsapi.Article{}, false
	}
	return items[m.cursor], true
}

// startForm opens the add/edit form. Fields the form does not expose
// (source id, image, publication date) ride along in formBase so an
// update does not wipe them.
func (m adminNewsPage) startForm(a newsapi.Article) (tea.Model, tea.Cmd) {
	m.editing = true
	m.editID = a.ID
	m.formErr = ""
	m.status = ""
	m.formBase = newsapi.ArticleInput{
		SourceID: a.SourceID,
		ImageURL: a.Image,
		PubDate:  a.Date,
		Count:    a.ViewCount,
	}
	m.formInput[afTitle].SetValue(a.Title)
	m.formInput[afSummary].SetValue(a.Summary)
	m.formInput[afLink].SetValue(a.Link)
	m.formInput[afCategory].SetValue(a.Category)
	for i := range m.formInput {
		m.formInput[i].Blur()
	}
	m.formFocus = afTitle
	m.formInput[afTitle].Focus()
	return m, textinput.Blink
}

func (m adminNewsPage) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		return m, nil
	case "tab", "down":
		return m.focusFormField((m.formFocus + 1) % afFieldCount)
	case "shift+tab", "up":
		return m.focusFormField((m.formFocus - 1 + afFieldCount) % afFieldCount)
	case "enter":
		if m.formFocus < afFieldCount-1 {
			return m.focusFormField(m.formFocus + 1)
		}
		in := m.formBase
		in.Title = strings.TrimSpace(m.formInput[afTitle].Value())
		in.Summary = strings.TrimSpace(m.formInput[afSummary].Value())
		in.Link = strings.TrimSpace(m.formInput[afLink].Value())
		in.Category = strings.TrimSpace(m.formInput[afCategory].Value())
		if in.Title == "" {
			m.formErr = "A title is required"
			return m, nil
		}
		if in.Link == "" {
			m.formErr = "A link is required"
			return m, nil
		}
		m.formErr = ""
		return m, m.saveArticleCmd(m.editID, in)
	}
	var cmd tea.Cmd
	m.formInput[m.formFocus], cmd = m.formInput[m.formFocus].Update(msg)
	return m, cmd
}

func (m adminNewsPage) focusFormField(f articleFormField) (tea.Model, tea.Cmd) {
	m.formInput[m.formFocus].Blur()
	m.formFocus = f
	m.formInput[m.formFocus].Focus()
	return m, textinput.Blink
}

func (m adminNewsPage) startFilter(f filterField) (tea.Model, tea.Cmd) {
	m.filtering = true
	m.filterOn = f
	switch f {
	case filterCategory:
		m.filterInput.SetValue(m.listing.Category())
	case filterSource:
		m.filterInput.SetValue(m.listing.SourceFilter())
	}
	m.filterInput.Focus()
	return m, textinput.Blink
}

// cycleAllowFilter rotates the moderation filter: all -> allowed ->
// blocked -> all. Every step restarts from page 1.
func (m adminNewsPage) cycleAllowFilter() (tea.Model, tea.Cmd) {
	cur := m.listing.AllowFilter()
	switch {
	case cur == nil:
		v := true
		m.listing.SetAllow(&v)
	case *cur:
		v := false
		m.listing.SetAllow(&v)
	default:
		m.listing.SetAllow(nil)
	}
	m.cursor = 0
	return m, m.loadCmd()
}

func (m adminNewsPage) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		value := m.filterInput.Value()
		switch m.filterOn {
		case filterCategory:
			m.listing.SetCategory(value)
		case filterSource:
			m.listing.SetSource(value)
		}
		m.filtering = false
		m.filterInput.Blur()
		m.cursor = 0
		return m, m.loadCmd()
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *adminNewsPage) rebuildTable() {
	if !m.ready {
		return
	}
	items := m.listing.Items()

	width := m.width - 2
	titleWidth := max(24, width*45/100)
	catWidth := max(10, width*14/100)
	srcWidth := max(10, width*14/100)
	dateWidth := 12
	allowWidth := 9

	headers := []string{
		truncateString("Title", titleWidth),
		truncateString("Category", catWidth),
		truncateString("Source", srcWidth),
		truncateString("Date", dateWidth),
		truncateString("Allowed", allowWidth),
	}

	var rows [][]string
	for _, item := range items {
		rows = append(rows, []string{
			truncateString(item.Title, titleWidth),
			truncateString(item.FirstCategory(), catWidth),
			truncateString(item.SourceName, srcWidth),
			truncateString(shortDate(item.Date), dateWidth),
			allowLabel(item.Allowed),
		})
	}

	m.table = styledTable(width, headers, rows, m.cursor)
}

func (m adminNewsPage) View() string {
	if !m.ready {
		return "...Loading"
	}

	title := lipgloss.NewStyle().
		Foreground(accentColor()).
		Bold(true).
		Render("Newsly Admin — Articles")
	who := lipgloss.NewStyle().Foreground(dimColor()).Render("signed in as " + m.username)
	header := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", who)

	if m.editing {
		return pageLayout(m.renderForm(header))
	}

	sections := []string{header, m.filterLine()}

	if b := m.listing.Banner(); b != "" {
		sections = append(sections, banner(b))
	}

	switch m.listing.Phase() {
	case admin.PhaseLoading:
		if len(m.listing.Items()) == 0 {
			sections = append(sections, "Loading articles...")
		} else if m.table != nil {
			sections = append(sections, m.table.Render())
		}
	default:
		if len(m.listing.Items()) == 0 {
			sections = append(sections, "No articles match the current filters.")
		} else if m.table != nil {
			sections = append(sections, m.table.Render())
		}
	}

	if m.listing.TotalPages() > 1 {
		sections = append(sections, lipgloss.NewStyle().Foreground(dimColor()).Render(
			"Page "+strconv.Itoa(m.listing.Page())+"/"+strconv.Itoa(m.listing.TotalPages())+
				" • "+strconv.Itoa(m.listing.Total())+" articles"))
	}

	if m.status != "" {
		sections = append(sections, statusLine(m.status))
	}

	if m.filtering {
		label := "Category: "
		if m.filterOn == filterSource {
			label = "Source: "
		}
		sections = append(sections, label+m.filterInput.View())
	} else {
		sections = append(sections, helpBar([]string{
			"j/k: move", "h/l: page", "c/o/a: filter", "x: clear", "t: toggle allow",
			"A: add", "e: edit", "d: delete", "s: sources", "r: refresh", "L: logout", "q: quit",
		}))
	}

	return pageLayout(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m adminNewsPage) renderForm(header string) string {
	heading := "Add article"
	if m.editID != "" {
		heading = "Edit article"
	}

	lines := []string{
		header,
		"",
		lipgloss.NewStyle().Bold(true).Render(heading),
		"Title:    " + m.formInput[afTitle].View(),
		"Summary:  " + m.formInput[afSummary].View(),
		"Link:     " + m.formInput[afLink].View(),
		"Category: " + m.formInput[afCategory].View(),
	}
	if m.formErr != "" {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(errorColor()).Render(m.formErr))
	}
	lines = append(lines, "", helpBar([]string{"tab: next field", "enter: save", "esc: cancel"}))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m adminNewsPage) filterLine() string {
	parts := []string{}
	if c := m.listing.Category(); c != "" {
		parts = append(parts, "category="+c)
	}
	if s := m.listing.SourceFilter(); s != "" {
		parts = append(parts, "source="+s)
	}
	if a := m.listing.AllowFilter(); a != nil {
		if *a {
			parts = append(parts, "allow=yes")
		} else {
			parts = append(parts, "allow=no")
		}
	}
	if len(parts) == 0 {
		return lipgloss.NewStyle().Foreground(dimColor()).Render("filters: none")
	}
	line := "filters: "
	for i, p := range parts {
		if i > 0 {
			line += "  "
		}
		line += p
	}
	return lipgloss.NewStyle().Foreground(dimColor()).Render(line)
}
