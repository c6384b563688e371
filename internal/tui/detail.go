package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/MayankLuthyagi/newsly/internal/markdown"
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

type detailResolvedMsg struct {
	nav      int
	article  newsapi.Article
	notFound bool
}

type relatedLoadedMsg struct {
	nav   int
	items []newsapi.Article
}

type sourceNameMsg struct {
	nav  int
	name string
}

type detailPage struct {
	deps deps

	// nav increments on every goToDetailMsg so answers to an earlier
	// article cannot paint over the one currently open.
	nav int

	article  newsapi.Article
	related  []newsapi.Article
	source   string
	loading  bool
	notFound bool
	viewed   bool

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newDetailPage(d deps) detailPage {
	return detailPage{deps: d}
}

func (m detailPage) Init() tea.Cmd {
	return nil
}

func (m *detailPage) open(msg goToDetailMsg) tea.Cmd {
	m.nav++
	m.loading = true
	m.notFound = false
	m.viewed = false
	m.related = nil
	m.source = ""
	nav := m.nav
	d := m.deps
	partial := msg.partial
	id := msg.articleID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		a, err := d.client.ReconcileDetail(ctx, partial, id)
		if err != nil {
			return detailResolvedMsg{nav: nav, notFound: true}
		}
		return detailResolvedMsg{nav: nav, article: a}
	}
}

func (m *detailPage) relatedCmd() tea.Cmd {
	nav := m.nav
	d := m.deps
	current := m.article
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		return relatedLoadedMsg{nav: nav, items: d.client.Related(ctx, current, d.cfg.RelatedLimit)}
	}
}

func (m *detailPage) sourceNameCmd() tea.Cmd {
	nav := m.nav
	d := m.deps
	current := m.article
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		return sourceNameMsg{nav: nav, name: d.client.DisplaySourceName(ctx, current)}
	}
}

// viewCountCmd records the read in the background; the page never
// waits on it and a failure is invisible to the reader.
func (m *detailPage) viewCountCmd() tea.Cmd {
	d := m.deps
	id := m.article.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		d.client.IncrementView(ctx, id)
		return nil
	}
}

func (m detailPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goToDetailMsg:
		cmd := m.open(msg)
		return m, cmd
	case detailResolvedMsg:
		if msg.nav != m.nav {
			return m, nil
		}
		m.loading = false
		if msg.notFound {
			m.notFound = true
			return m, nil
		}
		m.article = msg.article
		m.setContent()
		cmds := []tea.Cmd{m.relatedCmd(), m.sourceNameCmd()}
		if !m.viewed && m.article.ID != "" {
			m.viewed = true
			cmds = append(cmds, m.viewCountCmd())
		}
		return m, tea.Batch(cmds...)
	case relatedLoadedMsg:
		if msg.nav != m.nav {
			return m, nil
		}
		m.related = msg.items
		m.setContent()
		return m, nil
	case sourceNameMsg:
		if msg.nav != m.nav {
			return m, nil
		}
		m.source = msg.name
		m.setContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			return m, func() tea.Msg { return goToFeedMsg{} }
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - 4
		}
		m.setContent()
		return m, tea.ClearScreen
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *detailPage) setContent() {
	if !m.ready || m.loading || m.notFound {
		return
	}
	m.viewport.SetContent(m.renderArticle())
}

func (m *detailPage) renderArticle() string {
	a := m.article

	var b strings.Builder
	b.WriteString("# " + a.Title + "\n\n")

	source := m.source
	if source == "" {
		source = a.SourceName
	}
	meta := []string{}
	if source != "" {
		meta = append(meta, source)
	}
	if d := shortDate(a.Date); d != "" {
		meta = append(meta, d)
	}
	if cat := a.FirstCategory(); cat != "" {
		meta = append(meta, cat)
	}
	if len(meta) > 0 {
		b.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}

	if img := displayImage(a); img != "" {
		b.WriteString("`" + img + "`\n\n")
	}

	switch {
	case a.HTMLContent != "":
		b.WriteString(markdown.FromArticleHTML(a.HTMLContent))
	case a.Summary != "":
		b.WriteString(a.Summary)
	}
	b.WriteString("\n")

	if a.Link != "" {
		b.WriteString("\n[Read the original](" + a.Link + ")\n")
	}

	if len(m.related) > 0 {
		b.WriteString("\n---\n\n## Related stories\n\n")
		for _, r := range m.related {
			b.WriteString("- " + r.Title)
			if r.SourceName != "" {
				b.WriteString(" (" + r.SourceName + ")")
			}
			b.WriteString("\n")
		}
	}

	rendered, err := renderMarkdown(b.String(), m.viewport.Width)
	if err != nil {
		return b.String()
	}
	return rendered
}

func renderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func (m detailPage) View() string {
	if !m.ready {
		return "...Loading"
	}
	if m.loading {
		return pageLayout("Loading article...")
	}
	if m.notFound {
		notFound := lipgloss.NewStyle().
			Foreground(errorColor()).
			Bold(true).
			Render("Article not found")
		hint := lipgloss.NewStyle().
			Foreground(dimColor()).
			Render("It may have been removed or the link is stale.")
		help := helpBar([]string{"esc: back", "q: quit"})
		return pageLayout(lipgloss.JoinVertical(lipgloss.Left, notFound, hint, "", help))
	}

	help := helpBar([]string{"↑/↓: scroll", "esc: back", "q: quit"})
	return pageLayout(lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), help))
}
