package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

// feedSections are the reading surfaces, most specific endpoints first
// inside each tier table.
var feedSections = []string{"Trending", "Today", "Latest"}

// feedStartMsg triggers the initial load once the program is running;
// loadCmd must run inside Update so the generation bump sticks.
type feedStartMsg struct{}

type feedLoadedMsg struct {
	gen   int
	items []newsapi.Article
}

type feedPage struct {
	deps  deps
	items []newsapi.Article
	table *table.Table

	// gen guards against a slow fetch for an abandoned section
	// overwriting the one the reader switched to.
	gen     int
	loading bool

	section      int
	extraSection string

	ready        bool
	cursor       int
	currentPage  int
	totalPages   int
	tableWidth   int
	tableHeight  int
	titleWidth   int
	sourceWidth  int
	dateWidth    int
	summaryWidth int
	pageSize     int
}

// newFeedPage starts on the named section when it matches one of the
// tabs; any other non-empty name becomes an extra subcategory tab.
func newFeedPage(d deps, section string) feedPage {
	p := feedPage{deps: d, pageSize: 10}
	for i, s := range feedSections {
		if s == section {
			p.section = i
			return p
		}
	}
	if section != "" {
		p.extraSection = section
		p.section = len(feedSections)
	}
	return p
}

func (m feedPage) sectionLabels() []string {
	if m.extraSection != "" {
		return append(append([]string{}, feedSections...), m.extraSection)
	}
	return feedSections
}

func (m feedPage) sectionName() string {
	labels := m.sectionLabels()
	if m.section >= 0 && m.section < len(labels) {
		return labels[m.section]
	}
	return feedSections[0]
}

// sectionTiers maps a tab to its ordered endpoint fallback list and
// display count.
func sectionTiers(name string) ([]newsapi.EndpointSpec, int) {
	switch name {
	case "Trending":
		return newsapi.TrendingTiers(11), 11
	case "Today":
		return newsapi.TodayTiers(40), 40
	case "Latest":
		return newsapi.LatestTiers(1000), 0
	default:
		return newsapi.SectionTiers(name, 30), 30
	}
}

func (m *feedPage) loadCmd() tea.Cmd {
	m.gen++
	m.loading = true
	gen := m.gen
	name := m.sectionName()
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
		defer cancel()
		tiers, limit := sectionTiers(name)
		return feedLoadedMsg{gen: gen, items: d.client.ResolveLimited(ctx, tiers, limit)}
	}
}

func (m feedPage) Init() tea.Cmd {
	return nil
}

func (m feedPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedStartMsg:
		return m, m.loadCmd()
	case feedLoadedMsg:
		if msg.gen != m.gen {
			// answer for a section the reader already left
			return m, nil
		}
		m.loading = false
		m.items = msg.items
		m.cursor = 0
		m.currentPage = 0
		m.recalcPages()
		m.updateTableRows()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ":
			if len(m.items) > 0 {
				globalCursor := m.currentPage*m.pageSize + m.cursor
				if globalCursor < len(m.items) {
					selected := m.items[globalCursor]
					// a feed record has no body yet: the detail view
					// must decide whether to re-fetch
					selected.NeedsFullFetch = selected.HTMLContent == ""
					return m, func() tea.Msg { return goToDetailMsg{partial: &selected} }
				}
				return m, nil
			}
		case "r":
			return m, m.loadCmd()
		case "tab":
			m.section = (m.section + 1) % len(m.sectionLabels())
			return m, m.loadCmd()
		case "shift+tab":
			labels := m.sectionLabels()
			m.section = (m.section - 1 + len(labels)) % len(labels)
			return m, m.loadCmd()
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.sectionLabels()) && idx != m.section {
				m.section = idx
				return m, m.loadCmd()
			}
			return m, nil
		case "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.currentPage > 0 {
				m.currentPage--
				m.cursor = m.pageSize - 1
			}
			m.updateTableRows()
			return m, nil
		case "j":
			itemsOnCurrentPage := min(m.pageSize, len(m.items)-m.currentPage*m.pageSize)
			if m.cursor < itemsOnCurrentPage-1 {
				m.cursor++
			} else if m.currentPage < m.totalPages-1 {
				m.currentPage++
				m.cursor = 0
			}
			m.updateTableRows()
			return m, nil
		case "g":
			m.currentPage = 0
			m.cursor = 0
			m.updateTableRows()
			return m, nil
		case "G":
			m.currentPage = m.totalPages - 1
			lastPageItems := len(m.items) % m.pageSize
			if lastPageItems == 0 {
				lastPageItems = m.pageSize
			}
			m.cursor = lastPageItems - 1
			m.updateTableRows()
			return m, nil
		case "l":
			if m.currentPage < m.totalPages-1 {
				m.currentPage++
				m.cursor = 0
				m.updateTableRows()
				return m, tea.ClearScreen
			}
			return m, nil
		case "h":
			if m.currentPage > 0 {
				m.currentPage--
				m.cursor = 0
				m.updateTableRows()
				return m, tea.ClearScreen
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.tableWidth = msg.Width - 2
		m.tableHeight = msg.Height
		m.configureTable(msg.Width, msg.Height-4)
		m.ready = true

		return m, tea.ClearScreen
	}

	return m, nil
}

func (m feedPage) View() string {
	if !m.ready {
		return "...Loading"
	}

	site := lipgloss.NewStyle().
		Foreground(accentColor()).
		Bold(true).
		Render(m.deps.cfg.SiteName)
	menu := lipgloss.JoinVertical(lipgloss.Left, site,
		renderMenu(m.sectionLabels(), m.section, m.tableWidth))

	if m.loading {
		return pageLayout(lipgloss.JoinVertical(lipgloss.Left, menu, "Loading "+m.sectionName()+" news..."))
	}

	if len(m.items) == 0 {
		empty := "No " + m.sectionName() + " news available at the moment.\nCheck back soon for the latest technology updates."
		return pageLayout(lipgloss.JoinVertical(lipgloss.Left, menu, empty))
	}

	help := helpBar([]string{
		"j/k: move", "l/h: page", "tab: section", "enter: read", "r: refresh", "q: quit",
	})

	pageInfo := lipgloss.NewStyle().
		Foreground(dimColor()).
		Render(pagingLabel(m.currentPage+1, m.totalPages, len(m.items)))

	return pageLayout(lipgloss.JoinVertical(lipgloss.Left, menu, m.table.Render(), pageInfo, help))
}

func pagingLabel(page, pages, total int) string {
	if pages <= 1 {
		return ""
	}
	return lipgloss.NewStyle().Render(
		"Page " + strconv.Itoa(page) + "/" + strconv.Itoa(pages) + " • " + strconv.Itoa(total) + " stories")
}

func (m *feedPage) recalcPages() {
	if m.pageSize <= 0 {
		m.pageSize = 10
	}
	m.totalPages = (len(m.items) + m.pageSize - 1) / m.pageSize
	if m.totalPages == 0 {
		m.totalPages = 1
	}
}

func (m *feedPage) updateTableRows() {
	if len(m.items) == 0 {
		return
	}

	headers := []string{
		truncateString("Title", m.titleWidth),
		truncateString("Source", m.sourceWidth),
		truncateString("Date", m.dateWidth),
		truncateString("Summary", m.summaryWidth),
	}

	var rows [][]string
	startIdx := m.currentPage * m.pageSize
	endIdx := min(startIdx+m.pageSize, len(m.items))

	for i := startIdx; i < endIdx; i++ {
		item := m.items[i]
		rows = append(rows, []string{
			truncateString(item.Title, m.titleWidth),
			truncateString(item.SourceName, m.sourceWidth),
			truncateString(relativeDate(item.Date), m.dateWidth),
			truncateString(oneLine(item.Summary), m.summaryWidth),
		})
	}

	itemsOnCurrentPage := len(rows)
	if itemsOnCurrentPage > 0 {
		if m.cursor >= itemsOnCurrentPage {
			m.cursor = itemsOnCurrentPage - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	m.table = styledTable(m.tableWidth, headers, rows, m.cursor)
}

// styledTable is the shared table chrome for the feed and admin views.
func styledTable(width int, headers []string, rows [][]string, cursor int) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(headerColor()).
		Align(lipgloss.Center)

	return table.New().
		Width(width).
		Border(lipgloss.ThickBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(headerColor())).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == cursor {
				return lipgloss.NewStyle().
					Padding(0, 1).
					Background(accentColor()).
					Foreground(lipgloss.Color("0"))
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// configureTable sets up dynamic column widths based on available space.
func (m *feedPage) configureTable(width, height int) {
	m.pageSize = max(5, height-6)
	m.recalcPages()

	if m.currentPage >= m.totalPages {
		m.currentPage = m.totalPages - 1
	}
	if m.currentPage < 0 {
		m.currentPage = 0
	}

	globalCursor := m.currentPage*m.pageSize + m.cursor
	if len(m.items) > 0 && globalCursor >= len(m.items) {
		globalCursor = len(m.items) - 1
		m.currentPage = globalCursor / m.pageSize
		m.cursor = globalCursor % m.pageSize
	}

	m.dateWidth = 12
	borderPaddingWidth := 4 + (3 * 4)
	remainingWidth := width - m.dateWidth - borderPaddingWidth

	m.titleWidth = remainingWidth * 40 / 100
	m.sourceWidth = remainingWidth * 18 / 100
	m.summaryWidth = remainingWidth * 42 / 100

	if m.titleWidth < 24 {
		m.titleWidth = 24
	}
	if m.sourceWidth < 10 {
		m.sourceWidth = 10
	}
	if m.summaryWidth < 20 {
		m.summaryWidth = 20
	}

	m.updateTableRows()
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
