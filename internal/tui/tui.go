package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MayankLuthyagi/newsly/internal/config"
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
	"github.com/MayankLuthyagi/newsly/internal/session"
)

type viewMode int

const (
	feedView viewMode = iota
	detailView
	loginView
	adminNewsView
	adminSourcesView
)

// deps are the collaborators every page shares.
type deps struct {
	cfg    config.AppConfig
	client *newsapi.Client
	store  *session.Store
}

// Navigation messages
type goToDetailMsg struct {
	partial   *newsapi.Article
	articleID string
}
type goToFeedMsg struct{}
type goToAdminNewsMsg struct{}
type goToAdminSourcesMsg struct{}
type loginOKMsg struct{ username string }

type rootPage struct {
	deps         deps
	viewMode     viewMode
	feedPage     feedPage
	detailPage   detailPage
	loginPage    loginPage
	adminNews    adminNewsPage
	adminSources adminSourcesPage
	width        int
	height       int
	err          error
}

// Run starts the reader TUI on the given section. A non-empty articleID
// opens the detail view directly from a route identifier, with no
// navigation partial to fall back on.
func Run(ctx context.Context, cfg config.AppConfig, section, articleID string) error {
	client := newsapi.New(cfg.BaseURL, cfg.DefaultSourceName, cfg.Timeout())
	d := deps{cfg: cfg, client: client}

	m := rootPage{
		deps:       d,
		viewMode:   feedView,
		feedPage:   newFeedPage(d, section),
		detailPage: newDetailPage(d),
	}
	if articleID != "" {
		m.viewMode = detailView
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if articleID != "" {
		go p.Send(goToDetailMsg{articleID: articleID})
	}
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// RunAdmin starts the management TUI. The session store is the router
// guard: with a live session the login form is skipped.
func RunAdmin(ctx context.Context, cfg config.AppConfig) error {
	client := newsapi.New(cfg.BaseURL, cfg.DefaultSourceName, cfg.Timeout())
	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("failed opening the session store: %w", err)
	}
	defer store.Close()

	d := deps{cfg: cfg, client: client, store: store}

	mode := loginView
	username := ""
	if sess, err := store.Current(ctx); err == nil {
		mode = adminNewsView
		username = sess.Username
	}

	m := rootPage{
		deps:         d,
		viewMode:     mode,
		feedPage:     newFeedPage(d, ""),
		detailPage:   newDetailPage(d),
		loginPage:    newLoginPage(d),
		adminNews:    newAdminNewsPage(d, username),
		adminSources: newAdminSourcesPage(d),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (m rootPage) Init() tea.Cmd {
	switch m.viewMode {
	case adminNewsView:
		return m.adminNews.loadCmd()
	case feedView:
		return func() tea.Msg { return feedStartMsg{} }
	default:
		return nil
	}
}

func (m rootPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.viewMode {
	case feedView:
		m.feedPage, cmd = update[feedPage](m.feedPage, msg)
	case detailView:
		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
	case loginView:
		m.loginPage, cmd = update[loginPage](m.loginPage, msg)
	case adminNewsView:
		m.adminNews, cmd = update[adminNewsPage](m.adminNews, msg)
	case adminSourcesView:
		m.adminSources, cmd = update[adminSourcesPage](m.adminSources, msg)
	}

	switch msg := msg.(type) {
	case goToDetailMsg:
		m.viewMode = detailView
		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
	case goToFeedMsg:
		m.viewMode = feedView
		// deep links open on the detail view; the feed may never have loaded
		if m.feedPage.items == nil && !m.feedPage.loading {
			cmd = m.feedPage.loadCmd()
		}
	case loginOKMsg:
		m.viewMode = adminNewsView
		m.adminNews.username = msg.username
		cmd = m.adminNews.loadCmd()
	case goToAdminNewsMsg:
		m.viewMode = adminNewsView
	case goToAdminSourcesMsg:
		m.viewMode = adminSourcesView
		if !m.adminSources.loadedOnce {
			cmd = m.adminSources.loadCmd()
		}
	case tea.WindowSizeMsg:
		var cmds []tea.Cmd

		m.feedPage, cmd = update[feedPage](m.feedPage, msg)
		cmds = append(cmds, cmd)

		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
		cmds = append(cmds, cmd)

		m.loginPage, cmd = update[loginPage](m.loginPage, msg)
		cmds = append(cmds, cmd)

		m.adminNews, cmd = update[adminNewsPage](m.adminNews, msg)
		cmds = append(cmds, cmd)

		m.adminSources, cmd = update[adminSourcesPage](m.adminSources, msg)
		cmds = append(cmds, cmd)

		m.width = msg.Width - 4
		m.height = msg.Height - 4

		return m, tea.Batch(cmds...)
	}

	return m, cmd
}

func (m rootPage) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v", m.err)
	}

	switch m.viewMode {
	case feedView:
		return m.feedPage.View()
	case detailView:
		return m.detailPage.View()
	case loginView:
		return m.loginPage.View()
	case adminNewsView:
		return m.adminNews.View()
	case adminSourcesView:
		return m.adminSources.View()
	default:
		return "Unknown View"
	}
}

func update[T any](model tea.Model, msg tea.Msg) (T, tea.Cmd) {
	newModel, cmd := model.Update(msg)
	return newModel.(T), cmd
}
