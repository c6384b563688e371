package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MayankLuthyagi/newsly/internal/session"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

type loginPage struct {
	deps     deps
	username textinput.Model
	password textinput.Model
	focused  int
	errText  string
	width    int
}

func newLoginPage(d deps) loginPage {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginPage{deps: d, username: username, password: password}
}

func (m loginPage) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.username.Blur()
				m.password.Focus()
			}
			return m, nil
		case "enter":
			if m.focused == 0 {
				m.focused = 1
				m.username.Blur()
				m.password.Focus()
				return m, nil
			}
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginPage) submit() (tea.Model, tea.Cmd) {
	user := m.username.Value()
	if user != adminUsername || m.password.Value() != adminPassword {
		m.errText = "Invalid credentials"
		m.password.SetValue("")
		return m, nil
	}

	if m.deps.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// a save failure only means the session won't survive a restart
		_ = m.deps.store.Save(ctx, session.Session{Username: user, LoginTime: time.Now()})
	}
	return m, func() tea.Msg { return loginOKMsg{username: user} }
}

func (m loginPage) View() string {
	title := lipgloss.NewStyle().
		Foreground(accentColor()).
		Bold(true).
		Render("Newsly Admin")

	form := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		"Username: "+m.username.View(),
		"Password: "+m.password.View(),
	)

	if m.errText != "" {
		form = lipgloss.JoinVertical(lipgloss.Left, form, "",
			lipgloss.NewStyle().Foreground(errorColor()).Render(m.errText))
	}

	help := helpBar([]string{"tab: switch field", "enter: sign in", "esc: quit"})
	return pageLayout(lipgloss.JoinVertical(lipgloss.Left, form, "", help))
}
