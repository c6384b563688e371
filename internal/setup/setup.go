// Package setup writes the initial ~/.config/newsly/config.yaml through
// a short interactive wizard.
package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/MayankLuthyagi/newsly/internal/config"
)

// Run executes the interactive setup flow: ask for the content service
// URL and the brand defaults, then write the config file.
func Run(ctx context.Context) error {
	cfgPath, err := configPath()
	if err != nil {
		return err
	}

	wiz := newWizard(fileExists(cfgPath))
	res, err := tea.NewProgram(wiz).Run()
	if err != nil {
		return err
	}
	wm, ok := res.(wizard)
	if !ok || wm.cancelled {
		return errors.New("setup cancelled")
	}

	answers := userAnswers{
		BaseURL:       strings.TrimSpace(wm.inputs[fieldBaseURL].Value()),
		DefaultSource: strings.TrimSpace(wm.inputs[fieldSource].Value()),
		SiteName:      strings.TrimSpace(wm.inputs[fieldSite].Value()),
	}
	if err := writeConfig(cfgPath, answers); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", cfgPath)
	return nil
}

type userAnswers struct {
	BaseURL       string
	DefaultSource string
	SiteName      string
}

// writeConfig renders the yaml file, keeping defaults out of it so
// future default changes reach existing installs.
func writeConfig(path string, a userAnswers) error {
	doc := map[string]any{}

	api := map[string]any{}
	if a.BaseURL != "" && a.BaseURL != config.DefaultBaseURL {
		api["base_url"] = strings.TrimSuffix(a.BaseURL, "/")
	}
	if len(api) > 0 {
		doc["api"] = api
	}

	brand := map[string]any{}
	if a.DefaultSource != "" && a.DefaultSource != config.DefaultSourceName {
		brand["default_source"] = a.DefaultSource
	}
	if a.SiteName != "" {
		brand["site_name"] = a.SiteName
	}
	if len(brand) > 0 {
		doc["brand"] = brand
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newsly", "config.yaml"), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// --- wizard model ---

const (
	fieldBaseURL = iota
	fieldSource
	fieldSite
	fieldCount
)

type wizard struct {
	inputs    [fieldCount]textinput.Model
	focused   int
	cancelled bool
	warned    bool
}

func newWizard(cfgExists bool) wizard {
	w := wizard{warned: cfgExists}

	base := textinput.New()
	base.Placeholder = config.DefaultBaseURL
	base.CharLimit = 256
	base.Focus()

	source := textinput.New()
	source.Placeholder = config.DefaultSourceName
	source.CharLimit = 64

	site := textinput.New()
	site.Placeholder = "Daily Brief Newsly"
	site.CharLimit = 64

	w.inputs = [fieldCount]textinput.Model{base, source, site}
	return w
}

func (w wizard) Init() tea.Cmd {
	return textinput.Blink
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			w.cancelled = true
			return w, tea.Quit
		case "enter":
			if w.focused == fieldCount-1 {
				return w, tea.Quit
			}
			w.inputs[w.focused].Blur()
			w.focused++
			w.inputs[w.focused].Focus()
			return w, textinput.Blink
		case "tab", "down":
			w.inputs[w.focused].Blur()
			w.focused = (w.focused + 1) % fieldCount
			w.inputs[w.focused].Focus()
			return w, textinput.Blink
		case "shift+tab", "up":
			w.inputs[w.focused].Blur()
			w.focused = (w.focused - 1 + fieldCount) % fieldCount
			w.inputs[w.focused].Focus()
			return w, textinput.Blink
		}
	}

	var cmd tea.Cmd
	w.inputs[w.focused], cmd = w.inputs[w.focused].Update(msg)
	return w, cmd
}

func (w wizard) View() string {
	var b strings.Builder
	b.WriteString("Newsly setup\n\n")
	if w.warned {
		b.WriteString("A config file already exists; finishing the wizard overwrites it.\n\n")
	}
	b.WriteString("Content service URL (empty keeps the default):\n")
	b.WriteString(w.inputs[fieldBaseURL].View() + "\n\n")
	b.WriteString("Default source name:\n")
	b.WriteString(w.inputs[fieldSource].View() + "\n\n")
	b.WriteString("Site name shown in headers:\n")
	b.WriteString(w.inputs[fieldSite].View() + "\n\n")
	b.WriteString("enter: next/finish • tab: move • esc: cancel\n")
	return b.String()
}
