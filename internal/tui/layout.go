package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func pageLayout(content string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, content))
}

// renderMenu draws the section tab line with the active item highlighted.
func renderMenu(labels []string, activeItem int, width int) string {
	divider := strings.Repeat("─", max(0, width))

	styledItems := []string{}
	for index, label := range labels {
		var style lipgloss.Style
		content := label + " [" + strconv.Itoa(index+1) + "]"
		if activeItem == index {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Underline(true)
		} else {
			style = lipgloss.NewStyle().Foreground(dimColor())
		}

		fullContent := style.Render(content)
		if index != len(labels)-1 {
			fullContent = fullContent + " | "
		}

		styledItems = append(styledItems, fullContent)
	}

	menu := lipgloss.JoinHorizontal(lipgloss.Left, styledItems...)

	return lipgloss.JoinVertical(lipgloss.Left, menu, divider)
}

func helpBar(items []string) string {
	var content string

	for index, item := range items {
		content = content + item
		if index != len(items)-1 {
			content = content + " • "
		}
	}

	return lipgloss.NewStyle().
		Foreground(dimColor()).
		Align(lipgloss.Center).
		Render(content)
}

// banner renders the dismissible error line the admin tables use.
func banner(text string) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(errorColor()).
		Bold(true).
		Render("! " + text + "  (b: dismiss)")
}

func statusLine(text string) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(okColor()).
		Render(text)
}
