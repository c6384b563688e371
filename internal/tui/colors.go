package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func accentColor() lipgloss.Color {
	return lipgloss.Color("#E4572E")
}

func headerColor() lipgloss.Color {
	return lipgloss.Color("#A63A1B")
}

func dimColor() lipgloss.Color {
	return lipgloss.Color("8")
}

func errorColor() lipgloss.Color {
	return lipgloss.Color("1")
}

func okColor() lipgloss.Color {
	return lipgloss.Color("2")
}
