package ui

import (
	"github.com/charmbracelet/lipgloss"

	"go.klb.dev/clipz/internal/protocol"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff453a"))
	statusStyle  = lipgloss.NewStyle().Italic(true).Faint(true)
	focusStyle   = lipgloss.NewStyle().Reverse(true)
	currentStyle = lipgloss.NewStyle().Bold(true)
	ageStyle     = lipgloss.NewStyle().Faint(true)
	emptyStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
)

var kindColors = map[protocol.Kind]lipgloss.Color{
	protocol.KindText:  lipgloss.Color("#5ac8fa"),
	protocol.KindImage: lipgloss.Color("#ff9f0a"),
	protocol.KindFile:  lipgloss.Color("#30d158"),
}

func kindStyle(k protocol.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(kindColors[k]).Width(kindWidth)
}
