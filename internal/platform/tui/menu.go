package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Menu options, in display order.
const (
	menuPlay = iota
	menuQuit
)

var menuOptions = []string{"Let's Dagyi!", "Ühm"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// menuView renders the start menu.
func (m Model) menuView() string {
	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString(centerText(m.volumeLabel(), width, true))
	b.WriteString("\n\n")

	b.WriteString(centerText(titleStyle.Render("D A G Y I M A N"), width, false))
	b.WriteString("\n\n")

	for i, opt := range menuOptions {
		line := "  " + opt + "  "
		if i == m.cursor {
			line = selectedStyle.Render("> " + opt + " <")
		}
		b.WriteString(centerText(line, width, false))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if high := m.journal.HighScore(); high > 0 {
		best := fmt.Sprintf("Best on %s: %d", m.game.Map().Name, high)
		b.WriteString(centerText(dimStyle.Render(best), width, false))
		b.WriteString("\n")
	}
	if m.snap.Err != nil {
		b.WriteString(centerText(errorStyle.Render(m.snap.Err.Error()), width, false))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// volumeLabel shows the music level in the top right corner.
func (m Model) volumeLabel() string {
	if m.mixer == nil {
		return dimStyle.Render("Volume: off")
	}
	if m.mixer.Muted() {
		return dimStyle.Render("Volume: muted")
	}
	return fmt.Sprintf("Volume: %d%%", m.mixer.Volume())
}

// loadingView renders the loading screen with its progress bar.
func (m Model) loadingView() string {
	width := m.config.ScreenW
	height := m.config.ScreenH

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(height/2-2, 0)))
	b.WriteString(centerText(titleStyle.Render("Loading "+m.game.Map().Name+"..."), width, false))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.progress.ViewAs(m.snap.LoadingProgress), width, false))
	return b.String()
}

// centerText centers text within given width, or right-aligns it.
// Width is measured without ANSI styling.
func centerText(text string, width int, right bool) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	if right {
		padding = width - w
	}
	return strings.Repeat(" ", padding) + text
}
