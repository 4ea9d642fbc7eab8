package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleListing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleExit = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleRefusal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindListing
	kindExit
	kindRefusal
	kindSystem
)

// classifyLine sorts an output line into a style bucket by its shape.
// Direction tags like [east] mark movement and exit lines; numbered
// lines and carry reports are listings.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.Contains(line, "[") && strings.Contains(line, "]"):
		return kindExit
	case strings.HasPrefix(line, "Can not "),
		line == "I do not understand that.",
		line == "It is locked.":
		return kindRefusal
	case isNumbered(line),
		strings.HasPrefix(line, "There is "),
		strings.HasPrefix(line, "There are "),
		strings.HasPrefix(line, "You carry"),
		line == "It contains:",
		line == "It is empty.":
		return kindListing
	default:
		return kindNarration
	}
}

// isNumbered reports lines of the "1: name" listing shape.
func isNumbered(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(line[i:], ": ")
}

// renderLine applies the style for a classified line.
func renderLine(line string, kind lineKind) string {
	switch kind {
	case kindListing:
		return styleListing.Render(line)
	case kindExit:
		return styleExit.Render(line)
	case kindRefusal:
		return styleRefusal.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarration.Render(line)
	}
}
