package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar composes the one-line inverted bar: adventure title
// and current area on the left, bag count and open exits on the right.
// Connections keep declaration order, so no sorting here.
func (m Model) renderStatusBar() string {
	sess := m.engine.Session

	left := " " + m.title
	if sess.Area != nil {
		left += " | " + sess.Area.Name
	}

	right := fmt.Sprintf("Bag: %d ", len(sess.Bag.Stacks()))
	if sess.Area != nil {
		var dirs []string
		for _, c := range sess.Area.Connections {
			if c.Open {
				dirs = append(dirs, string(c.Direction))
			}
		}
		if len(dirs) > 0 {
			right = fmt.Sprintf("Bag: %d | Exits: %s ", len(sess.Bag.Stacks()), strings.Join(dirs, ","))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
