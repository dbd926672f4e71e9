package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// tabWidths splits width evenly across the tabs; the last tab takes the remainder.
func (m *ArticlesModel) tabWidths(width int) []int {
	n := len(m.tabs)
	if n == 0 {
		return nil
	}
	widths := make([]int, n)
	each := width / n
	for i := range widths {
		widths[i] = each
	}
	widths[n-1] += width - each*n
	return widths
}

// renderTabBar renders one button per tab with the active tab highlighted.
func (m *ArticlesModel) renderTabBar(width int) string {
	widths := m.tabWidths(width)
	active := m.feed.Active()

	buttons := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := m.styles.TabInactive
		if tab.ID == active {
			style = m.styles.TabActive
		}
		buttons = append(buttons, style.Width(widths[i]).Render(tab.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// tabAt resolves a click position to the tab button under it.
func (m *ArticlesModel) tabAt(x, y int) (int, bool) {
	if y < 0 || y >= tabBarHeight || x < 0 || x >= m.width {
		return 0, false
	}
	left := 0
	for i, w := range m.tabWidths(m.width) {
		if x < left+w {
			return m.tabs[i].ID, true
		}
		left += w
	}
	return 0, false
}
