package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/tabfeed/internal/feed"
	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the tab bar, the content area and the status line.
func (m *ArticlesModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small. Resize to at least %dx%d.", minWidth, minHeight)
	}

	sections := []string{
		m.renderTabBar(m.width),
		"",
		m.renderContent(m.width, m.contentHeight()),
	}
	if m.help.ShowAll {
		sections = append(sections, m.help.View(m.keys))
	}
	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderContent picks loading, error or list rendering, in that order.
func (m *ArticlesModel) renderContent(width, height int) string {
	st := m.feed.State()

	switch st.Phase {
	case feed.PhaseLoading:
		return m.renderLoadingPlaceholder(width, height)

	case feed.PhaseFailed:
		text := m.styles.Error.Render("Error: " + st.Message)
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, text)

	case feed.PhaseLoaded:
		if len(st.Articles) == 0 {
			text := m.styles.Placeholder.Render("No articles for this tab.")
			return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
		}
		return m.viewport.View()
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "")
}

// renderStatusLine renders the section label, key hints and fetch status.
func (m *ArticlesModel) renderStatusLine() string {
	label := ""
	if tab, ok := model.LookupTab(m.feed.Active()); ok {
		label = tab.Label
	}
	left := m.styles.StatusKey.Render(fmt.Sprintf(" [%s] ", label))
	right := m.styles.Status.Render(" " + m.statusInfo() + " │ tabfeed ")

	middleWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	var hints string
	if !m.help.ShowAll && middleWidth > 4 {
		hints = ansi.Truncate(ansi.Strip(m.help.ShortHelpView(m.keys.ShortHelp())), middleWidth-2, "…")
	}
	middle := m.styles.Status.Width(max(middleWidth, 0)).Render(" " + hints)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)
}

func (m *ArticlesModel) statusInfo() string {
	st := m.feed.State()
	switch st.Phase {
	case feed.PhaseLoading:
		return "loading"
	case feed.PhaseFailed:
		return "error"
	case feed.PhaseLoaded:
		if m.showChart {
			return fmt.Sprintf("%d articles · chart", len(st.Articles))
		}
		if len(st.Articles) == 1 {
			return "1 article"
		}
		return fmt.Sprintf("%d articles", len(st.Articles))
	}
	return "idle"
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
