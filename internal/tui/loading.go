package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newLoadingSpinner(styles Styles) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Loading),
	)
}

// renderLoadingPlaceholder renders the spinner centered in the content area.
func (m *ArticlesModel) renderLoadingPlaceholder(width, height int) string {
	text := m.spinner.View() + m.styles.Loading.Render(" Loading...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// handleSpinnerTick advances the spinner only while a fetch is in flight, so
// the tick chain stops on its own once the request settles.
func (m *ArticlesModel) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	if !m.feed.State().Loading() {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// startSpinnerIfNeeded schedules a spinner tick if a fetch is loading.
func (m *ArticlesModel) startSpinnerIfNeeded() tea.Cmd {
	if m.feed.State().Loading() {
		return m.spinner.Tick
	}
	return nil
}
