package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

// Update handles messages
func (m *ArticlesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case spinner.TickMsg:
		return m, m.handleSpinnerTick(msg)

	case articlesLoadedMsg:
		if m.feed.Apply(msg.result) {
			m.syncViewport()
		}
		return m, nil
	}

	return m, nil
}

func (m *ArticlesModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.contentHeight()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.JumpTab):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(m.tabs) {
			return m, m.selectTab(m.tabs[idx].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m, m.cycleTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m, m.cycleTab(-1)

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.ToggleChart):
		m.showChart = !m.showChart
		m.viewport.GotoTop()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Remaining scroll keys (up/down/page) are the viewport's own bindings.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleMouseEvent processes mouse interactions
func (m *ArticlesModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		if id, ok := m.tabAt(msg.X, msg.Y); ok {
			return m, m.selectTab(id)
		}

	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.scrollBy(wheelStep)
		} else {
			m.scrollBy(-wheelStep)
		}

	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.scrollBy(-wheelStep)
		} else {
			m.scrollBy(wheelStep)
		}
	}

	return m, nil
}

func (m *ArticlesModel) scrollBy(delta int) {
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
}
