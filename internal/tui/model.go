package tui

import (
	"github.com/tinytelemetry/tabfeed/internal/feed"
	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tabBarHeight    = 2 // label row + underline
	contentGap      = 1
	statusBarHeight = 1

	minWidth  = 40
	minHeight = 10
)

// ArticlesModel is the tabbed article list: tab bar, fetch state and the
// scrollable list of the active tab.
type ArticlesModel struct {
	feed *feed.Controller
	tabs []model.Tab

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   Styles

	width  int
	height int

	showChart          bool
	reverseScrollWheel bool

	// rendered tracks what the viewport content was last built from.
	rendered renderKey
}

type renderKey struct {
	tabID     int
	phase     feed.Phase
	count     int
	width     int
	height    int
	showChart bool
	ready     bool
}

// articlesLoadedMsg delivers a settled fetch back to the update loop.
type articlesLoadedMsg struct {
	result feed.Result
}

// NewArticlesModel creates the model. Nothing is fetched until Init.
func NewArticlesModel(fetcher model.ArticleFetcher, reverseScrollWheel bool) *ArticlesModel {
	styles := newStyles(currentSkin)
	h := help.New()

	return &ArticlesModel{
		feed:               feed.NewController(fetcher),
		tabs:               model.Tabs(),
		keys:               DefaultKeyMap(),
		help:               h,
		spinner:            newLoadingSpinner(styles),
		viewport:           viewport.New(0, 0),
		styles:             styles,
		reverseScrollWheel: reverseScrollWheel,
	}
}

// Init selects the first tab, which issues its fetch eagerly.
func (m *ArticlesModel) Init() tea.Cmd {
	return m.selectTab(model.FirstTab().ID)
}

// ActiveTab returns the selected tab ID.
func (m *ArticlesModel) ActiveTab() int { return m.feed.Active() }

// State returns the current fetch state.
func (m *ArticlesModel) State() feed.State { return m.feed.State() }

// Close abandons any in-flight fetch.
func (m *ArticlesModel) Close() { m.feed.Close() }

// selectTab activates id and returns the fetch command when a request was issued.
func (m *ArticlesModel) selectTab(id int) tea.Cmd {
	req, ok := m.feed.Select(id)
	if !ok {
		return nil
	}
	return m.issue(req)
}

func (m *ArticlesModel) reload() tea.Cmd {
	req, ok := m.feed.Reload()
	if !ok {
		return nil
	}
	return m.issue(req)
}

func (m *ArticlesModel) issue(req feed.Request) tea.Cmd {
	m.viewport.GotoTop()
	m.syncViewport()
	ctrl := m.feed
	fetch := func() tea.Msg {
		return articlesLoadedMsg{result: ctrl.Run(req)}
	}
	return tea.Batch(fetch, m.startSpinnerIfNeeded())
}

// cycleTab moves the selection by delta positions, wrapping around.
func (m *ArticlesModel) cycleTab(delta int) tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	idx := model.TabIndex(m.feed.Active())
	if idx < 0 {
		idx = 0
	}
	next := (idx + delta + len(m.tabs)) % len(m.tabs)
	return m.selectTab(m.tabs[next].ID)
}

// contentHeight is the number of rows available below the tab bar.
func (m *ArticlesModel) contentHeight() int {
	h := m.height - tabBarHeight - contentGap - statusBarHeight
	if m.help.ShowAll {
		h -= lineCount(m.help.View(m.keys))
	}
	return max(h, 1)
}

func (m *ArticlesModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = width
	m.viewport.Height = m.contentHeight()
	m.syncViewport()
}

// syncViewport rebuilds the list content when the data or layout it was
// built from has changed.
func (m *ArticlesModel) syncViewport() {
	st := m.feed.State()
	key := renderKey{
		tabID:     st.TabID,
		phase:     st.Phase,
		count:     len(st.Articles),
		width:     m.width,
		height:    m.contentHeight(),
		showChart: m.showChart,
		ready:     true,
	}
	if key == m.rendered {
		return
	}
	m.rendered = key

	if st.Phase != feed.PhaseLoaded {
		m.viewport.SetContent("")
		return
	}
	if m.showChart {
		m.viewport.SetContent(m.renderReactionsChart(st.Articles, m.width, m.contentHeight()))
		return
	}
	m.viewport.SetContent(m.renderArticleList(st.Articles, m.width))
}

// ArticlesPage adapts ArticlesModel to the Page interface.
type ArticlesPage struct {
	Model *ArticlesModel
}

// NewArticlesPage wraps an ArticlesModel as a Page.
func NewArticlesPage(m *ArticlesModel) *ArticlesPage {
	return &ArticlesPage{Model: m}
}

func (p *ArticlesPage) ID() string { return "articles" }

func (p *ArticlesPage) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *ArticlesPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *ArticlesPage) View(width, height int) string {
	if width != p.Model.width || height != p.Model.height {
		p.Model.resize(width, height)
	}
	return p.Model.View()
}

func (p *ArticlesPage) Close() {
	p.Model.Close()
}
