package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	chartBarWidth = 3
	chartBarGap   = 1
	minChartRows  = 5
)

// renderReactionsChart draws one bar per article (in list order) sized by its
// reaction count, followed by a numbered legend.
func (m *ArticlesModel) renderReactionsChart(articles []model.Article, width, height int) string {
	if len(articles) == 0 {
		return m.styles.Placeholder.Render("No data available")
	}

	maxBars := max(width/(chartBarWidth+chartBarGap), 1)
	shown := min(len(articles), maxBars)
	chartHeight := max(height/2, minChartRows)

	bc := barchart.New(shown*(chartBarWidth+chartBarGap), chartHeight,
		barchart.WithBarGap(chartBarGap),
		barchart.WithBarWidth(chartBarWidth),
	)

	for i := 0; i < shown; i++ {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{
				{Name: "reactions", Value: float64(articles[i].PositiveReactionsCount), Style: m.styles.ChartBar},
			},
		})
	}
	bc.Draw()

	legend := make([]string, 0, shown)
	for i := 0; i < shown; i++ {
		a := articles[i]
		title := a.Title
		if strings.TrimSpace(title) == "" {
			title = untitled
		}
		line := fmt.Sprintf("%2d. %s %4d  %s", i+1, reactionGlyph, a.PositiveReactionsCount, title)
		legend = append(legend, ansi.Truncate(line, width, "…"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bc.View(),
		"",
		m.styles.Byline.Render(strings.Join(legend, "\n")),
	)
}
