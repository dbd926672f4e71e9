package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// Descriptions are hidden below this width, like the narrow and medium
	// breakpoints of the web layout.
	descriptionMinWidth = 100
	descriptionLines    = 2

	coverInnerWidth  = 12
	coverInnerHeight = 3
	coverGap         = 2

	avatarGlyph   = "◉"
	coverGlyph    = "▣"
	reactionGlyph = "♥"
	untitled      = "(untitled)"
)

// renderArticleList renders every article in fetch order.
func (m *ArticlesModel) renderArticleList(articles []model.Article, width int) string {
	showDescription := width >= descriptionMinWidth
	separator := m.styles.Separator.Render(strings.Repeat("─", max(width, 1)))

	blocks := make([]string, 0, len(articles)*2)
	for _, a := range articles {
		blocks = append(blocks, m.renderArticle(a, width, showDescription), separator)
	}
	return strings.Join(blocks, "\n")
}

// renderArticle renders one list entry. Missing fields are skipped rather than
// rendered as placeholders, except an empty title.
func (m *ArticlesModel) renderArticle(a model.Article, width int, showDescription bool) string {
	textWidth := width
	var cover string
	if a.HasCover() {
		cover = m.renderCover(a.CoverImage)
		textWidth = width - lipgloss.Width(cover) - coverGap
	}
	textWidth = max(textWidth, 10)

	title := a.Title
	if strings.TrimSpace(title) == "" {
		title = untitled
	}

	lines := []string{
		m.renderByline(a, textWidth),
		m.styles.Title.Width(textWidth).Render(title),
	}
	if showDescription && a.Description != "" {
		lines = append(lines, m.styles.Description.Render(clampLines(a.Description, textWidth, descriptionLines)))
	}
	lines = append(lines, m.renderMeta(a))

	body := lipgloss.NewStyle().Width(textWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if cover == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, strings.Repeat(" ", coverGap), cover)
}

// renderByline renders avatar marker, author name, @handle and publication day.
func (m *ArticlesModel) renderByline(a model.Article, width int) string {
	var parts []string
	if a.User.ProfileImage != "" {
		parts = append(parts, avatarGlyph)
	}
	if a.User.Name != "" {
		parts = append(parts, a.User.Name)
	}
	if a.User.Username != "" {
		parts = append(parts, "@"+a.User.Username)
	}
	line := strings.Join(parts, " ")

	if ts, ok := a.Published(); ok {
		if line != "" {
			line += "  ·  "
		}
		line += model.FormatDay(ts)
	}
	return m.styles.Byline.Render(ansi.Truncate(line, width, "…"))
}

// renderMeta renders the first tag label and the reaction count. An article
// without tags gets no label.
func (m *ArticlesModel) renderMeta(a model.Article) string {
	var parts []string
	if tag, ok := a.FirstTag(); ok {
		parts = append(parts, m.styles.Tag.Render("#"+tag))
	}
	parts = append(parts, m.styles.Reactions.Render(fmt.Sprintf("%s %d", reactionGlyph, a.PositiveReactionsCount)))
	return strings.Join(parts, "   ")
}

// renderCover renders the fixed-size thumbnail block standing in for the
// cover image.
func (m *ArticlesModel) renderCover(coverURL string) string {
	host := coverURL
	if u, err := url.Parse(coverURL); err == nil && u.Host != "" {
		host = u.Host
	}
	inner := coverGlyph + " cover\n" + ansi.Truncate(host, coverInnerWidth, "…")
	return m.styles.Cover.
		Width(coverInnerWidth).
		Height(coverInnerHeight).
		Render(inner)
}

// clampLines word-wraps text to width and keeps at most n lines, marking the
// cut with an ellipsis.
func clampLines(text string, width, n int) string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	lines = lines[:n]
	lines[n-1] = ansi.Truncate(lines[n-1], width-1, "") + "…"
	return strings.Join(lines, "\n")
}
