package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func fullArticle() model.Article {
	return model.Article{
		Title:                  "Understanding the event loop",
		Description:            "A practical walkthrough of timers, microtasks and I/O callbacks.",
		PublishedAt:            "2024-03-07T10:00:00Z",
		User:                   model.Author{Name: "Ada Lovelace", Username: "ada", ProfileImage: "https://img/ada.png"},
		TagList:                model.TagList{"node", "javascript"},
		PositiveReactionsCount: 42,
		CoverImage:             "https://media.dev.to/cover.png",
	}
}

func TestRenderArticle_AllFields(t *testing.T) {
	t.Parallel()

	m := NewArticlesModel(nil, false)
	out := m.renderArticle(fullArticle(), 120, true)

	for _, want := range []string{
		avatarGlyph, "Ada Lovelace", "@ada", "7 Mar",
		"Understanding the event loop",
		"practical walkthrough",
		"#node", reactionGlyph + " 42",
		coverGlyph, "media.dev.to",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered article missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "#javascript") {
		t.Error("only the first tag should be rendered")
	}
}

func TestRenderArticle_NoCoverNoThumbnail(t *testing.T) {
	t.Parallel()

	a := fullArticle()
	a.CoverImage = ""

	out := NewArticlesModel(nil, false).renderArticle(a, 120, true)
	if strings.Contains(out, coverGlyph) {
		t.Fatalf("thumbnail block rendered without cover image:\n%s", out)
	}
}

func TestRenderArticle_EmptyTagListRendersNoLabel(t *testing.T) {
	t.Parallel()

	a := fullArticle()
	a.TagList = nil

	out := NewArticlesModel(nil, false).renderArticle(a, 120, true)
	if strings.Contains(out, "#") {
		t.Fatalf("tag label rendered for empty tag list:\n%s", out)
	}
	if !strings.Contains(out, reactionGlyph+" 42") {
		t.Fatal("reaction count missing")
	}
}

func TestRenderArticle_MissingOptionalFields(t *testing.T) {
	t.Parallel()

	out := NewArticlesModel(nil, false).renderArticle(model.Article{}, 120, true)

	if !strings.Contains(out, untitled) {
		t.Errorf("empty title should fall back to %q", untitled)
	}
	for _, unwanted := range []string{avatarGlyph, "@", coverGlyph, "#"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("rendered %q for an article without that field:\n%s", unwanted, out)
		}
	}
	if !strings.Contains(out, reactionGlyph+" 0") {
		t.Error("reaction count should render as 0")
	}
}

func TestRenderArticle_DescriptionHiddenWhenNarrow(t *testing.T) {
	t.Parallel()

	m := NewArticlesModel(nil, false)
	a := fullArticle()

	wide := m.renderArticleList([]model.Article{a}, descriptionMinWidth)
	if !strings.Contains(wide, "practical") {
		t.Fatal("description missing at wide width")
	}

	narrow := m.renderArticleList([]model.Article{a}, descriptionMinWidth-1)
	if strings.Contains(narrow, "practical") {
		t.Fatal("description shown below the breakpoint")
	}
}

func TestClampLines(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 40)
	got := clampLines(text, 20, 2)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("clamped text should end with an ellipsis, got %q", lines[1])
	}

	if got := clampLines("short", 20, 2); got != "short" {
		t.Errorf("short text changed: %q", got)
	}
}

func TestTabBar_HighlightsAndHitTest(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, &countingFetcher{}, 90, 30)
	runFetches(m.Init())

	bar := m.renderTabBar(90)
	for _, tab := range model.Tabs() {
		if !strings.Contains(bar, tab.Label) {
			t.Errorf("tab bar missing %q", tab.Label)
		}
	}
	if got := lineCount(bar); got != tabBarHeight {
		t.Errorf("tab bar height = %d, want %d", got, tabBarHeight)
	}

	cases := []struct {
		x, y   int
		wantID int
		wantOK bool
	}{
		{0, 0, 1, true},
		{29, 1, 1, true},
		{30, 0, 2, true},
		{89, 0, 3, true},
		{10, 2, 0, false},
		{95, 0, 0, false},
	}
	for _, tc := range cases {
		id, ok := m.tabAt(tc.x, tc.y)
		if ok != tc.wantOK || id != tc.wantID {
			t.Errorf("tabAt(%d,%d) = %d,%v want %d,%v", tc.x, tc.y, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestReactionsChart_Toggle(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{responses: map[string][]model.Article{
		model.FirstTab().Endpoint: titled("node", 4),
	}}
	m := newSizedModel(t, f, 120, 60)
	for _, res := range runFetches(m.Init()) {
		m.Update(res)
	}

	m.Update(keyRune('c'))
	view := m.View()
	if !strings.Contains(view, "chart") {
		t.Fatal("status line does not report chart mode")
	}
	if !strings.Contains(view, " 1. "+reactionGlyph) {
		t.Fatalf("chart legend missing:\n%s", view)
	}

	m.Update(keyRune('c'))
	if strings.Contains(m.View(), " 1. "+reactionGlyph) {
		t.Fatal("chart still rendered after toggling off")
	}
}

func TestReactionsChart_FollowsHelpHeight(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{responses: map[string][]model.Article{
		model.FirstTab().Endpoint: titled("node", 4),
	}}
	m := newSizedModel(t, f, 120, 60)
	for _, res := range runFetches(m.Init()) {
		m.Update(res)
	}
	m.Update(keyRune('c'))
	tall := m.viewport.TotalLineCount()

	m.Update(keyRune('?'))
	if m.rendered.height != m.contentHeight() {
		t.Fatalf("chart built for height %d, content height is %d", m.rendered.height, m.contentHeight())
	}
	if short := m.viewport.TotalLineCount(); short >= tall {
		t.Errorf("chart lines with help = %d, want fewer than %d", short, tall)
	}

	m.Update(keyRune('?'))
	if got := m.viewport.TotalLineCount(); got != tall {
		t.Errorf("chart lines after closing help = %d, want %d", got, tall)
	}
}

func TestReactionsChart_UsesModelSkin(t *testing.T) {
	t.Parallel()

	skin := DefaultSkin()
	skin.Reaction = "#123456"
	styles := newStyles(skin)
	if got := styles.ChartBar.GetForeground(); got != lipgloss.Color("#123456") {
		t.Errorf("ChartBar foreground = %v, want skin reaction color", got)
	}
	if got := styles.ChartBar.GetBackground(); got != lipgloss.Color("#123456") {
		t.Errorf("ChartBar background = %v, want skin reaction color", got)
	}
}

func TestView_TooSmall(t *testing.T) {
	t.Parallel()

	m := newSizedModel(t, &countingFetcher{}, 20, 5)
	if got := m.View(); !strings.HasPrefix(got, "Terminal too small") {
		t.Fatalf("View() = %q", got)
	}
}

func TestLoadSkin_OverlaysDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ocean.yml")
	if err := os.WriteFile(path, []byte("name: ocean\naccent: \"#0EA5E9\"\n"), 0o644); err != nil {
		t.Fatalf("write skin: %v", err)
	}

	skin, err := LoadSkin(path)
	if err != nil {
		t.Fatalf("LoadSkin: %v", err)
	}
	if skin.Accent != "#0EA5E9" || skin.Name != "ocean" {
		t.Errorf("overlay not applied: %+v", skin)
	}
	if skin.Error != DefaultSkin().Error {
		t.Errorf("unset field should keep default, got %q", skin.Error)
	}

	if _, err := LoadSkin(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for missing skin file")
	}
}

func TestLoadSkin_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("accent: [unclosed"), 0o644); err != nil {
		t.Fatalf("write skin: %v", err)
	}
	if _, err := LoadSkin(path); err == nil {
		t.Fatal("expected parse error")
	}
}
