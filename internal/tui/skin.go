package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin is the set of colors the TUI draws with. Values are lipgloss color
// strings: ANSI numbers ("245") or hex ("#3B82F6").
type Skin struct {
	Name       string `yaml:"name"`
	Accent     string `yaml:"accent"`
	Muted      string `yaml:"muted"`
	Text       string `yaml:"text"`
	Error      string `yaml:"error"`
	LabelFg    string `yaml:"label_fg"`
	LabelBg    string `yaml:"label_bg"`
	StatusFg   string `yaml:"status_fg"`
	StatusBg   string `yaml:"status_bg"`
	Reaction   string `yaml:"reaction"`
	Separator  string `yaml:"separator"`
	CoverFrame string `yaml:"cover_frame"`
}

// DefaultSkin returns the built-in palette.
func DefaultSkin() Skin {
	return Skin{
		Name:       "default",
		Accent:     "#3B82F6",
		Muted:      "245",
		Text:       "252",
		Error:      "#EF4444",
		LabelFg:    "252",
		LabelBg:    "237",
		StatusFg:   "#FFFFFF",
		StatusBg:   "#1E2A4A",
		Reaction:   "#F43F5E",
		Separator:  "238",
		CoverFrame: "240",
	}
}

var currentSkin = DefaultSkin()

// InitializeSkin loads name from <configDir>/skins/<name>.yml and makes it the
// skin used by models created afterwards. "default" or "" selects the
// built-in palette. On error the built-in palette stays active.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		currentSkin = DefaultSkin()
		return nil
	}
	skin, err := LoadSkin(filepath.Join(configDir, "skins", name+".yml"))
	if err != nil {
		currentSkin = DefaultSkin()
		return err
	}
	currentSkin = skin
	return nil
}

// LoadSkin reads a YAML skin file. Unset fields fall back to the defaults.
func LoadSkin(path string) (Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Skin{}, fmt.Errorf("skin file %s not found", path)
		}
		return Skin{}, fmt.Errorf("reading skin: %w", err)
	}

	var overlay Skin
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Skin{}, fmt.Errorf("parsing skin %s: %w", path, err)
	}
	return mergeSkin(DefaultSkin(), overlay), nil
}

func mergeSkin(base, overlay Skin) Skin {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Name, overlay.Name)
	pick(&base.Accent, overlay.Accent)
	pick(&base.Muted, overlay.Muted)
	pick(&base.Text, overlay.Text)
	pick(&base.Error, overlay.Error)
	pick(&base.LabelFg, overlay.LabelFg)
	pick(&base.LabelBg, overlay.LabelBg)
	pick(&base.StatusFg, overlay.StatusFg)
	pick(&base.StatusBg, overlay.StatusBg)
	pick(&base.Reaction, overlay.Reaction)
	pick(&base.Separator, overlay.Separator)
	pick(&base.CoverFrame, overlay.CoverFrame)
	return base
}

// Styles are the lipgloss styles derived from a Skin.
type Styles struct {
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Byline      lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Tag         lipgloss.Style
	Reactions   lipgloss.Style
	ChartBar    lipgloss.Style
	Separator   lipgloss.Style
	Cover       lipgloss.Style
	Error       lipgloss.Style
	Loading     lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	StatusKey   lipgloss.Style
}

func newStyles(s Skin) Styles {
	tab := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Border(lipgloss.NormalBorder(), false, false, true, false)

	return Styles{
		TabActive: tab.
			Bold(true).
			Foreground(lipgloss.Color(s.Accent)).
			BorderForeground(lipgloss.Color(s.Accent)),
		TabInactive: tab.
			Foreground(lipgloss.Color(s.Muted)).
			BorderForeground(lipgloss.Color(s.Separator)),
		Byline:      lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted)),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Text)),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted)),
		Tag: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(s.LabelFg)).
			Background(lipgloss.Color(s.LabelBg)),
		Reactions: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Reaction)),
		ChartBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Reaction)).
			Background(lipgloss.Color(s.Reaction)),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Separator)),
		Cover: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(s.CoverFrame)).
			Foreground(lipgloss.Color(s.Muted)).
			Align(lipgloss.Center),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(s.Error)),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted)).Italic(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.StatusFg)).
			Background(lipgloss.Color(s.StatusBg)),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(s.Accent)).
			Background(lipgloss.Color(s.StatusBg)),
	}
}
