package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/tinytelemetry/tabfeed/internal/devto"
	"github.com/tinytelemetry/tabfeed/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tabfeed",
		Short: "Browse dev.to article listings by tag in the terminal",
		Long: `tabfeed shows the latest dev.to articles for a fixed set of tags.

Switch tabs with the number keys, arrows or a mouse click. Each switch
issues one request for that tab; responses for tabs you have already
left are discarded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return runTUI(cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/tabfeed/config.yml)")
	root.PersistentFlags().Duration("request-timeout", defaultRequestTimeout, "timeout for each article listing request")
	root.Flags().String("skin", defaultSkin, "color skin name")
	root.Flags().String("log-file", "", "write debug logs to this file")

	root.AddCommand(newServeCmd(&configPath), newVersionCmd())
	return root
}

func runTUI(cfg appConfig) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "tabfeed")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		// The TUI owns the terminal; stray log lines would corrupt it.
		log.SetOutput(io.Discard)
	}

	if err := tui.InitializeSkin(cfg.Skin, cfg.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	client := devto.NewClient(
		devto.WithTimeout(cfg.RequestTimeout),
		devto.WithUserAgent(cfg.UserAgent),
	)

	articles := tui.NewArticlesModel(client, cfg.ReverseScrollWheel)
	app := tui.NewApp(tui.NewArticlesPage(articles))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
