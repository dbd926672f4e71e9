package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultRequestTimeout = model.DefaultRequestTimeout
	defaultUserAgent      = model.DefaultUserAgent
	defaultSkin           = model.DefaultSkin
	defaultAPIAddr        = model.DefaultAPIAddr
)

// appConfig is internal runtime configuration. The tab registry is compiled
// in and deliberately absent here.
type appConfig struct {
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	UserAgent          string        `mapstructure:"user-agent"`
	Skin               string        `mapstructure:"skin"`
	LogFile            string        `mapstructure:"log-file"`
	APIAddr            string        `mapstructure:"api-addr"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	ConfigDir          string        `mapstructure:"-"`
}

// boundFlags are command-line flags that override config file and env values.
var boundFlags = []string{"request-timeout", "skin", "log-file", "api-addr"}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tabfeed"), nil
}

func loadConfig(configPath string, cmd *cobra.Command) (appConfig, error) {
	var cfg appConfig

	configDir, err := defaultConfigDir()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix("TABFEED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("user-agent", defaultUserAgent)
	v.SetDefault("skin", defaultSkin)
	v.SetDefault("log-file", "")
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &configFileNotFound) || os.IsNotExist(err)
		// Only the default location may be absent.
		if !missing || configPath != "" {
			return cfg, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if cmd != nil {
		for _, name := range boundFlags {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return cfg, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout < 0 {
		return cfg, fmt.Errorf("request-timeout must not be negative, got %s", cfg.RequestTimeout)
	}
	cfg.ConfigDir = configDir

	return cfg, nil
}
