package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/api"
	"github.com/yusi/shuqian/internal/config"
	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/store"
	"github.com/yusi/shuqian/internal/tui"
)

const longHelp = `shuqian - 书签盒, a bookmark manager backed by a REST API

Usage:
  shuqian                    Open interactive TUI
  shuqian <query>            Quick search → select → open
  shuqian import <file>      Import bookmarks from browser HTML
  shuqian export [path]      Export bookmarks to HTML
  shuqian serve              Run the bookmark API server
  shuqian check              Report dead links

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    Tab/S-Tab   Cycle category filter

  Actions:
    o/Enter     Open bookmark in browser
    Y           Copy URL to clipboard
    /           Search title and description
    f           Toggle favorite
    r           Reload from the server

  Editing:
    a           Add bookmark
    e           Edit selected bookmark
    d           Delete (confirm with y)

  Other:
    ?           Show help overlay
    q           Quit

Config:
  ~/.config/shuqian/config.yaml (SHUQIAN_* environment variables override it)`

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	apiURL     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "shuqian [query...]",
		Short:         "Bookmark manager for the terminal",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return runTUI(cfg)
			}
			return runQuickSearch(cmd, cfg, strings.Join(args, " "))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath(), "Path to the config file")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Bookmark API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(
		newImportCmd(flags),
		newExportCmd(flags),
		newServeCmd(flags),
		newCheckCmd(flags),
	)
	return cmd
}

// load reads the config file and applies flag overrides on top.
func (f *globalFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newFileLogger logs to cfg.LogFile so full-screen UIs keep the terminal clean.
func newFileLogger(cfg *config.Config) (logger.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Pretty:     cfg.PrettyLog,
		OutputPath: cfg.LogFile,
	})
}

func newStderrLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
	})
}

func catalogFor(cfg *config.Config) *locale.Catalog {
	if cfg.Language == "" {
		return locale.FromEnv()
	}
	return locale.For(cfg.Language)
}

// newStore builds a Store over the configured API.
func newStore(cfg *config.Config, catalog *locale.Catalog, log logger.Logger) (*store.Store, error) {
	client, err := api.NewClient(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return store.New(client, store.Options{
		DefaultCategory: cfg.DefaultCategory,
		Catalog:         catalog,
		Logger:          log,
	}), nil
}

// runTUI runs the full interactive TUI.
func runTUI(cfg *config.Config) error {
	log, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	catalog := catalogFor(cfg)
	s, err := newStore(cfg, catalog, log)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("starting tui", logger.String("api_url", cfg.APIURL))
	app := tui.NewApp(tui.AppParams{
		Store:            s,
		Catalog:          catalog,
		Logger:           log,
		PersistFavorites: cfg.PersistFavorites,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
