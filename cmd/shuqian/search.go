package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/browser"
	"github.com/yusi/shuqian/internal/config"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/picker"
	"github.com/yusi/shuqian/internal/search"
)

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(cmd *cobra.Command, cfg *config.Config, query string) error {
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

	if err := s.Load(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", catalog.LoadFailed, err)
	}

	results := search.FuzzySearchBookmarks(s.Bookmarks(), query)
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
		return nil
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0].Bookmark
		fmt.Fprintf(out, "Opening: %s\n", selected.Title)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query, catalog)
		finalModel, err := tea.NewProgram(p).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		return nil
	}
	log.Info("opening bookmark", logger.String("id", selected.ID), logger.String("url", selected.URL))
	return browser.Open(selected.URL)
}
