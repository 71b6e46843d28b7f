package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/importer"
	"github.com/yusi/shuqian/internal/logger"
)

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Import bookmarks from a Netscape bookmark file, as exported by every
major browser. Folder names that match a category are kept; everything else
lands in the default category. URLs already present are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags, args[0])
		},
	}
}

// runImport parses an HTML bookmark file and adds its bookmarks through the API.
func runImport(cmd *cobra.Command, flags *globalFlags, path string) error {
	cfg, err := flags.load()
	if err != nil {
		return err
	}
	log, err := newStderrLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	drafts, err := importer.ParseHTMLBookmarks(file, cfg.DefaultCategory)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	catalog := catalogFor(cfg)
	s, err := newStore(cfg, catalog, log)
	if err != nil {
		return err
	}
	defer s.Close()

	// Existing URLs are needed for duplicate detection
	if err := s.Load(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", catalog.LoadFailed, err)
	}

	res := importer.Import(cmd.Context(), s, drafts)
	for _, e := range res.Errors {
		log.Warn("import error", logger.Error(e))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks (%d skipped, %d failed)\n", res.Added, res.Skipped, res.Failed)
	if res.Failed > 0 {
		return fmt.Errorf("%d bookmarks failed to import", res.Failed)
	}
	return nil
}
