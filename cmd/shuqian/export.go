package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/exporter"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to a browser-compatible HTML file",
		Long: `Export bookmarks as a Netscape bookmark file with one folder per
category. Defaults to ~/Downloads/shuqian-export-YYYY-MM-DD.html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runExport(cmd, flags, path)
		},
	}
}

// runExport writes all bookmarks from the API to an HTML file.
func runExport(cmd *cobra.Command, flags *globalFlags, outputPath string) error {
	cfg, err := flags.load()
	if err != nil {
		return err
	}
	log, err := newStderrLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("get default export path: %w", err)
		}
	}

	catalog := catalogFor(cfg)
	s, err := newStore(cfg, catalog, log)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Load(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", catalog.LoadFailed, err)
	}

	bookmarks := s.Bookmarks()
	html := exporter.ExportHTML(bookmarks, catalog)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(bookmarks), outputPath)
	return nil
}
