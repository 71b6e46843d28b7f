package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/linkcheck"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var (
		concurrency int
		timeout     time.Duration
		exclude     []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report bookmarks whose links are dead or unreachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log, err := newStderrLogger(cfg)
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

			errOut := cmd.ErrOrStderr()
			results := linkcheck.Check(cmd.Context(), s.Bookmarks(), linkcheck.Options{
				Concurrency:    concurrency,
				Timeout:        timeout,
				ExcludeDomains: exclude,
				Logger:         log,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				},
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			failed := linkcheck.Failed(results)
			out := cmd.OutOrStdout()
			if len(failed) == 0 {
				fmt.Fprintf(out, "All %d links are healthy\n", len(results))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, r := range failed {
				detail := r.Error
				if r.StatusCode != 0 {
					detail = fmt.Sprintf("%d %s", r.StatusCode, r.Error)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Status, r.Bookmark.Title, r.Bookmark.URL, detail)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d of %d links failed\n", len(failed), len(results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", 8, "Number of parallel requests")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "Timeout per request")
	cmd.Flags().StringSliceVar(&exclude, "exclude", []string{"github.com", "gitlab.com"}, "Domains whose 404s likely mean a login is required")
	return cmd
}
