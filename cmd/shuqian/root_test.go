package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yusi/shuqian/internal/config"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/server"
	"github.com/yusi/shuqian/internal/storage"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	tests := []struct {
		name         string
		flagName     string
		defaultValue string
	}{
		{"config flag defaults to the config path", "config", config.DefaultPath()},
		{"api-url flag defaults to empty", "api-url", ""},
		{"log-level flag defaults to empty", "log-level", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmd.PersistentFlags().GetString(tt.flagName)
			if err != nil {
				t.Fatalf("Failed to get flag %s: %v", tt.flagName, err)
			}
			if got != tt.defaultValue {
				t.Errorf("Flag %s: got %q, want %q", tt.flagName, got, tt.defaultValue)
			}
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := newRootCmd()

	want := map[string]bool{"import": false, "export": false, "serve": false, "check": false}
	for _, sub := range cmd.Commands() {
		name := sub.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestSubcommand_Args(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{[]string{"import"}, true},
		{[]string{"import", "a.html", "b.html"}, true},
		{[]string{"export", "a.html", "b.html"}, true},
		{[]string{"serve", "extra"}, true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestGlobalFlags_Overrides(t *testing.T) {
	dir := t.TempDir()
	flags := &globalFlags{
		configPath: filepath.Join(dir, "config.yaml"),
		apiURL:     "http://example.com:9000/api",
		logLevel:   "debug",
	}

	cfg, err := flags.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://example.com:9000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	// The config file is created with defaults
	if _, err := os.Stat(flags.configPath); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestGlobalFlags_RejectsBadOverride(t *testing.T) {
	flags := &globalFlags{
		configPath: filepath.Join(t.TempDir(), "config.yaml"),
		logLevel:   "loud",
	}
	if _, err := flags.load(); err == nil {
		t.Error("expected invalid log level to be rejected")
	}
}

// newAPI starts the bookmark API over an in-memory database seeded with bookmarks.
func newAPI(t *testing.T, bookmarks ...model.Bookmark) (string, storage.Repository) {
	t.Helper()
	repo, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	for _, b := range bookmarks {
		if err := repo.Create(context.Background(), b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	srv := server.New(config.Default().Server, repo, logger.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/api", repo
}

func execute(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--api-url", apiURL,
		"--log-level", "error",
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(base, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	apiURL, _ := newAPI(t,
		model.Bookmark{ID: "a", Title: "Claude", URL: "https://claude.ai", Category: model.CategoryAI},
		model.Bookmark{ID: "b", Title: "GitHub", URL: "https://github.com", Category: model.CategoryDev},
	)
	path := filepath.Join(t.TempDir(), "nested", "export.html")

	out, err := execute(t, apiURL, "export", path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 2 bookmarks") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	html := string(data)
	for _, want := range []string{"<!DOCTYPE NETSCAPE-Bookmark-file-1>", "https://claude.ai", "GitHub"} {
		if !strings.Contains(html, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestImportCommand(t *testing.T) {
	apiURL, repo := newAPI(t,
		model.Bookmark{ID: "a", Title: "GitHub", URL: "https://github.com", Category: model.CategoryDev},
	)

	src := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>AI 工具</H3>
    <DL><p>
        <DT><A HREF="https://claude.ai">Claude</A>
    </DL><p>
    <DT><A HREF="https://github.com">GitHub</A>
    <DT><A HREF="https://go.dev">Go</A>
</DL><p>
`
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, apiURL, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 bookmarks (1 skipped, 0 failed)") {
		t.Errorf("unexpected output: %q", out)
	}

	stored, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored bookmarks, got %d", len(stored))
	}
	if stored[1].Category != model.CategoryAI {
		t.Errorf("Claude category = %q, want %q", stored[1].Category, model.CategoryAI)
	}
}

func TestCheckCommand(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer site.Close()

	apiURL, _ := newAPI(t,
		model.Bookmark{ID: "a", Title: "Alive", URL: site.URL + "/", Category: model.CategoryOther},
		model.Bookmark{ID: "b", Title: "Gone", URL: site.URL + "/gone", Category: model.CategoryOther},
	)

	out, err := execute(t, apiURL, "check", "--exclude", "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "Gone") || strings.Contains(out, "Alive") {
		t.Errorf("expected only the dead link in the report, got %q", out)
	}
	if !strings.Contains(out, "1 of 2 links failed") {
		t.Errorf("unexpected summary: %q", out)
	}
}

func TestImportCommand_MissingFile(t *testing.T) {
	apiURL, _ := newAPI(t)
	if _, err := execute(t, apiURL, "import", filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestQuickSearch_NoResults(t *testing.T) {
	apiURL, _ := newAPI(t,
		model.Bookmark{ID: "a", Title: "Claude", URL: "https://claude.ai", Category: model.CategoryAI},
	)
	t.Setenv("SHUQIAN_LOG_FILE", filepath.Join(t.TempDir(), "shuqian.log"))

	out, err := execute(t, apiURL, "zzzzqqq")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No bookmarks found for 'zzzzqqq'") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestQuickSearch_LoadFailure(t *testing.T) {
	t.Setenv("SHUQIAN_LOG_FILE", filepath.Join(t.TempDir(), "shuqian.log"))

	// Nothing listens here
	if _, err := execute(t, "http://127.0.0.1:1/api", "claude"); err == nil {
		t.Error("expected error when the API is unreachable")
	}
}

func TestRunServe_GracefulShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.Server.Listen = "127.0.0.1:0"
	cfg.Server.DBPath = filepath.Join(t.TempDir(), "db", "bookmarks.db")
	cfg.Server.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, &cfg) }()

	// Let the listener come up, then ask for shutdown
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServe did not shut down")
	}

	if _, err := os.Stat(cfg.Server.DBPath); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}
