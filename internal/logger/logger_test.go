package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		if parseLevel(lvl) == nil {
			t.Errorf("parseLevel(%q) = nil, want level", lvl)
		}
	}
	if parseLevel("verbose") != nil {
		t.Error("parseLevel(verbose) should be nil")
	}
	if ValidLevel("") {
		t.Error("empty level should not be valid")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Options{Level: "info", OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Debug("hidden")
	log.With(String("op", "load")).Info("bookmarks loaded", Int("count", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "bookmarks loaded") || !strings.Contains(out, `"count":3`) {
		t.Errorf("log output missing entry: %s", out)
	}
	if !strings.Contains(out, `"op":"load"`) {
		t.Errorf("log output missing With field: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level: %s", out)
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("nothing")
	log.Errorf("nothing %d", 1)
	if err := log.Sync(); err != nil {
		t.Errorf("Sync on nop logger: %v", err)
	}
}
