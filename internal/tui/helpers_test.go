package tui_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/store"
	"github.com/yusi/shuqian/internal/tui"
	"github.com/yusi/shuqian/internal/tui/layout"
)

var errBoom = errors.New("boom")

// remote is an in-memory store.Remote that records mutations.
type remote struct {
	mu        sync.Mutex
	bookmarks []model.Bookmark
	created   []model.Bookmark
	patches   map[string][]model.Patch
	deleted   []string
	fail      map[string]error
}

func newRemote(bookmarks ...model.Bookmark) *remote {
	return &remote{
		bookmarks: bookmarks,
		patches:   map[string][]model.Patch{},
		fail:      map[string]error{},
	}
}

func (r *remote) setFail(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[method] = err
}

func (r *remote) List(ctx context.Context) ([]model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["list"]; err != nil {
		return nil, err
	}
	out := make([]model.Bookmark, len(r.bookmarks))
	copy(out, r.bookmarks)
	return out, nil
}

func (r *remote) Create(ctx context.Context, b model.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["create"]; err != nil {
		return err
	}
	r.created = append(r.created, b)
	r.bookmarks = append(r.bookmarks, b)
	return nil
}

func (r *remote) Update(ctx context.Context, id string, patch model.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches[id] = append(r.patches[id], patch)
	return r.fail["update"]
}

func (r *remote) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["delete"]; err != nil {
		return err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *remote) patchCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patches[id])
}

func (r *remote) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func sampleBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: "b1", Title: "Claude", URL: "https://claude.ai", Description: "AI 助手", Category: model.CategoryAI},
		{ID: "b2", Title: "GitHub", URL: "https://github.com", Description: "代码托管平台", Category: model.CategoryDev},
		{ID: "b3", Title: "中国知网", URL: "https://cnki.net", Description: "学术论文检索", Category: model.CategoryResearch},
	}
}

// newLoadedApp creates an App over r and runs the initial load.
func newLoadedApp(t *testing.T, r *remote, params tui.AppParams) (tui.App, *store.Store) {
	t.Helper()
	s := store.New(r, store.Options{})
	t.Cleanup(s.Close)

	params.Store = s
	if params.OpenURL == nil {
		params.OpenURL = func(string) error { return nil }
	}
	if params.CopyText == nil {
		params.CopyText = func(string) error { return nil }
	}

	app := tui.NewApp(params)
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = updated.(tui.App)
	return run(app, app.Init()), s
}

// run executes cmd and feeds the resulting messages back into the app,
// following any commands they produce. Spinner ticks are dropped, and so
// is anything that takes longer than a moment (cursor blinks).
func run(app tui.App, cmd tea.Cmd) tui.App {
	for _, msg := range collect(cmd) {
		updated, next := app.Update(msg)
		app = run(updated.(tui.App), next)
	}
	return app
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// keyMsg builds the KeyMsg for a key name as bubbletea reports it.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key in turn and runs the resulting commands.
func press(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		updated, cmd := app.Update(keyMsg(k))
		app = run(updated.(tui.App), cmd)
	}
	return app
}

// typeText sends text as a single rune sequence, like a paste.
func typeText(app tui.App, text string) tui.App {
	updated, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return run(updated.(tui.App), cmd)
}

func plainView(app tui.App) string {
	return layout.StripANSI(app.View())
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
