package tui_test

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/store"
	"github.com/yusi/shuqian/internal/tui"
)

func TestApp_InitialLoad(t *testing.T) {
	s := store.New(newRemote(sampleBookmarks()...), store.Options{})
	defer s.Close()

	app := tui.NewApp(tui.AppParams{Store: s})
	assert.Assert(t, app.Loading(), "app should report loading before the first load finishes")
	assert.Assert(t, is.Contains(plainView(app), "加载中..."))

	app = run(app, app.Init())
	assert.Assert(t, !app.Loading())
	assert.Equal(t, len(app.Visible()), 3)

	view := plainView(app)
	assert.Assert(t, is.Contains(view, "Claude"))
	assert.Assert(t, is.Contains(view, "GitHub"))
	assert.Assert(t, !contains(view, "加载中..."))
}

func TestApp_Navigation_JK(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})
	assert.Equal(t, app.Cursor(), 0)

	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 1)

	app = press(app, "k")
	assert.Equal(t, app.Cursor(), 0)

	// No wrap at either end
	app = press(app, "k")
	assert.Equal(t, app.Cursor(), 0)
	app = press(app, "j", "j", "j", "j")
	assert.Equal(t, app.Cursor(), 2)
}

func TestApp_Navigation_TopBottom(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "G")
	assert.Equal(t, app.Cursor(), 2)

	// A single g does nothing
	app = press(app, "g")
	assert.Equal(t, app.Cursor(), 2)

	app = press(app, "g")
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_CategoryCycle(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})
	app = press(app, "j")

	// all -> favorites
	app = press(app, "tab")
	assert.Equal(t, app.Selection(), model.SelectFavorites())
	assert.Equal(t, app.Cursor(), 0)
	assert.Equal(t, len(app.Visible()), 0)

	// favorites -> AI
	app = press(app, "tab")
	assert.Equal(t, app.Selection(), model.SelectCategory(model.CategoryAI))
	assert.Equal(t, len(app.Visible()), 1)
	assert.Equal(t, app.Visible()[0].ID, "b1")

	// back around to the end of the cycle
	app = press(app, "shift+tab", "shift+tab", "shift+tab")
	assert.Equal(t, app.Selection(), model.SelectCategory(model.CategoryOther))
}

func TestApp_Search(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "/")
	assert.Equal(t, app.Mode(), tui.ModeSearch)

	app = typeText(app, "git")
	assert.Equal(t, app.Query(), "git")
	assert.Equal(t, len(app.Visible()), 1)
	assert.Equal(t, app.Visible()[0].ID, "b2")

	// Enter keeps the query
	app = press(app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Query(), "git")

	// Esc in normal mode clears it
	app = press(app, "esc")
	assert.Equal(t, app.Query(), "")
	assert.Equal(t, len(app.Visible()), 3)
}

func TestApp_SearchMatchesDescription(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "/")
	app = typeText(app, "论文")
	assert.Equal(t, len(app.Visible()), 1)
	assert.Equal(t, app.Visible()[0].ID, "b3")

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Query(), "")
}

func TestApp_SearchAndCategoryCombine(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "/")
	app = typeText(app, "u")
	app = press(app, "enter")
	assert.Equal(t, len(app.Visible()), 2) // Claude, GitHub

	app = press(app, "tab", "tab") // AI
	assert.Equal(t, len(app.Visible()), 1)
	assert.Equal(t, app.Visible()[0].ID, "b1")
}

func TestApp_EmptyState(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "/")
	app = typeText(app, "nothing matches this")
	view := plainView(app)
	assert.Assert(t, is.Contains(view, "没有找到书签"))
	assert.Assert(t, is.Contains(view, "请尝试调整搜索或筛选条件"))
}

func TestApp_FavoriteSessionOnly(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "f")
	b, _ := s.Get("b1")
	assert.Assert(t, b.Favorite)
	assert.Equal(t, r.patchCount("b1"), 0)

	app = press(app, "tab")
	assert.Equal(t, len(app.Visible()), 1)
	assert.Assert(t, is.Contains(plainView(app), "♥"))

	// Unfavoriting inside the favorites view empties it
	app = press(app, "f")
	assert.Equal(t, len(app.Visible()), 0)
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_FavoritePersisted(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{PersistFavorites: true})

	app = press(app, "j", "f")
	assert.Equal(t, r.patchCount("b2"), 1)
	assert.Assert(t, !app.Loading())

	b, _ := s.Get("b2")
	assert.Assert(t, b.Favorite)

	// Clearing the flag is synced too
	app = press(app, "f")
	assert.Equal(t, r.patchCount("b2"), 2)
	b, _ = s.Get("b2")
	assert.Assert(t, !b.Favorite)
}

func TestApp_FavoriteSyncFailureReverts(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	r.setFail("update", errBoom)
	app, s := newLoadedApp(t, r, tui.AppParams{PersistFavorites: true})

	app = press(app, "f")
	b, _ := s.Get("b1")
	assert.Assert(t, !b.Favorite)
	assert.Assert(t, is.Contains(plainView(app), "同步常用页失败"))
}

func TestApp_Add(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "a")
	assert.Equal(t, app.Mode(), tui.ModeAdd)
	assert.Equal(t, app.Form().Focus, tui.FieldTitle)
	assert.Equal(t, app.Form().Category(), model.CategoryOther)

	app = typeText(app, "Go")
	app = press(app, "tab")
	app = typeText(app, "https://go.dev")
	app = press(app, "tab")
	app = typeText(app, "The Go programming language")
	app = press(app, "ctrl+s")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, r.createdCount(), 1)
	assert.Equal(t, s.Len(), 4)

	added := s.Bookmarks()[3]
	assert.Equal(t, added.Title, "Go")
	assert.Equal(t, added.URL, "https://go.dev")
	assert.Equal(t, added.Description, "The Go programming language")
	assert.Equal(t, added.Category, model.CategoryOther)

	// The form starts fresh next time
	app = press(app, "a")
	assert.Equal(t, app.Form().Title.Value(), "")
}

func TestApp_AddWithEnter(t *testing.T) {
	r := newRemote()
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "a")
	app = typeText(app, "Go")
	app = press(app, "tab")
	app = typeText(app, "https://go.dev")
	app = press(app, "enter")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, s.Len(), 1)
}

func TestApp_AddCategoryPicker(t *testing.T) {
	r := newRemote()
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "a", "tab", "tab", "tab")
	assert.Equal(t, app.Form().Focus, tui.FieldCategory)

	// 其他 is last, so right wraps to the first category
	app = press(app, "right")
	assert.Equal(t, app.Form().Category(), model.CategoryAI)
	app = press(app, "right", "right")
	assert.Equal(t, app.Form().Category(), model.CategoryDev)
	app = press(app, "left")
	assert.Equal(t, app.Form().Category(), model.CategoryResearch)

	app = press(app, "tab") // wraps to title
	app = typeText(app, "arXiv")
	app = press(app, "tab")
	app = typeText(app, "https://arxiv.org")
	app = press(app, "ctrl+s")

	b := s.Bookmarks()[0]
	assert.Equal(t, b.Category, model.CategoryResearch)
}

func TestApp_AddIncompleteStaysOpen(t *testing.T) {
	r := newRemote()
	app, _ := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "a")
	app = typeText(app, "no url")
	app = press(app, "ctrl+s")

	assert.Equal(t, app.Mode(), tui.ModeAdd)
	assert.Equal(t, app.Form().Focus, tui.FieldURL)
	assert.Equal(t, r.createdCount(), 0)
}

func TestApp_AddFailureKeepsModalAndDraft(t *testing.T) {
	r := newRemote()
	r.setFail("create", errBoom)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "a")
	app = typeText(app, "Go")
	app = press(app, "tab")
	app = typeText(app, "https://go.dev")
	app = press(app, "ctrl+s")

	assert.Equal(t, app.Mode(), tui.ModeAdd)
	assert.Equal(t, s.Len(), 0)
	assert.Assert(t, is.Contains(plainView(app), "添加书签失败"))

	// Cancel and reopen: the draft survives
	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	app = press(app, "a")
	assert.Equal(t, app.Form().Title.Value(), "Go")
	assert.Equal(t, app.Form().URL.Value(), "https://go.dev")
}

func TestApp_CancelAddKeepsDraft(t *testing.T) {
	app, s := newLoadedApp(t, newRemote(), tui.AppParams{})

	app = press(app, "a")
	app = typeText(app, "half done")
	app = press(app, "esc")

	assert.Equal(t, s.AddForm().Title, "half done")
	assert.Equal(t, s.Len(), 0)
}

func TestApp_Edit(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "e")
	assert.Equal(t, app.Mode(), tui.ModeEdit)
	assert.Equal(t, app.Form().Title.Value(), "Claude")
	assert.Equal(t, app.Form().Category(), model.CategoryAI)

	app = typeText(app, " Pro")
	app = press(app, "enter")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, r.patchCount("b1"), 1)
	b, _ := s.Get("b1")
	assert.Equal(t, b.Title, "Claude Pro")
	assert.Equal(t, b.URL, "https://claude.ai")
}

func TestApp_EditFailureKeepsModal(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	r.setFail("update", errBoom)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "e")
	app = typeText(app, " Pro")
	app = press(app, "ctrl+s")

	assert.Equal(t, app.Mode(), tui.ModeEdit)
	assert.Assert(t, is.Contains(plainView(app), "编辑书签失败"))
	b, _ := s.Get("b1")
	assert.Equal(t, b.Title, "Claude")
}

func TestApp_EditUnknownCategoryPreserved(t *testing.T) {
	r := newRemote(model.Bookmark{ID: "x", Title: "Old", URL: "https://old.example", Category: "旧分类"})
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "e")
	assert.Equal(t, app.Form().Category(), model.Category("旧分类"))
	assert.Assert(t, is.Contains(plainView(app), "旧分类"))

	app = press(app, "ctrl+s")
	b, _ := s.Get("x")
	assert.Equal(t, b.Category, model.Category("旧分类"))
}

func TestApp_Delete(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "G", "d")
	assert.Equal(t, app.Mode(), tui.ModeConfirmDelete)
	assert.Assert(t, is.Contains(plainView(app), "中国知网"))

	app = press(app, "y")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, s.Len(), 2)
	_, ok := s.Get("b3")
	assert.Assert(t, !ok)

	// Cursor follows the shrinking list
	assert.Equal(t, app.Cursor(), 1)
}

func TestApp_DeleteCancelled(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "d", "n")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, s.Len(), 3)

	app = press(app, "d", "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, s.Len(), 3)
}

func TestApp_DeleteFailure(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	r.setFail("delete", errBoom)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	app = press(app, "d", "y")
	assert.Equal(t, s.Len(), 3)
	assert.Assert(t, is.Contains(plainView(app), "删除书签失败"))
}

func TestApp_OpenAndYank(t *testing.T) {
	var opened, copied string
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{
		OpenURL:  func(u string) error { opened = u; return nil },
		CopyText: func(u string) error { copied = u; return nil },
	})

	app = press(app, "j", "enter")
	assert.Equal(t, opened, "https://github.com")

	app = press(app, "j", "o")
	assert.Equal(t, opened, "https://cnki.net")

	app = press(app, "Y")
	assert.Equal(t, copied, "https://cnki.net")
	assert.Assert(t, is.Contains(plainView(app), "已复制网址"))

	// The message goes away on the next key
	app = press(app, "k")
	assert.Assert(t, !contains(plainView(app), "已复制网址"))
}

func TestApp_OpenFailureShowsMessage(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{
		OpenURL: func(string) error { return errors.New("no browser") },
	})

	app = press(app, "o")
	assert.Assert(t, is.Contains(plainView(app), "no browser"))
}

func TestApp_LoadFailure(t *testing.T) {
	r := newRemote(sampleBookmarks()...)
	r.setFail("list", errBoom)
	app, s := newLoadedApp(t, r, tui.AppParams{})

	assert.Equal(t, s.Len(), 0)
	view := plainView(app)
	assert.Assert(t, is.Contains(view, "加载书签失败"))
	assert.Assert(t, is.Contains(view, "没有找到书签"))

	// Esc clears the error slot
	app = press(app, "esc")
	assert.Equal(t, s.Err(), "")

	// Reload after the remote recovers
	r.setFail("list", nil)
	app = press(app, "r")
	assert.Equal(t, len(app.Visible()), 3)
}

func TestApp_Help(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(sampleBookmarks()...), tui.AppParams{})

	app = press(app, "?")
	assert.Equal(t, app.Mode(), tui.ModeHelp)
	assert.Assert(t, is.Contains(plainView(app), "favorite"))

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_Quit(t *testing.T) {
	app, _ := newLoadedApp(t, newRemote(), tui.AppParams{})

	_, cmd := app.Update(keyMsg("q"))
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok, "q should quit")

	// ctrl+c quits from any mode
	app = press(app, "a")
	_, cmd = app.Update(keyMsg("ctrl+c"))
	assert.Assert(t, cmd != nil)
	_, ok = cmd().(tea.QuitMsg)
	assert.Assert(t, ok, "ctrl+c should quit from the form")
}
