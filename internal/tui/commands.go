package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yusi/shuqian/internal/model"
)

// Messages carrying the outcome of store operations. The store has already
// applied the result and filled its error slot; the UI only reacts.
type (
	loadedMsg struct{ err error }

	addedMsg struct {
		bookmark *model.Bookmark
		err      error
	}

	deletedMsg struct {
		id  string
		err error
	}

	editedMsg struct {
		id  string
		err error
	}

	favoriteSyncedMsg struct {
		id  string
		err error
	}

	openedMsg struct{ err error }

	copiedMsg struct{ err error }
)

func (a App) loadCmd() tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return loadedMsg{err: s.Load(context.Background())}
	}
}

func (a App) addCmd(d model.Draft) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		b, err := s.Add(context.Background(), d)
		return addedMsg{bookmark: b, err: err}
	}
}

func (a App) deleteCmd(id string) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return deletedMsg{id: id, err: s.Delete(context.Background(), id)}
	}
}

func (a App) editCmd(id string, f model.Fields) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return editedMsg{id: id, err: s.Edit(context.Background(), id, f)}
	}
}

func (a App) syncFavoriteCmd(id string) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		return favoriteSyncedMsg{id: id, err: s.SyncFavorite(context.Background(), id)}
	}
}

func (a App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		return openedMsg{err: open(url)}
	}
}

func (a App) copyCmd(text string) tea.Cmd {
	copyText := a.copyText
	return func() tea.Msg {
		return copiedMsg{err: copyText(text)}
	}
}
