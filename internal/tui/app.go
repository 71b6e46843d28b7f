package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yusi/shuqian/internal/browser"
	"github.com/yusi/shuqian/internal/filter"
	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/store"
	"github.com/yusi/shuqian/internal/tui/layout"
)

// MessageType determines the styling of status messages.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageSuccess
	MessageError
)

// App is the main bubbletea model for the bookmark manager.
type App struct {
	store            *store.Store
	engine           *filter.Engine
	catalog          *locale.Catalog
	log              logger.Logger
	keys             KeyMap
	styles           Styles
	layoutConfig     layout.LayoutConfig
	persistFavorites bool
	openURL          func(string) error
	copyText         func(string) error

	mode       Mode
	selections []model.Selection
	selection  int // index into selections
	cursor     int // index into the visible list
	search     SearchState
	form       FormState
	deleteID   string

	// Loading indicator
	spinner  spinner.Model
	pending  int // dispatched operations without a result yet
	spinning bool

	// Transient status, cleared on the next key
	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store            *store.Store
	Catalog          *locale.Catalog      // optional, defaults to zh-Hans
	Logger           logger.Logger        // optional
	PersistFavorites bool                 // follow each favorite toggle with a sync
	OpenURL          func(string) error   // optional, defaults to browser.Open
	CopyText         func(string) error   // optional, defaults to the system clipboard
	Keys             *KeyMap              // optional, uses default if nil
	Styles           *Styles              // optional, uses default if nil
	Layout           *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App. The initial load is started by Init, so the
// App reports loading from the first frame.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.Layout != nil {
		layoutCfg = *params.Layout
	}

	catalog := params.Catalog
	if catalog == nil {
		catalog = locale.Default()
	}

	log := params.Logger
	if log == nil {
		log = logger.NewNop()
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = browser.Open
	}

	copyText := params.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Loading

	return App{
		store:            params.Store,
		engine:           filter.NewEngine(params.Store),
		catalog:          catalog,
		log:              log,
		keys:             keys,
		styles:           styles,
		layoutConfig:     layoutCfg,
		persistFavorites: params.PersistFavorites,
		openURL:          openURL,
		copyText:         copyText,
		selections:       model.Selections(),
		search:           NewSearchState(layoutCfg, catalog),
		form:             NewFormState(layoutCfg, catalog),
		spinner:          sp,
		pending:          1,
		spinning:         true,
		width:            80,
		height:           24,
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current UI mode.
func (a App) Mode() Mode {
	return a.mode
}

// Query returns the live search query.
func (a App) Query() string {
	return a.search.Query()
}

// Selection returns the active category selection.
func (a App) Selection() model.Selection {
	return a.selections[a.selection]
}

// Visible returns the bookmarks that pass the current query and selection.
func (a App) Visible() []model.Bookmark {
	return a.engine.Result(a.search.Query(), a.Selection())
}

// Selected returns the bookmark under the cursor.
func (a App) Selected() (model.Bookmark, bool) {
	visible := a.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return model.Bookmark{}, false
	}
	return visible[a.cursor], true
}

// Loading reports whether any store operation is in flight.
func (a App) Loading() bool {
	return a.pending > 0 || a.store.Loading()
}

// Form returns the add/edit form state.
func (a App) Form() FormState {
	return a.form
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
		a.form.Description.SetWidth(modalWidth - 6)
		return a, nil

	case spinner.TickMsg:
		if !a.Loading() {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loadedMsg:
		a.settle()
		a.logResult("load", "", msg.err)
		a.clampCursor()
		return a, nil

	case addedMsg:
		a.settle()
		a.logResult("add", "", msg.err)
		if a.mode == ModeAdd && a.form.Saving {
			a.form.Saving = false
			if msg.err == nil && msg.bookmark != nil {
				a.closeForm()
			}
		}
		a.clampCursor()
		return a, nil

	case deletedMsg:
		a.settle()
		a.logResult("delete", msg.id, msg.err)
		a.clampCursor()
		return a, nil

	case editedMsg:
		a.settle()
		a.logResult("edit", msg.id, msg.err)
		if a.mode == ModeEdit && a.form.Saving && a.form.EditID == msg.id {
			a.form.Saving = false
			if msg.err == nil {
				a.closeForm()
			}
		}
		a.clampCursor()
		return a, nil

	case favoriteSyncedMsg:
		a.settle()
		a.logResult("favorite", msg.id, msg.err)
		a.clampCursor()
		return a, nil

	case openedMsg:
		if msg.err != nil {
			a.log.Warn("open url failed", logger.Error(msg.err))
			a.setMessage(MessageError, msg.err.Error())
		}
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.log.Warn("copy url failed", logger.Error(msg.err))
			a.setMessage(MessageError, msg.err.Error())
		} else {
			a.setMessage(MessageSuccess, a.catalog.Copied)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		a.search.Input, cmd = a.search.Input.Update(msg)
	case ModeAdd, ModeEdit:
		cmd = a.form.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	a.clearMessage()

	switch a.mode {
	case ModeSearch:
		return a.updateSearch(msg)
	case ModeAdd, ModeEdit:
		return a.updateForm(msg)
	case ModeConfirmDelete:
		return a.updateConfirmDelete(msg)
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
			a.mode = ModeNormal
		}
		return a, nil
	default:
		return a.updateNormal(msg)
	}
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	visible := a.Visible()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(visible) > 0 {
			a.cursor = len(visible) - 1
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.NextCategory):
		a.selection = (a.selection + 1) % len(a.selections)
		a.cursor = 0

	case key.Matches(msg, a.keys.PrevCategory):
		a.selection = (a.selection - 1 + len(a.selections)) % len(a.selections)
		a.cursor = 0

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		return a, a.form.LoadDraft(a.store.AddForm())

	case key.Matches(msg, a.keys.Edit):
		if b, ok := a.Selected(); ok {
			a.mode = ModeEdit
			return a, a.form.LoadBookmark(b)
		}

	case key.Matches(msg, a.keys.Delete):
		if b, ok := a.Selected(); ok {
			a.deleteID = b.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Favorite):
		if b, ok := a.Selected(); ok {
			a.store.ToggleFavorite(b.ID)
			a.clampCursor()
			if a.persistFavorites {
				return a, a.dispatch(a.syncFavoriteCmd(b.ID))
			}
		}

	case key.Matches(msg, a.keys.Open):
		if b, ok := a.Selected(); ok {
			return a, a.openCmd(b.URL)
		}

	case key.Matches(msg, a.keys.YankURL):
		if b, ok := a.Selected(); ok {
			return a, a.copyCmd(b.URL)
		}

	case key.Matches(msg, a.keys.Reload):
		return a, a.dispatch(a.loadCmd())

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Cancel):
		a.store.ClearError()
		if a.search.Query() != "" {
			a.search.Reset()
			a.cursor = 0
		}
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.search.Reset()
		a.mode = ModeNormal
		a.cursor = 0
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil

	case msg.Type == tea.KeyDown:
		if a.cursor < len(a.Visible())-1 {
			a.cursor++
		}
		return a, nil

	case msg.Type == tea.KeyUp:
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	}

	prev := a.search.Query()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if a.search.Query() != prev {
		a.cursor = 0
	}
	return a, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form.Saving {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Cancel):
		if a.mode == ModeAdd {
			a.store.SetAddForm(a.form.Draft())
		}
		a.closeForm()
		return a, nil

	case key.Matches(msg, a.keys.Save):
		return a.submitForm()

	case key.Matches(msg, a.keys.Submit) && a.form.Focus != FieldDescription:
		return a.submitForm()

	case key.Matches(msg, a.keys.NextField):
		return a, a.form.NextField(1)

	case key.Matches(msg, a.keys.PrevField):
		return a, a.form.NextField(-1)

	case a.form.Focus == FieldCategory && key.Matches(msg, a.keys.Left):
		a.form.CycleCategory(-1)
		return a, nil

	case a.form.Focus == FieldCategory && key.Matches(msg, a.keys.Right):
		a.form.CycleCategory(1)
		return a, nil
	}

	return a, a.form.Update(msg)
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	if a.mode == ModeAdd {
		d := a.form.Draft()
		a.store.SetAddForm(d)
		if !d.Complete() {
			// Nothing is sent; point the user at the missing field
			if d.Title == "" {
				return a, a.form.FocusField(FieldTitle)
			}
			return a, a.form.FocusField(FieldURL)
		}
		a.form.Saving = true
		return a, a.dispatch(a.addCmd(d))
	}

	a.form.Saving = true
	return a, a.dispatch(a.editCmd(a.form.EditID, a.form.Fields()))
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		id := a.deleteID
		a.deleteID = ""
		a.mode = ModeNormal
		return a, a.dispatch(a.deleteCmd(id))

	case key.Matches(msg, a.keys.Cancel, a.keys.Quit), msg.String() == "n":
		a.deleteID = ""
		a.mode = ModeNormal
	}
	return a, nil
}

// dispatch counts cmd as a pending store operation and starts the spinner.
func (a *App) dispatch(cmd tea.Cmd) tea.Cmd {
	a.pending++
	if a.spinning {
		return cmd
	}
	a.spinning = true
	return tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) settle() {
	if a.pending > 0 {
		a.pending--
	}
}

func (a *App) closeForm() {
	a.form.FocusField(fieldCount)
	a.form.EditID = ""
	a.mode = ModeNormal
}

func (a *App) clampCursor() {
	n := len(a.Visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageType = MessageNone
	a.messageText = ""
}

func (a App) logResult(op, id string, err error) {
	a.log.Debug(op+" finished", logger.String("id", id), logger.Error(err))
}
