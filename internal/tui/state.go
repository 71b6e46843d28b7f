package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/tui/layout"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeEdit
	ModeConfirmDelete
	ModeHelp
)

// FormField identifies one input of the add/edit form.
type FormField int

const (
	FieldTitle FormField = iota
	FieldURL
	FieldDescription
	FieldCategory
	fieldCount
)

// FormState holds the inputs of the add/edit modal.
type FormState struct {
	Title       textinput.Model
	URL         textinput.Model
	Description textarea.Model
	Focus       FormField
	EditID      string // bookmark being edited, empty in add mode
	Saving      bool   // request in flight, modal waits for the result

	categories []model.Category
	category   int            // index into categories, -1 for unknown
	unknown    model.Category // category outside the fixed set, kept as-is
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig, catalog *locale.Catalog) FormState {
	title := textinput.New()
	title.Placeholder = catalog.FieldTitle
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Width = cfg.Input.StandardWidth

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = cfg.Input.URLCharLimit
	url.Width = cfg.Input.StandardWidth

	desc := textarea.New()
	desc.Placeholder = catalog.FieldDescription
	desc.CharLimit = cfg.Input.DescriptionCharLimit
	desc.ShowLineNumbers = false
	desc.SetWidth(cfg.Input.StandardWidth)
	desc.SetHeight(cfg.Input.DescriptionHeight)

	return FormState{
		Title:       title,
		URL:         url,
		Description: desc,
		categories:  model.Categories(),
	}
}

// LoadDraft fills the form from the add-form buffer.
func (f *FormState) LoadDraft(d model.Draft) tea.Cmd {
	f.EditID = ""
	f.fill(d.Title, d.URL, d.Description, d.Category)
	return f.FocusField(FieldTitle)
}

// LoadBookmark fills the form for editing b.
func (f *FormState) LoadBookmark(b model.Bookmark) tea.Cmd {
	f.EditID = b.ID
	f.fill(b.Title, b.URL, b.Description, b.Category)
	return f.FocusField(FieldTitle)
}

func (f *FormState) fill(title, url, desc string, c model.Category) {
	f.Saving = false
	f.Title.SetValue(title)
	f.Title.CursorEnd()
	f.URL.SetValue(url)
	f.URL.CursorEnd()
	f.Description.SetValue(desc)
	f.SetCategory(c)
}

// Draft returns the form contents as an add-form draft.
func (f FormState) Draft() model.Draft {
	return model.Draft{
		Title:       f.Title.Value(),
		URL:         f.URL.Value(),
		Description: f.Description.Value(),
		Category:    f.Category(),
	}
}

// Fields returns the form contents as edit fields.
func (f FormState) Fields() model.Fields {
	return model.Fields{
		Title:       f.Title.Value(),
		URL:         f.URL.Value(),
		Description: f.Description.Value(),
		Category:    f.Category(),
	}
}

// Category returns the selected category.
func (f FormState) Category() model.Category {
	if f.category < 0 || f.category >= len(f.categories) {
		return f.unknown
	}
	return f.categories[f.category]
}

// SetCategory selects c. Values outside the fixed set stay selected until
// the user cycles away from them.
func (f *FormState) SetCategory(c model.Category) {
	f.category = c.Index()
	f.unknown = ""
	if f.category < 0 {
		f.unknown = c
		if c == "" {
			f.category = model.CategoryOther.Index()
		}
	}
}

// CycleCategory moves the category selection by delta, wrapping around.
func (f *FormState) CycleCategory(delta int) {
	n := len(f.categories)
	if f.category < 0 {
		// Leaving an unknown category starts from the ends of the list
		if delta > 0 {
			f.category = 0
		} else {
			f.category = n - 1
		}
		f.unknown = ""
		return
	}
	f.category = ((f.category+delta)%n + n) % n
}

// FocusField focuses one input and blurs the rest.
func (f *FormState) FocusField(field FormField) tea.Cmd {
	f.Focus = field
	f.Title.Blur()
	f.URL.Blur()
	f.Description.Blur()

	switch field {
	case FieldTitle:
		return f.Title.Focus()
	case FieldURL:
		return f.URL.Focus()
	case FieldDescription:
		return f.Description.Focus()
	}
	return nil
}

// NextField moves focus forward (delta 1) or back (delta -1), wrapping.
func (f *FormState) NextField(delta int) tea.Cmd {
	next := ((int(f.Focus)+delta)%int(fieldCount) + int(fieldCount)) % int(fieldCount)
	return f.FocusField(FormField(next))
}

// Update forwards msg to the focused input.
func (f *FormState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.Focus {
	case FieldTitle:
		f.Title, cmd = f.Title.Update(msg)
	case FieldURL:
		f.URL, cmd = f.URL.Update(msg)
	case FieldDescription:
		f.Description, cmd = f.Description.Update(msg)
	}
	return cmd
}

// SearchState holds the live search box.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig, catalog *locale.Catalog) SearchState {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = catalog.SearchPlaceholder
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth
	return SearchState{Input: input}
}

// Query returns the current query text.
func (s SearchState) Query() string {
	return s.Input.Value()
}

// Reset clears the query and blurs the input.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Input.Blur()
}
