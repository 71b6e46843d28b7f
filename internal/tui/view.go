package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yusi/shuqian/internal/model"
	"github.com/yusi/shuqian/internal/store"
	"github.com/yusi/shuqian/internal/tui/layout"
)

// renderView renders the entire UI.
func (a App) renderView() string {
	switch a.mode {
	case ModeAdd, ModeEdit, ModeConfirmDelete:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		"",
		a.search.Input.View(),
		a.renderCategoryBar(),
		"",
		a.renderList(),
		a.renderHelpBar(),
	))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderHeader() string {
	return a.styles.Title.Render(a.catalog.AppTitle) + "  " + a.styles.Subtitle.Render(a.catalog.AppSubtitle)
}

// renderCategoryBar renders the selector tabs. When they don't fit, a window
// around the active tab is shown with arrows marking the clipped sides.
func (a App) renderCategoryBar() string {
	avail := a.width - 4 - 4 // app padding, room for the arrows

	tabs := make([]string, len(a.selections))
	for i, sel := range a.selections {
		style := a.styles.Tab
		if i == a.selection {
			style = a.styles.TabActive
		}
		tabs[i] = style.Render(a.catalog.SelectionLabel(sel))
	}

	start, end := a.selection, a.selection+1
	used := lipgloss.Width(tabs[a.selection])
	for {
		grew := false
		if end < len(tabs) && used+lipgloss.Width(tabs[end]) <= avail {
			used += lipgloss.Width(tabs[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Width(tabs[start-1]) <= avail {
			start--
			used += lipgloss.Width(tabs[start])
			grew = true
		}
		if !grew {
			break
		}
	}

	bar := strings.Join(tabs[start:end], "")
	if start > 0 {
		bar = a.styles.Help.Render("‹ ") + bar
	}
	if end < len(tabs) {
		bar += a.styles.Help.Render(" ›")
	}
	return bar
}

// renderList renders the visible bookmarks, the empty state, or the loading
// text before anything has arrived.
func (a App) renderList() string {
	visible := a.Visible()

	if len(visible) == 0 {
		if a.Loading() && a.store.Len() == 0 {
			return a.spinner.View() + " " + a.styles.Loading.Render(a.catalog.Loading)
		}
		return a.styles.EmptyTitle.Render(a.catalog.EmptyTitle) + "\n" +
			a.styles.Empty.Render(a.catalog.EmptyHint)
	}

	maxItems := layout.CalculateListItems(a.height, a.layoutConfig.List)
	offset := layout.CalculateViewportOffset(a.cursor, len(visible), maxItems)
	end := offset + maxItems
	if end > len(visible) {
		end = len(visible)
	}

	width := layout.CalculateItemWidth(a.width, a.layoutConfig.List)
	items := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		items = append(items, a.renderItem(visible[i], i == a.cursor, width))
	}
	return strings.Join(items, "\n")
}

// renderItem renders one bookmark as three lines: title with favorite
// marker and category, description, URL.
func (a App) renderItem(b model.Bookmark, selected bool, maxWidth int) string {
	prefix := "  "
	style := a.styles.Item
	if selected {
		prefix = "▸ "
		style = a.styles.ItemSelected
	}

	label := a.catalog.CategoryLabel(b.Category)
	marker := ""
	if b.Favorite {
		marker = " ♥"
	}

	// Title shares the line with the marker and the category label
	titleWidth := maxWidth - 3 - layout.VisibleWidth(marker) - 2 - layout.VisibleWidth(label)
	title, _ := layout.TruncateText(b.Title, titleWidth, a.layoutConfig.Text)

	line := style.Render(prefix + title)
	if marker != "" {
		line += a.styles.Favorite.Render(marker)
	}
	line += "  " + a.styles.Category.Render(label)

	desc := strings.Join(strings.Fields(b.Description), " ")
	desc, _ = layout.TruncateText(desc, maxWidth-3, a.layoutConfig.Text)
	url, _ := layout.TruncateText(b.URL, maxWidth-3, a.layoutConfig.Text)

	return line + "\n" + a.styles.Description.Render(desc) + "\n" + a.styles.URL.Render(url)
}

// renderHelpBar renders the status line and the keyboard hints.
func (a App) renderHelpBar() string {
	lines := []string{"", a.renderStatusLine()}
	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}
	return strings.Join(lines, "\n")
}

// renderStatusLine shows, in order of precedence: the loading indicator,
// the store's error slot, or the transient message.
func (a App) renderStatusLine() string {
	switch {
	case a.Loading():
		return a.spinner.View() + " " + a.styles.Loading.Render(a.catalog.Loading)
	case a.store.Err() != "":
		return a.styles.Error.Render("✗ " + a.store.Err())
	case a.messageText != "":
		return a.renderMessageLine()
	}
	return ""
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Help.Render(a.messageText)
	}
}

func (a App) renderModal() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	var content string
	if a.mode == ModeConfirmDelete {
		content = a.renderConfirmDelete()
	} else {
		content = a.renderForm()
	}

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content),
	)
}

func (a App) renderForm() string {
	var b strings.Builder

	title := a.catalog.AddTitle
	if a.mode == ModeEdit {
		title = a.catalog.EditTitle
	}
	b.WriteString(a.styles.Title.Render(title) + "\n\n")

	b.WriteString(a.renderFieldLabel(FieldTitle, a.catalog.FieldTitle) + "\n")
	b.WriteString(a.form.Title.View() + "\n\n")

	b.WriteString(a.renderFieldLabel(FieldURL, a.catalog.FieldURL) + "\n")
	b.WriteString(a.form.URL.View() + "\n\n")

	b.WriteString(a.renderFieldLabel(FieldDescription, a.catalog.FieldDescription) + "\n")
	b.WriteString(a.form.Description.View() + "\n\n")

	b.WriteString(a.renderFieldLabel(FieldCategory, a.catalog.FieldCategory) + "\n")
	category := "‹ " + a.catalog.CategoryLabel(a.form.Category()) + " ›"
	if a.form.Focus == FieldCategory {
		b.WriteString(a.styles.LabelActive.Render(category))
	} else {
		b.WriteString(a.styles.Item.Render(category))
	}
	b.WriteString("\n\n")

	switch {
	case a.form.Saving:
		b.WriteString(a.spinner.View() + " " + a.styles.Loading.Render(a.catalog.Loading) + "\n\n")
	case a.formError() != "":
		b.WriteString(a.styles.Error.Render("✗ "+a.formError()) + "\n\n")
	}

	b.WriteString(a.renderHintsInline(a.getFormHints().All()))
	return b.String()
}

func (a App) renderFieldLabel(field FormField, text string) string {
	if a.form.Focus == field {
		return a.styles.LabelActive.Render(text)
	}
	return a.styles.Label.Render(text)
}

// formError returns the store error when it belongs to the open form.
func (a App) formError() string {
	want := store.OpAdd
	if a.mode == ModeEdit {
		want = store.OpEdit
	}
	if a.store.ErrOp() != want {
		return ""
	}
	return a.store.Err()
}

func (a App) renderConfirmDelete() string {
	var b strings.Builder
	b.WriteString(a.styles.Error.Render(a.catalog.DeleteConfirm) + "\n\n")

	if bm, ok := a.store.Get(a.deleteID); ok {
		b.WriteString(a.styles.ItemSelected.Render(bm.Title) + "\n")
		b.WriteString(a.styles.URL.Render(bm.URL) + "\n\n")
	}

	b.WriteString(a.renderHintsInline([]Hint{
		{Key: "y", Desc: "confirm"},
		{Key: "n/Esc", Desc: "cancel"},
	}))
	return b.String()
}

// renderHelpOverlay renders the full keybinding reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: Navigation + Actions
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg     top\n")
	left.WriteString("G      bottom\n")
	left.WriteString("Tab    next category\n")
	left.WriteString("S-Tab  prev category\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("/      search\n")
	left.WriteString("o      open url\n")
	left.WriteString("Y      yank url\n")
	left.WriteString("r      reload\n")
	left.WriteString("Esc    clear\n")

	// Right column: Edit + Form
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a      add\n")
	right.WriteString("e      edit\n")
	right.WriteString("d      delete\n")
	right.WriteString("f      favorite\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("form") + "\n")
	right.WriteString("Tab    next field\n")
	right.WriteString("←/→    category\n")
	right.WriteString("C-s    save\n")
	right.WriteString("Esc    cancel\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [C-c] quit"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
