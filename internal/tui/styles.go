package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Description  lipgloss.Style
	URL          lipgloss.Style
	Category     lipgloss.Style
	Favorite     lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Empty        lipgloss.Style
	EmptyTitle   lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Loading      lipgloss.Style
	Help         lipgloss.Style
	Label        lipgloss.Style
	LabelActive  lipgloss.Style
	Modal        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
}

// DefaultStyles returns the default style configuration.
// Grayscale with a purple accent and a pink favorite marker.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#C0C0C0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#707070"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}  // purple
	favorite := lipgloss.AdaptiveColor{Light: "#EC4899", Dark: "#F472B6"}
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}
	success := lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(accent),

		Description: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(3),

		URL: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(3),

		Category: lipgloss.NewStyle().
			Foreground(accent),

		Favorite: lipgloss.NewStyle().
			Foreground(favorite),

		Tab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Padding(0, 1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		EmptyTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		Loading: lipgloss.NewStyle().
			Foreground(accent),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Label: lipgloss.NewStyle().
			Foreground(subtle),

		LabelActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
