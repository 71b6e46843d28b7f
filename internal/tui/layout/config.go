package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds bookmark list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for the list.
	// Accounts for: app padding (1) + header (2) + search (2) + category bar (2) + help bar (3) = 10
	HeightReduction int

	// MinHeight is the minimum list height in lines.
	MinHeight int

	// LinesPerItem is the number of lines one bookmark occupies.
	LinesPerItem int

	// ContentPadding is subtracted from terminal width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit       int
	URLCharLimit         int
	DescriptionCharLimit int
	SearchCharLimit      int

	// Display widths
	StandardWidth     int // title, URL, search
	DescriptionHeight int // textarea rows
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 10,
			MinHeight:       3,
			LinesPerItem:    3,
			ContentPadding:  6,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  50,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			URLCharLimit:         500,
			DescriptionCharLimit: 500,
			SearchCharLimit:      100,
			StandardWidth:        40,
			DescriptionHeight:    3,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
