package layout

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleWidth returns the terminal cell width of a string, excluding ANSI
// codes. Wide (CJK) characters count as two cells.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Handles edge cases where text is shorter than maxWidth or maxWidth is very small.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}

	if runewidth.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text + ellipsis
	if maxWidth <= runewidth.StringWidth(cfg.Ellipsis) {
		return runewidth.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return runewidth.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Development", 12, "* ", "/", cfg) -> "* Develo.../"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if runewidth.StringWidth(combined) <= maxWidth {
		return combined, false
	}

	overhead := runewidth.StringWidth(prefix) + runewidth.StringWidth(suffix) + runewidth.StringWidth(cfg.Ellipsis)
	if overhead >= maxWidth {
		// Not enough room even for prefix + ellipsis + suffix
		return TruncateText(combined, maxWidth, cfg)
	}

	available := maxWidth - overhead
	return prefix + runewidth.Truncate(text, available, "") + cfg.Ellipsis + suffix, true
}

// PadRight pads text with spaces to width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}
