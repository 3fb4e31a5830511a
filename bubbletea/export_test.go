package bubbletea

import "github.com/charmbracelet/lipgloss"

// Wrap exports wrap for testing.
func Wrap(text string, width int) []string {
	return wrap(text, width)
}

// Spread exports spread for testing.
func Spread(left, right string, width int) string {
	return spread(left, right, width)
}

// CSSColor exports cssColor for testing.
func CSSColor(s string) lipgloss.TerminalColor {
	return cssColor(s)
}

// Sanitize exports sanitize for testing.
func Sanitize(s string) string {
	return sanitize(s)
}

// SanitizeLine exports sanitizeLine for testing.
func SanitizeLine(s string) string {
	return sanitizeLine(s)
}
