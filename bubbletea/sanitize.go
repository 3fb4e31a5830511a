package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitize makes host-supplied text safe to draw: escape sequences and
// control characters are removed so the payload cannot drive the terminal.
// Line breaks survive as LF and tabs become single spaces, matching how the
// panel collapses them in the browser.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte('\n')
		case r == '\t':
			b.WriteByte(' ')
		case r <= 0x1F || r == 0x7F:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeLine is sanitize for the one-row header: runs of whitespace,
// line breaks included, collapse to a single space.
func sanitizeLine(s string) string {
	return strings.Join(strings.Fields(sanitize(s)), " ")
}
