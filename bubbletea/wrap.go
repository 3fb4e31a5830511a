package bubbletea

import (
	"strings"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// wrap lays out text the way the browser panel does: explicit newlines are
// kept, lines break between words, and words wider than width are broken.
func wrap(text string, width int) []string {
	paragraphs := strings.Split(text, "\n")
	if width <= 0 {
		return paragraphs
	}
	var lines []string
	for _, p := range paragraphs {
		lines = append(lines, wrapParagraph(p, width)...)
	}
	return lines
}

func wrapParagraph(s string, width int) []string {
	var (
		lines []string
		line  strings.Builder
		lineW int
		word  strings.Builder
		wordW int
	)

	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineW = 0
	}

	addWord := func() {
		if wordW == 0 {
			return
		}
		if lineW > 0 && lineW+wordW > width {
			flush()
		}
		w := word.String()
		for wordW > width {
			head := rw.Truncate(w, width, "")
			if head == "" {
				// A single cluster wider than the line still takes a line.
				g := uniseg.NewGraphemes(w)
				g.Next()
				head = g.Str()
			}
			lines = append(lines, head)
			w = w[len(head):]
			wordW = uniseg.StringWidth(w)
		}
		line.WriteString(w)
		lineW += wordW
		word.Reset()
		wordW = 0
	}

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		c := g.Str()
		if c == " " || c == "\t" {
			addWord()
			if lineW < width {
				line.WriteByte(' ')
				lineW++
			}
			continue
		}
		word.WriteString(c)
		wordW += g.Width()
	}
	addWord()
	flush()
	return lines
}

// spread places left and right on one line of the given width, truncating
// left with an ellipsis when both do not fit.
func spread(left, right string, width int) string {
	rightW := rw.StringWidth(right)
	avail := width - rightW - 1
	if avail < 0 {
		avail = 0
	}
	left = rw.Truncate(left, avail, "…")
	gap := width - rw.StringWidth(left) - rightW
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
