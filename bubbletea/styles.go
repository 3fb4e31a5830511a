package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/infopanel"
)

// Styles maps a resolved View to lipgloss styles for terminal rendering.
type Styles struct {
	Header  lipgloss.Style
	Content lipgloss.Style
	Title   lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates Styles from the zones of v. The content zone has no top
// border so it joins the header like the browser panel does.
func NewStyles(v infopanel.View) Styles {
	return Styles{
		Header:  zoneStyle(v.Header).Border(lipgloss.NormalBorder()).Bold(true),
		Content: zoneStyle(v.Content).Border(lipgloss.NormalBorder(), false, true, true, true),
		Title:   lipgloss.NewStyle().Faint(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func zoneStyle(z infopanel.ZoneStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(cssColor(z.Background)).
		Foreground(cssColor(z.Color)).
		BorderForeground(cssColor(z.BorderColor)).
		Padding(0, 1)
}

// namedColors covers the CSS keywords a dashboard color picker can emit.
var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
}

// cssColor converts a CSS color to a terminal color. Hex colors pass through;
// anything lipgloss cannot express renders without color.
func cssColor(s string) lipgloss.TerminalColor {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(s)
}
