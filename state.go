package infopanel

// Indicator glyphs for the header toggle.
const (
	GlyphCollapsed = "▶"
	GlyphExpanded  = "▼"
)

// Content zone classes.
const (
	ClassCollapsed = "collapsed"
	ClassExpanded  = "expanded"
)

// PanelState is the expand/collapse state of the panel. The zero value is
// collapsed.
type PanelState struct {
	Expanded bool
}

// Toggle flips the state.
func (s *PanelState) Toggle() {
	s.Expanded = !s.Expanded
}

// Visuals are the state-dependent attributes of the rendered panel.
type Visuals struct {
	Glyph        string
	ContentClass string
}

// Visuals computes the visual attributes for the current state.
func (s PanelState) Visuals() Visuals {
	if s.Expanded {
		return Visuals{Glyph: GlyphExpanded, ContentClass: ClassExpanded}
	}
	return Visuals{Glyph: GlyphCollapsed, ContentClass: ClassCollapsed}
}
