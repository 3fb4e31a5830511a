package infopanel

// ZoneStyle is the resolved styling of one panel zone.
type ZoneStyle struct {
	Background  string
	Color       string
	BorderColor string
	FontSize    string
}

// View is a Payload resolved into what the panel displays. It carries no
// state; combine it with PanelState.Visuals to draw the panel.
type View struct {
	HeaderText string
	Body       string
	Header     ZoneStyle
	Content    ZoneStyle
}

// NewView resolves the style properties and body content of p. It fails with
// ErrMissingStyle if any declared style property is absent.
func NewView(p Payload) (View, error) {
	var v View
	var expandedText string
	props := []struct {
		dst   *string
		name  string
		color bool
	}{
		{&v.HeaderText, StyleHeaderText, false},
		{&expandedText, StyleExpandedText, false},
		{&v.Header.Background, StyleHeaderBgColor, true},
		{&v.Header.Color, StyleHeaderTextColor, true},
		{&v.Header.BorderColor, StyleBorderColor, true},
		{&v.Header.FontSize, StyleFontSize, false},
		{&v.Content.Background, StyleExpandedBgColor, true},
		{&v.Content.Color, StyleExpandedTextColor, true},
	}
	for _, prop := range props {
		resolve := p.Style.Text
		if prop.color {
			resolve = p.Style.Color
		}
		val, err := resolve(prop.name)
		if err != nil {
			return View{}, err
		}
		*prop.dst = val
	}
	// Both zones share the border and the font size.
	v.Content.BorderColor = v.Header.BorderColor
	v.Content.FontSize = v.Header.FontSize
	v.Body = bodyContent(p.Tables, expandedText)
	return v, nil
}

// bodyContent returns the first infoText value of the first default-role row,
// falling back to the configured expanded text.
func bodyContent(t Tables, fallback string) string {
	rows := t.Default()
	if len(rows) == 0 {
		return fallback
	}
	info := rows[0].InfoText()
	if len(info) == 0 {
		return fallback
	}
	return info[0]
}
