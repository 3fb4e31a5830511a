package infopanel

import "fmt"

// Style property names declared by the panel.
const (
	StyleHeaderText        = "headerText"
	StyleExpandedText      = "expandedText"
	StyleHeaderBgColor     = "headerBgColor"
	StyleHeaderTextColor   = "headerTextColor"
	StyleBorderColor       = "borderColor"
	StyleFontSize          = "fontSize"
	StyleExpandedBgColor   = "expandedBgColor"
	StyleExpandedTextColor = "expandedTextColor"
)

var declaredStyle = map[string]bool{
	StyleHeaderText:        true,
	StyleExpandedText:      true,
	StyleHeaderBgColor:     true,
	StyleHeaderTextColor:   true,
	StyleBorderColor:       true,
	StyleFontSize:          true,
	StyleExpandedBgColor:   true,
	StyleExpandedTextColor: true,
}

// IsDeclaredStyle reports whether name is one of the panel's style
// properties.
func IsDeclaredStyle(name string) bool { return declaredStyle[name] }

// Style maps a style property name to its configured value.
type Style map[string]StyleProperty

// StyleProperty is a user-set value paired with the declared default.
// Value is nil when the user never set the property.
type StyleProperty struct {
	Value        *StyleValue
	DefaultValue string
}

// StyleValue holds a user-set value. Color properties carry their value in
// Color; every other property uses Text.
type StyleValue struct {
	Text  string
	Color string
}

// Resolve returns the user-set text if non-empty, else the default.
func (p StyleProperty) Resolve() string {
	if p.Value != nil && p.Value.Text != "" {
		return p.Value.Text
	}
	return p.DefaultValue
}

// ResolveColor returns the user-set color if non-empty, else the default.
func (p StyleProperty) ResolveColor() string {
	if p.Value != nil && p.Value.Color != "" {
		return p.Value.Color
	}
	return p.DefaultValue
}

// Text resolves the named text property.
func (s Style) Text(name string) (string, error) {
	p, ok := s[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrMissingStyle)
	}
	return p.Resolve(), nil
}

// Color resolves the named color property.
func (s Style) Color(name string) (string, error) {
	p, ok := s[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrMissingStyle)
	}
	return p.ResolveColor(), nil
}
