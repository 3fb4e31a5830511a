package infopanel_test

import "github.com/fwojciec/infopanel"

// defaults returns a style with every declared property set to its default
// only, mirroring what the host sends before the user changes anything.
func defaults() infopanel.Style {
	return infopanel.Style{
		infopanel.StyleHeaderText:        {DefaultValue: "Info"},
		infopanel.StyleExpandedText:      {DefaultValue: "Click to learn more"},
		infopanel.StyleHeaderBgColor:     {DefaultValue: "#f1f3f4"},
		infopanel.StyleHeaderTextColor:   {DefaultValue: "#202124"},
		infopanel.StyleBorderColor:       {DefaultValue: "#dadce0"},
		infopanel.StyleFontSize:          {DefaultValue: "14px"},
		infopanel.StyleExpandedBgColor:   {DefaultValue: "#ffffff"},
		infopanel.StyleExpandedTextColor: {DefaultValue: "#3c4043"},
	}
}

func text(s string) *infopanel.StyleValue { return &infopanel.StyleValue{Text: s} }

func color(s string) *infopanel.StyleValue { return &infopanel.StyleValue{Color: s} }

// with returns a copy of s with property name set to value.
func with(s infopanel.Style, name string, value *infopanel.StyleValue) infopanel.Style {
	out := make(infopanel.Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	p := out[name]
	p.Value = value
	out[name] = p
	return out
}
