package bubbletea_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/infopanel"
	bt "github.com/fwojciec/infopanel/bubbletea"
	"github.com/stretchr/testify/require"
)

func payload(headerText, body string) infopanel.Payload {
	p := infopanel.Payload{Style: infopanel.Style{
		infopanel.StyleHeaderText:        {DefaultValue: headerText},
		infopanel.StyleExpandedText:      {DefaultValue: "Click to learn more"},
		infopanel.StyleHeaderBgColor:     {DefaultValue: "#f1f3f4"},
		infopanel.StyleHeaderTextColor:   {DefaultValue: "#202124"},
		infopanel.StyleBorderColor:       {DefaultValue: "#dadce0"},
		infopanel.StyleFontSize:          {DefaultValue: "14px"},
		infopanel.StyleExpandedBgColor:   {DefaultValue: "#ffffff"},
		infopanel.StyleExpandedTextColor: {DefaultValue: "#3c4043"},
	}}
	if body != "" {
		p.Tables = infopanel.Tables{
			infopanel.DefaultRole: {{"infoText": {body}}},
		}
	}
	return p
}

// initModel creates a model over entries and sends a WindowSizeMsg to
// initialize the viewport.
func initModel(t *testing.T, entries ...bt.Entry) bt.Model {
	t.Helper()
	return updateModel(t, bt.New(entries), tea.WindowSizeMsg{Width: 60, Height: 20})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(y int) tea.MouseMsg {
	return tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}
