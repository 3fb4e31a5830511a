package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/infopanel"
)

var _ tea.Model = Model{}

// Screen rows above the content zone: the title line, then the bordered
// header.
const (
	headerTop    = 1
	headerHeight = 3
)

// Model is the Bubble Tea model for the panel preview. It draws the same
// resolved view and follows the same state machine as the browser widget.
type Model struct {
	// Viewport scrolls the content zone. Exported for test access.
	Viewport viewport.Model
	// Help renders the key binding line. Exported for test access.
	Help help.Model

	keys    KeyMap
	entries []Entry
	index   int

	state   infopanel.PanelState
	view    infopanel.View
	hasView bool
	styles  Styles
	err     error

	width  int
	height int
	ready  bool
}

// New creates a preview Model showing the first of entries.
func New(entries []Entry) Model {
	m := Model{
		Help:    help.New(),
		keys:    DefaultKeyMap(),
		entries: entries,
		styles:  NewStyles(infopanel.View{}),
	}
	return m.selectEntry(0)
}

// State returns the panel state.
func (m Model) State() infopanel.PanelState { return m.state }

// Index returns the index of the selected entry.
func (m Model) Index() int { return m.index }

// Err returns the error shown under the panel, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.Viewport = viewport.New(msg.Width, 1)
			m.ready = true
		}
		m.Help.Width = msg.Width
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onHeader(msg.Y) {
			return m.toggle(), nil
		}

	case EntriesMsg:
		m.entries = msg.Entries
		m.err = nil
		return m.selectEntry(m.index), nil

	case ErrMsg:
		m.err = msg.Err
		return m, nil
	}

	if !m.state.Expanded {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.title())
	b.WriteString("\n")

	if m.hasView {
		visuals := m.state.Visuals()
		header := spread(sanitizeLine(m.view.HeaderText), visuals.Glyph, m.innerWidth())
		b.WriteString(m.styles.Header.Width(m.width - 2).Render(header))
		b.WriteString("\n")
		if m.state.Expanded {
			b.WriteString(m.styles.Content.Width(m.width - 2).Render(m.Viewport.View()))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(m.Help.View(m.keys))
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(), nil
	case key.Matches(msg, m.keys.Next):
		return m.step(1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.step(-1), nil
	}
	if !m.state.Expanded {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// toggle is the only transition of the panel state.
func (m Model) toggle() Model {
	m.state.Toggle()
	m.Viewport.GotoTop()
	return m
}

func (m Model) step(delta int) Model {
	if len(m.entries) == 0 {
		return m
	}
	m.err = nil
	return m.selectEntry((m.index + delta + len(m.entries)) % len(m.entries))
}

// selectEntry resolves entry i. When the entry cannot be resolved the
// previous panel stays on screen with the error below it.
func (m Model) selectEntry(i int) Model {
	if i >= len(m.entries) {
		i = len(m.entries) - 1
	}
	if i < 0 {
		m.index = 0
		m.hasView = false
		return m
	}
	m.index = i

	e := m.entries[i]
	if e.Err != nil {
		m.err = e.Err
		return m
	}
	v, err := infopanel.NewView(e.Payload)
	if err != nil {
		m.err = err
		return m
	}
	m.view = v
	m.hasView = true
	m.styles = NewStyles(v)
	return m.layout()
}

// layout sizes the content viewport to the wrapped body, bounded by the
// rows left on screen.
func (m Model) layout() Model {
	if !m.ready {
		return m
	}
	lines := wrap(sanitize(m.view.Body), m.innerWidth())
	// Title, header, the content bottom border and the help line.
	avail := m.height - headerTop - headerHeight - 1 - 1
	h := min(len(lines), avail)
	m.Viewport.Width = m.innerWidth()
	m.Viewport.Height = max(h, 1)
	m.Viewport.SetContent(strings.Join(lines, "\n"))
	return m
}

func (m Model) innerWidth() int {
	// Two border columns and two padding columns.
	return max(m.width-4, 1)
}

func (m Model) onHeader(y int) bool {
	return m.hasView && y >= headerTop && y < headerTop+headerHeight
}

func (m Model) title() string {
	if len(m.entries) == 0 {
		return m.styles.Title.Render("No fixtures loaded")
	}
	name := m.entries[m.index].Name
	return m.styles.Title.Render(fmt.Sprintf("%s (%d/%d)", name, m.index+1, len(m.entries)))
}
