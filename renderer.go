package infopanel

import (
	"fmt"
	"log/slog"
)

// Renderer draws the panel into a Document and owns its expand/collapse
// state. Every Render tears down the previous output and rebuilds it; clicks
// only patch the toggle glyph and the content class.
//
// A Renderer is not safe for concurrent use. In the browser all calls arrive
// on the single event loop.
type Renderer struct {
	doc    Document
	state  PanelState
	logger *slog.Logger
}

// NewRenderer creates a Renderer drawing into doc. The panel starts collapsed.
func NewRenderer(doc Document, opts ...Option) *Renderer {
	o := newOptions(opts)
	return &Renderer{doc: doc, logger: o.logger}
}

// State returns the current panel state.
func (r *Renderer) State() PanelState { return r.state }

// Render rebuilds the panel from p. If p cannot be resolved into a View the
// previous output is left untouched and the error is returned.
func (r *Renderer) Render(p Payload) error {
	v, err := NewView(p)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	r.injectStylesheet()
	body := r.doc.Body()
	body.RemoveChildren()

	vis := r.state.Visuals()

	container := r.doc.CreateElement("div")
	container.SetID(ContainerID)

	header := r.doc.CreateElement("div")
	header.SetID(HeaderID)
	header.AppendChild(r.textElement("span", ClassHeaderText, v.HeaderText))
	icon := r.textElement("span", ClassToggleIcon, vis.Glyph)
	header.AppendChild(icon)
	applyZoneStyle(header, v.Header)

	content := r.doc.CreateElement("div")
	content.SetID(ContentID)
	content.SetClass(vis.ContentClass)
	content.AppendChild(r.textElement("div", ClassContentText, v.Body))
	applyZoneStyle(content, v.Content)

	header.OnClick(func() {
		r.state.Toggle()
		vis := r.state.Visuals()
		content.SetClass(vis.ContentClass)
		icon.SetText(vis.Glyph)
		r.logger.Debug("panel toggled", "expanded", r.state.Expanded)
	})

	container.AppendChild(header)
	container.AppendChild(content)
	body.AppendChild(container)

	r.logger.Debug("panel rendered", "expanded", r.state.Expanded, "body_len", len(v.Body))
	return nil
}

func (r *Renderer) textElement(tag, class, text string) Element {
	el := r.doc.CreateElement(tag)
	el.SetClass(class)
	el.SetText(text)
	return el
}

// injectStylesheet adds the panel stylesheet to the head unless present.
func (r *Renderer) injectStylesheet() {
	if _, ok := r.doc.GetElementByID(StylesheetID); ok {
		return
	}
	style := r.doc.CreateElement("style")
	style.SetID(StylesheetID)
	style.SetText(Stylesheet)
	r.doc.Head().AppendChild(style)
}

func applyZoneStyle(el Element, z ZoneStyle) {
	el.SetStyle("background-color", z.Background)
	el.SetStyle("color", z.Color)
	el.SetStyle("border-color", z.BorderColor)
	el.SetStyle("font-size", z.FontSize)
}
