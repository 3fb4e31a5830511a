package mock

import "github.com/fwojciec/infopanel"

// Document is a test double for infopanel.Document.
// Set the function fields for the methods you need.
type Document struct {
	HeadFn           func() infopanel.Element
	BodyFn           func() infopanel.Element
	CreateElementFn  func(tag string) infopanel.Element
	GetElementByIDFn func(id string) (infopanel.Element, bool)
}

// Head delegates to HeadFn.
func (d *Document) Head() infopanel.Element {
	return d.HeadFn()
}

// Body delegates to BodyFn.
func (d *Document) Body() infopanel.Element {
	return d.BodyFn()
}

// CreateElement delegates to CreateElementFn.
func (d *Document) CreateElement(tag string) infopanel.Element {
	return d.CreateElementFn(tag)
}

// GetElementByID delegates to GetElementByIDFn.
func (d *Document) GetElementByID(id string) (infopanel.Element, bool) {
	return d.GetElementByIDFn(id)
}

// Element is a test double for infopanel.Element.
// Set the function fields for the methods you need.
type Element struct {
	SetIDFn          func(id string)
	SetClassFn       func(class string)
	SetStyleFn       func(property, value string)
	SetTextFn        func(text string)
	AppendChildFn    func(child infopanel.Element)
	RemoveChildrenFn func()
	OnClickFn        func(fn func())
}

// SetID delegates to SetIDFn.
func (e *Element) SetID(id string) { e.SetIDFn(id) }

// SetClass delegates to SetClassFn.
func (e *Element) SetClass(class string) { e.SetClassFn(class) }

// SetStyle delegates to SetStyleFn.
func (e *Element) SetStyle(property, value string) { e.SetStyleFn(property, value) }

// SetText delegates to SetTextFn.
func (e *Element) SetText(text string) { e.SetTextFn(text) }

// AppendChild delegates to AppendChildFn.
func (e *Element) AppendChild(child infopanel.Element) { e.AppendChildFn(child) }

// RemoveChildren delegates to RemoveChildrenFn.
func (e *Element) RemoveChildren() { e.RemoveChildrenFn() }

// OnClick delegates to OnClickFn.
func (e *Element) OnClick(fn func()) { e.OnClickFn(fn) }
