//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/fwojciec/infopanel"
)

var (
	_ infopanel.Document = (*Document)(nil)
	_ infopanel.Element  = (*Element)(nil)
)

// Document is the live browser document.
type Document struct {
	doc  js.Value
	head *Element
	body *Element
}

// NewDocument wraps the global document.
func NewDocument() *Document {
	doc := js.Global().Get("document")
	d := &Document{doc: doc}
	d.head = &Element{doc: d, v: doc.Get("head")}
	d.body = &Element{doc: d, v: doc.Get("body")}
	return d
}

func (d *Document) Head() infopanel.Element { return d.head }

func (d *Document) Body() infopanel.Element { return d.body }

func (d *Document) CreateElement(tag string) infopanel.Element {
	return &Element{doc: d, v: d.doc.Call("createElement", tag)}
}

// GetElementByID returns a wrapper for the element with id. The wrapper does
// not know about click handlers registered through other wrappers.
func (d *Document) GetElementByID(id string) (infopanel.Element, bool) {
	v := d.doc.Call("getElementById", id)
	if isNil(v) {
		return nil, false
	}
	return &Element{doc: d, v: v}, true
}

// Element wraps a DOM element. It tracks the children appended through it so
// RemoveChildren can release their click callbacks.
type Element struct {
	doc      *Document
	v        js.Value
	children []*Element
	funcs    []js.Func
}

func (e *Element) SetID(id string) { e.v.Set("id", id) }

func (e *Element) SetClass(class string) { e.v.Set("className", class) }

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) SetText(text string) {
	e.release()
	e.v.Set("textContent", text)
}

// AppendChild panics if child belongs to another Document implementation.
func (e *Element) AppendChild(child infopanel.Element) {
	c := child.(*Element)
	e.children = append(e.children, c)
	e.v.Call("appendChild", c.v)
}

func (e *Element) RemoveChildren() {
	e.release()
	e.v.Set("textContent", "")
}

func (e *Element) OnClick(fn func()) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	e.funcs = append(e.funcs, f)
	e.v.Call("addEventListener", "click", f)
}

// release frees the callbacks of every tracked descendant.
func (e *Element) release() {
	for _, c := range e.children {
		c.release()
		for _, f := range c.funcs {
			f.Release()
		}
		c.funcs = nil
	}
	e.children = nil
}
