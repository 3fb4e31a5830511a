// Package html provides an in-memory infopanel.Document backed by
// golang.org/x/net/html nodes. It serves tests, server-side snapshots and any
// other place the panel is rendered outside a browser.
package html

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/infopanel"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Interface compliance checks.
var (
	_ infopanel.Document = (*Document)(nil)
	_ infopanel.Element  = (*Element)(nil)
)

// Document is an in-memory HTML document.
type Document struct {
	root     *html.Node
	head     *Element
	body     *Element
	elements map[*html.Node]*Element
}

// NewDocument creates an empty document with a head and a body.
func NewDocument() *Document {
	d := &Document{
		root:     &html.Node{Type: html.DocumentNode},
		elements: make(map[*html.Node]*Element),
	}
	htmlEl := d.CreateElement("html").(*Element)
	d.head = d.CreateElement("head").(*Element)
	d.body = d.CreateElement("body").(*Element)
	htmlEl.node.AppendChild(d.head.node)
	htmlEl.node.AppendChild(d.body.node)
	d.root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	d.root.AppendChild(htmlEl.node)
	return d
}

// Head returns the document head.
func (d *Document) Head() infopanel.Element { return d.head }

// Body returns the document body.
func (d *Document) Body() infopanel.Element { return d.body }

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) infopanel.Element {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// GetElementByID returns the attached element with the given id.
func (d *Document) GetElementByID(id string) (infopanel.Element, bool) {
	sel := d.Find("#" + id)
	if sel.Length() == 0 {
		return nil, false
	}
	el, ok := d.elements[sel.Nodes[0]]
	return el, ok
}

// Find queries the attached tree with a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Find(selector)
}

// Click dispatches a click on the first element matching selector. Like a
// browser click it bubbles from the target up through its ancestors.
func (d *Document) Click(selector string) error {
	sel := d.Find(selector)
	if sel.Length() == 0 {
		return fmt.Errorf("click %q: no matching element", selector)
	}
	for n := sel.Nodes[0]; n != nil; n = n.Parent {
		el, ok := d.elements[n]
		if !ok {
			continue
		}
		for _, fn := range el.onClick {
			fn()
		}
	}
	return nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the document as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Element is a node of a Document.
type Element struct {
	doc     *Document
	node    *html.Node
	styles  []styleDecl
	onClick []func()
}

type styleDecl struct {
	property string
	value    string
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// SetID sets the id attribute.
func (e *Element) SetID(id string) { e.setAttr("id", id) }

// SetClass sets the class attribute.
func (e *Element) SetClass(class string) { e.setAttr("class", class) }

// Class returns the class attribute.
func (e *Element) Class() string { return e.attr("class") }

// SetStyle sets an inline style property, keeping declaration order.
func (e *Element) SetStyle(property, value string) {
	for i := range e.styles {
		if e.styles[i].property == property {
			e.styles[i].value = value
			e.writeStyle()
			return
		}
	}
	e.styles = append(e.styles, styleDecl{property: property, value: value})
	e.writeStyle()
}

// Style returns the value of an inline style property.
func (e *Element) Style(property string) string {
	for _, s := range e.styles {
		if s.property == property {
			return s.value
		}
	}
	return ""
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	e.RemoveChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of the element's subtree.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// AppendChild moves child to the end of e's children. It panics if child
// belongs to another Document implementation.
func (e *Element) AppendChild(child infopanel.Element) {
	c, ok := child.(*Element)
	if !ok {
		panic(fmt.Sprintf("html: cannot append foreign element %T", child))
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

// RemoveChildren discards every child. Like clearing innerHTML, removed
// elements should not be reattached.
func (e *Element) RemoveChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
}

// OnClick registers fn to run when the element, or a descendant, is clicked.
func (e *Element) OnClick(fn func()) {
	e.onClick = append(e.onClick, fn)
}

func (e *Element) writeStyle() {
	decls := make([]string, len(e.styles))
	for i, s := range e.styles {
		decls[i] = s.property + ": " + s.value
	}
	e.setAttr("style", strings.Join(decls, "; "))
}

func (e *Element) attr(key string) string {
	for _, a := range e.node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (e *Element) setAttr(key, val string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// forget drops the element bookkeeping for a detached subtree.
func (d *Document) forget(n *html.Node) {
	delete(d.elements, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}
