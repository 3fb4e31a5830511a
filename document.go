package infopanel

// DOM identifiers of the rendered panel.
const (
	ContainerID  = "expandable-container"
	HeaderID     = "header-row"
	ContentID    = "expanded-content"
	StylesheetID = "expandable-panel-styles"
)

// Classes of the panel's inner elements.
const (
	ClassHeaderText  = "header-text"
	ClassToggleIcon  = "toggle-icon"
	ClassContentText = "content-text"
)

// Document is the page the panel renders into. Implementations exist for the
// browser (package wasm) and for an in-memory tree (package html).
type Document interface {
	Head() Element
	Body() Element
	CreateElement(tag string) Element
	GetElementByID(id string) (Element, bool)
}

// Element is a node of a Document.
type Element interface {
	SetID(id string)
	SetClass(class string)
	// SetStyle sets an inline CSS property, e.g. "background-color".
	SetStyle(property, value string)
	// SetText replaces the element's children with a single text node.
	// The text is never interpreted as markup.
	SetText(text string)
	AppendChild(child Element)
	RemoveChildren()
	// OnClick registers fn to run when the element is clicked.
	OnClick(fn func())
}
