package browser

import "github.com/ysmood/gson"

// Kind selects the query language used to match elements.
type Kind string

const (
	ByName            Kind = "name"
	ByID              Kind = "id"
	ByCSS             Kind = "css"
	ByXPath           Kind = "xpath"
	ByPartialLinkText Kind = "partial-link-text"
)

// Querier is a searchable document scope: the main document, an element
// subtree, or the content document of an iframe.
type Querier interface {
	// Find returns every element matching the given rule, in document order.
	// A miss is ([], nil); errors mean the query itself could not run.
	Find(kind Kind, value string) ([]Element, error)
}

// Element is a handle to a live DOM node. Handles are owned by the session
// and become invalid on navigation; callers must not keep them across pages.
type Element interface {
	Querier

	Tag() string
	Text() string
	// Attribute returns the attribute value, or "" when absent.
	Attribute(name string) string
	Checked() bool

	// Native interactions. These can fail on obscured or off-screen nodes.
	Click() error
	Clear() error
	Type(text string) error
	PressEnter() error
	ScrollIntoCenter() error

	// Script-level interactions that bypass native event dispatch.
	ScriptClick() error
	ScriptSetValue(text string) error

	// EnterFrame returns the content document of an iframe element.
	EnterFrame() (Querier, error)
}

// Session is the browser collaborator the workflow engine drives. The rod
// implementation lives in this package; tests substitute in-memory fakes.
type Session interface {
	Querier

	Navigate(url string) error
	Eval(js string) (gson.JSON, error)
	CurrentURL() string
	PageSource() string
}
