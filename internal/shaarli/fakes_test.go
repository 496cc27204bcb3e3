package shaarli

import (
	"strings"

	"github.com/ysmood/gson"

	"shaarli-driver/internal/browser"
)

// fakePage holds the elements visible at one URL.
type fakePage struct {
	elements []*fakeElement
	source   string
}

// fakeSession is an in-memory browser: a set of pages keyed by URL plus a
// current location. Element callbacks mutate the session to model
// submissions and redirects.
type fakeSession struct {
	url   string
	pages map[string]*fakePage

	navigations []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{pages: make(map[string]*fakePage)}
}

func (s *fakeSession) addPage(url string, els ...*fakeElement) *fakePage {
	p := &fakePage{elements: els}
	s.pages[url] = p
	return p
}

func (s *fakeSession) Navigate(url string) error {
	s.navigations = append(s.navigations, url)
	s.url = url
	return nil
}

func (s *fakeSession) CurrentURL() string { return s.url }

func (s *fakeSession) PageSource() string {
	if p := s.pages[s.url]; p != nil {
		return p.source
	}
	return ""
}

// Eval answers the ready-gate probes so the gate never stalls a test.
func (s *fakeSession) Eval(js string) (gson.JSON, error) {
	if strings.Contains(js, "readyState") {
		return gson.New("complete"), nil
	}
	return gson.New(true), nil
}

func (s *fakeSession) Find(kind browser.Kind, value string) ([]browser.Element, error) {
	p := s.pages[s.url]
	if p == nil {
		return nil, nil
	}
	var out []browser.Element
	for _, el := range p.elements {
		if el.matchesRule(kind, value) {
			out = append(out, el)
		}
	}
	return out, nil
}

// fakeElement matches rules from its tag and attributes, plus any CSS or
// XPath expressions listed in cssKeys/xpathKeys. Interaction callbacks let
// scenarios mutate the session on click or Enter.
type fakeElement struct {
	tag       string
	text      string
	attrs     map[string]string
	checked   bool
	cssKeys   []string
	xpathKeys []string
	children  []*fakeElement

	failClick  bool
	failInput  bool
	failScript bool

	value      string
	onActivate func()
	onEnter    func()
}

func (e *fakeElement) attr(name string) string {
	if e.attrs == nil {
		return ""
	}
	return e.attrs[name]
}

func (e *fakeElement) matchesRule(kind browser.Kind, value string) bool {
	switch kind {
	case browser.ByName:
		return e.attr("name") == value
	case browser.ByID:
		return e.attr("id") == value
	case browser.ByCSS:
		if value == e.tag {
			return true
		}
		for _, k := range e.cssKeys {
			if k == value {
				return true
			}
		}
		return false
	case browser.ByXPath:
		for _, k := range e.xpathKeys {
			if k == value {
				return true
			}
		}
		return false
	case browser.ByPartialLinkText:
		return e.tag == "a" && strings.Contains(e.text, value)
	default:
		return false
	}
}

func (e *fakeElement) Find(kind browser.Kind, value string) ([]browser.Element, error) {
	var out []browser.Element
	for _, c := range e.children {
		if c.matchesRule(kind, value) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (e *fakeElement) Tag() string { return e.tag }
func (e *fakeElement) Text() string { return e.text }
func (e *fakeElement) Attribute(name string) string { return e.attr(name) }
func (e *fakeElement) Checked() bool { return e.checked }

func (e *fakeElement) Click() error {
	if e.failClick {
		return errClickIntercepted
	}
	e.checked = !e.checked
	if e.onActivate != nil {
		e.onActivate()
	}
	return nil
}

func (e *fakeElement) Clear() error {
	if e.failInput {
		return errNotInteractable
	}
	e.value = ""
	return nil
}

func (e *fakeElement) Type(text string) error {
	if e.failInput {
		return errNotInteractable
	}
	e.value += text
	return nil
}

func (e *fakeElement) PressEnter() error {
	if e.onEnter != nil {
		e.onEnter()
	}
	return nil
}

func (e *fakeElement) ScrollIntoCenter() error { return nil }

func (e *fakeElement) ScriptClick() error {
	if e.failScript {
		return errScriptBlocked
	}
	e.checked = !e.checked
	if e.onActivate != nil {
		e.onActivate()
	}
	return nil
}

func (e *fakeElement) ScriptSetValue(text string) error {
	if e.failScript {
		return errScriptBlocked
	}
	e.value = text
	return nil
}

func (e *fakeElement) EnterFrame() (browser.Querier, error) {
	return nil, errNotAFrame
}

var (
	errClickIntercepted = fakeErr("element click intercepted")
	errNotInteractable  = fakeErr("element not interactable")
	errNotAFrame        = fakeErr("element is not an iframe")
	errScriptBlocked    = fakeErr("script execution blocked")
)

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
