// Package interact performs UI actions through escalating tactics. Native
// interaction can fail on overlays, CSS transforms, or off-screen nodes;
// each tactic removes a different class of obstruction.
package interact

import (
	"log"
	"time"

	"shaarli-driver/internal/browser"
)

// ActionKind distinguishes the two supported element actions.
type ActionKind int

const (
	// ActivateKind clicks or toggles an element.
	ActivateKind ActionKind = iota
	// SetTextKind clears the element and enters text.
	SetTextKind
)

// Action is what Perform should do to the element.
type Action struct {
	Kind ActionKind
	Text string
}

// Activate returns the click/toggle action.
func Activate() Action { return Action{Kind: ActivateKind} }

// SetText returns the clear-and-type action.
func SetText(text string) Action { return Action{Kind: SetTextKind, Text: text} }

// Tactic names which escalation tier carried out an action.
type Tactic string

const (
	TacticDirect   Tactic = "direct"
	TacticScrolled Tactic = "scrolled"
	TacticScripted Tactic = "scripted"
)

// Result reports the outcome of Perform. Callers need no error detail:
// a failure means no tactic worked.
type Result struct {
	Succeeded bool
	Tactic    Tactic
}

// Escalator tries each tactic in order until one succeeds. The zero value
// is usable; SettlePause defaults to one second when unset via New.
type Escalator struct {
	// SettlePause is the fixed delay after scrolling, letting layout and
	// animation settle before the retry.
	SettlePause time.Duration
}

// New returns an escalator with the production settle pause.
func New() Escalator {
	return Escalator{SettlePause: time.Second}
}

// Perform attempts the action through the direct, scrolled, and scripted
// tactics, strictly in that order, stopping at the first success. A
// tactic's error is swallowed and logged; only total exhaustion is a
// caller-visible failure.
func (e Escalator) Perform(el browser.Element, act Action) Result {
	tactics := []struct {
		name Tactic
		run  func(browser.Element, Action) error
	}{
		{TacticDirect, e.direct},
		{TacticScrolled, e.scrolled},
		{TacticScripted, e.scripted},
	}

	for _, t := range tactics {
		if err := t.run(el, act); err != nil {
			log.Printf("%s tactic failed: %v", t.name, err)
			continue
		}
		return Result{Succeeded: true, Tactic: t.name}
	}
	return Result{}
}

// direct invokes the native action on the element as-is.
func (e Escalator) direct(el browser.Element, act Action) error {
	switch act.Kind {
	case SetTextKind:
		if err := el.Clear(); err != nil {
			return err
		}
		return el.Type(act.Text)
	default:
		return el.Click()
	}
}

// scrolled centers the element in the viewport, pauses, then retries the
// native action.
func (e Escalator) scrolled(el browser.Element, act Action) error {
	if err := el.ScrollIntoCenter(); err != nil {
		return err
	}
	if e.SettlePause > 0 {
		time.Sleep(e.SettlePause)
	}
	return e.direct(el, act)
}

// scripted bypasses native event dispatch entirely. SetText assigns the
// value and fires synthetic input/change events so reactive page logic
// still observes the change.
func (e Escalator) scripted(el browser.Element, act Action) error {
	switch act.Kind {
	case SetTextKind:
		return el.ScriptSetValue(act.Text)
	default:
		return el.ScriptClick()
	}
}
