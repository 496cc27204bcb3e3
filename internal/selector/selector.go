// Package selector implements the multi-strategy element resolver. A Plan
// is an ordered list of candidate rules; resolution returns the match set of
// the first rule that hits anything, so adding a fallback tier is always a
// one-line append rather than a new try/except ladder.
package selector

import (
	"log"

	"shaarli-driver/internal/browser"
)

// Rule is one candidate way of locating an element.
type Rule struct {
	Kind  browser.Kind
	Value string
}

// Plan is an ordered sequence of rules. Priority is list order and the
// first rule with any match wins; later rules are never consulted.
type Plan []Rule

// frameRulePrefix bounds how many rules are retried inside each iframe.
// Full plans can run long; the leading rules carry almost all of the hit
// rate, so the iframe pass only replays them.
const frameRulePrefix = 5

// Resolve walks the plan against one scope and returns the first match of
// the first rule that matches anything. A rule whose query errors counts
// as a miss. The second return is false when nothing matched: that is a
// recoverable condition, not an error, and callers pick the next fallback.
func Resolve(scope browser.Querier, plan Plan) (browser.Element, bool) {
	for _, rule := range plan {
		matches, err := scope.Find(rule.Kind, rule.Value)
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			return matches[0], true
		}
	}
	return nil, false
}

// ResolveAll is Resolve but returns the complete match set of the winning
// rule, in document order.
func ResolveAll(scope browser.Querier, plan Plan) ([]browser.Element, bool) {
	for _, rule := range plan {
		matches, err := scope.Find(rule.Kind, rule.Value)
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			return matches, true
		}
	}
	return nil, false
}

// ResolveWithFrames resolves against the main document first and, on total
// failure, retries a reduced prefix of the plan inside each iframe in
// document order. Frames are independent scopes in rod, so there is no
// document context to restore afterwards.
func ResolveWithFrames(sess browser.Session, plan Plan) (browser.Element, bool) {
	if el, ok := Resolve(sess, plan); ok {
		return el, true
	}

	frames, err := sess.Find(browser.ByCSS, "iframe")
	if err != nil || len(frames) == 0 {
		return nil, false
	}

	prefix := plan
	if len(prefix) > frameRulePrefix {
		prefix = prefix[:frameRulePrefix]
	}

	for i, frame := range frames {
		doc, err := frame.EnterFrame()
		if err != nil {
			log.Printf("error entering iframe %d: %v", i, err)
			continue
		}
		if el, ok := Resolve(doc, prefix); ok {
			log.Printf("resolved element inside iframe %d", i)
			return el, true
		}
	}
	return nil, false
}
