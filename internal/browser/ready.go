package browser

import (
	"log"
	"time"
)

// ReadyGate decides when a freshly navigated page is safe to query.
// Every wait here is best-effort: a site without the instrumentation we
// probe for must not block the workflow, so the gate always returns.
type ReadyGate struct {
	// Timeout bounds the document.readyState wait.
	Timeout time.Duration
	// Settle is the fixed pause after load for deferred script execution.
	Settle time.Duration
	// LibraryDrain bounds the wait for in-flight jQuery activity.
	LibraryDrain time.Duration
	// Poll is the predicate re-check interval (default 100ms).
	Poll time.Duration
}

// DefaultReadyGate returns the production gate timings.
func DefaultReadyGate() ReadyGate {
	return ReadyGate{
		Timeout:      10 * time.Second,
		Settle:       time.Second,
		LibraryDrain: 2 * time.Second,
		Poll:         100 * time.Millisecond,
	}
}

// Wait blocks until the page reports ready, then lets scripts settle.
// The return value is informational only; callers proceed either way.
func (g ReadyGate) Wait(s Session) bool {
	poll := g.Poll
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}

	complete := WaitFor(g.Timeout, poll, func() bool {
		v, err := s.Eval(`() => document.readyState`)
		return err == nil && v.Str() == "complete"
	})
	if !complete {
		log.Printf("page ready check timed out after %s; continuing", g.Timeout)
	}

	if g.Settle > 0 {
		time.Sleep(g.Settle)
	}

	// jQuery might not be present; an eval failure counts as drained.
	WaitFor(g.LibraryDrain, poll, func() bool {
		v, err := s.Eval(`() => typeof jQuery === 'undefined' || jQuery.active === 0`)
		return err != nil || v.Bool()
	})

	return complete
}

// WaitFor polls pred every interval until it returns true or the timeout
// expires. The predicate is always evaluated at least once.
func WaitFor(timeout, interval time.Duration, pred func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}
