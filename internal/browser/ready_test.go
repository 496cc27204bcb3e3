package browser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ysmood/gson"
)

// scriptedSession answers Eval based on the script text. Everything else
// is inert; the ready gate only navigates and evaluates.
type scriptedSession struct {
	readyState   string
	jqueryActive bool
	jqueryErr    bool
	evalCount    int
}

func (s *scriptedSession) Find(Kind, string) ([]Element, error) { return nil, nil }
func (s *scriptedSession) Navigate(string) error { return nil }
func (s *scriptedSession) CurrentURL() string { return "" }
func (s *scriptedSession) PageSource() string { return "" }

func (s *scriptedSession) Eval(js string) (gson.JSON, error) {
	s.evalCount++
	if strings.Contains(js, "readyState") {
		return gson.New(s.readyState), nil
	}
	if strings.Contains(js, "jQuery") {
		if s.jqueryErr {
			return gson.New(nil), errors.New("execution context destroyed")
		}
		return gson.New(!s.jqueryActive), nil
	}
	return gson.New(nil), nil
}

func quickGate() ReadyGate {
	return ReadyGate{
		Timeout:      50 * time.Millisecond,
		Settle:       0,
		LibraryDrain: 50 * time.Millisecond,
		Poll:         time.Millisecond,
	}
}

func TestReadyGateCompletePage(t *testing.T) {
	sess := &scriptedSession{readyState: "complete"}
	if !quickGate().Wait(sess) {
		t.Error("expected Wait to report ready for a complete page")
	}
}

func TestReadyGateTimesOutButReturns(t *testing.T) {
	sess := &scriptedSession{readyState: "loading"}

	done := make(chan bool, 1)
	go func() { done <- quickGate().Wait(sess) }()

	select {
	case ready := <-done:
		if ready {
			t.Error("expected Wait to report not ready for a stuck page")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return for a page that never loads")
	}
}

func TestReadyGateJQueryErrorCountsAsDrained(t *testing.T) {
	sess := &scriptedSession{readyState: "complete", jqueryErr: true}
	start := time.Now()
	quickGate().Wait(sess)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("eval failure should not consume the drain wait, took %v", elapsed)
	}
}

func TestReadyGateWaitsForJQuery(t *testing.T) {
	sess := &scriptedSession{readyState: "complete", jqueryActive: true}
	gate := quickGate()
	start := time.Now()
	gate.Wait(sess)
	if elapsed := time.Since(start); elapsed < gate.LibraryDrain {
		t.Errorf("expected the full drain wait for busy jQuery, took %v", elapsed)
	}
}

func TestWaitForImmediateSuccess(t *testing.T) {
	calls := 0
	ok := WaitFor(0, time.Millisecond, func() bool {
		calls++
		return true
	})
	if !ok {
		t.Error("expected success for an immediately true predicate")
	}
	if calls != 1 {
		t.Errorf("expected exactly one evaluation, got %d", calls)
	}
}

func TestWaitForZeroTimeoutStillEvaluates(t *testing.T) {
	calls := 0
	ok := WaitFor(0, time.Millisecond, func() bool {
		calls++
		return false
	})
	if ok {
		t.Error("expected failure for an always-false predicate")
	}
	if calls == 0 {
		t.Error("predicate must be evaluated at least once")
	}
}

func TestWaitForEventualSuccess(t *testing.T) {
	calls := 0
	ok := WaitFor(time.Second, time.Millisecond, func() bool {
		calls++
		return calls >= 3
	})
	if !ok {
		t.Error("expected eventual success")
	}
	if calls != 3 {
		t.Errorf("expected 3 evaluations, got %d", calls)
	}
}
