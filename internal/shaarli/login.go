package shaarli

import (
	"log"
	"strings"
	"time"

	"shaarli-driver/internal/browser"
	"shaarli-driver/internal/interact"
	"shaarli-driver/internal/selector"
	"shaarli-driver/internal/trace"
)

// loginState tracks progress through the login workflow. Transitions only
// move forward; any step that cannot complete lands in loginFailed.
type loginState int

const (
	loginStart loginState = iota
	loginNavigated
	loginInputsPresent
	loginUsernameFilled
	loginPasswordFilled
	loginSubmitted
	loginSucceeded
	loginFailed
)

func (s loginState) String() string {
	switch s {
	case loginStart:
		return "start"
	case loginNavigated:
		return "navigated"
	case loginInputsPresent:
		return "inputs-present"
	case loginUsernameFilled:
		return "username-filled"
	case loginPasswordFilled:
		return "password-filled"
	case loginSubmitted:
		return "submitted"
	case loginSucceeded:
		return "succeeded"
	case loginFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// loginMarkers are partial link texts whose presence proves an authenticated
// page even when the URL still mentions "login".
var loginMarkers = []string{"Logout", "Tools", "Shaare"}

type loginWorkflow struct {
	sess  browser.Session
	gate  browser.ReadyGate
	esc   interact.Escalator
	rec   *trace.Recorder
	runID string

	loginURL string
	username string
	password string

	// inputWait bounds how long we poll for any input to appear after the
	// ready gate passes. settle is the post-submit pause before verifying.
	inputWait time.Duration
	settle    time.Duration

	// passwordField is kept after filling so submit can fall back to
	// pressing Enter in it when no submit control resolves.
	passwordField browser.Element
}

// run drives the workflow state machine to a terminal state and reports
// whether it ended in loginSucceeded.
func (w *loginWorkflow) run() bool {
	state := loginStart
	for {
		log.Printf("[login:%s] state %s", w.runID, state)
		w.rec.Log(state.String(), "login", "", nil)

		switch state {
		case loginStart:
			state = w.navigate()
		case loginNavigated:
			state = w.awaitInputs()
		case loginInputsPresent:
			state = w.fillUsername()
		case loginUsernameFilled:
			state = w.fillPassword()
		case loginPasswordFilled:
			state = w.submit()
		case loginSubmitted:
			state = w.verify()
		case loginSucceeded:
			return true
		case loginFailed:
			return false
		}
	}
}

func (w *loginWorkflow) navigate() loginState {
	if err := w.sess.Navigate(w.loginURL); err != nil {
		log.Printf("[login:%s] navigation to %s failed: %v", w.runID, w.loginURL, err)
		return loginFailed
	}
	w.gate.Wait(w.sess)
	w.logFrameInventory()
	return loginNavigated
}

func (w *loginWorkflow) awaitInputs() loginState {
	ok := browser.WaitFor(w.inputWait, 100*time.Millisecond, func() bool {
		inputs, err := w.sess.Find(browser.ByCSS, "input")
		return err == nil && len(inputs) > 0
	})
	if !ok {
		log.Printf("[login:%s] no input elements appeared within %s", w.runID, w.inputWait)
		return loginFailed
	}
	return loginInputsPresent
}

func (w *loginWorkflow) fillUsername() loginState {
	el, ok := selector.ResolveWithFrames(w.sess, usernamePlan)
	if !ok {
		log.Printf("[login:%s] username field not found", w.runID)
		dumpFormElements(w.sess, "login:"+w.runID)
		return loginFailed
	}
	res := w.esc.Perform(el, interact.SetText(w.username))
	if !res.Succeeded {
		log.Printf("[login:%s] could not fill username field", w.runID)
		return loginFailed
	}
	log.Printf("[login:%s] username entered via %s tactic", w.runID, res.Tactic)
	return loginUsernameFilled
}

func (w *loginWorkflow) fillPassword() loginState {
	// Password fields never live in a different frame than the username
	// field that just resolved, so search the main document only.
	el, ok := selector.Resolve(w.sess, passwordPlan)
	if !ok {
		log.Printf("[login:%s] password field not found", w.runID)
		dumpFormElements(w.sess, "login:"+w.runID)
		return loginFailed
	}
	res := w.esc.Perform(el, interact.SetText(w.password))
	if !res.Succeeded {
		log.Printf("[login:%s] could not fill password field", w.runID)
		return loginFailed
	}
	w.passwordField = el
	return loginPasswordFilled
}

func (w *loginWorkflow) submit() loginState {
	if el, ok := selector.Resolve(w.sess, loginSubmitPlan); ok {
		if res := w.esc.Perform(el, interact.Activate()); res.Succeeded {
			log.Printf("[login:%s] form submitted via %s tactic", w.runID, res.Tactic)
			return loginSubmitted
		}
	}

	// No clickable submit control; Enter in the password field submits
	// the surrounding form on every Shaarli template we have seen.
	if w.passwordField != nil {
		if err := w.passwordField.PressEnter(); err == nil {
			log.Printf("[login:%s] form submitted via Enter key", w.runID)
			return loginSubmitted
		}
	}

	log.Printf("[login:%s] no way to submit the login form", w.runID)
	return loginFailed
}

func (w *loginWorkflow) verify() loginState {
	time.Sleep(w.settle)
	w.gate.Wait(w.sess)

	current := w.sess.CurrentURL()
	if !strings.Contains(current, "login") {
		log.Printf("[login:%s] success, current URL %s", w.runID, current)
		return loginSucceeded
	}

	// The URL can legitimately keep "login" in it (redirect chains, query
	// params), so also accept any authenticated-page marker.
	for _, marker := range loginMarkers {
		els, err := w.sess.Find(browser.ByPartialLinkText, marker)
		if err == nil && len(els) > 0 {
			log.Printf("[login:%s] success, %q marker present at %s", w.runID, marker, current)
			return loginSucceeded
		}
	}

	log.Printf("[login:%s] still on login page: %s", w.runID, current)
	return loginFailed
}

// logFrameInventory records the iframes the page carries. Login forms
// inside frames are rare but real; the inventory helps diagnose resolver
// misses.
func (w *loginWorkflow) logFrameInventory() {
	frames, err := w.sess.Find(browser.ByCSS, "iframe")
	if err != nil || len(frames) == 0 {
		return
	}
	log.Printf("[login:%s] page contains %d iframe(s)", w.runID, len(frames))
	for i, f := range frames {
		log.Printf("[login:%s]   iframe %d: src=%q name=%q",
			w.runID, i, f.Attribute("src"), f.Attribute("name"))
	}
}
