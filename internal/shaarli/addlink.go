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

// Bookmark is the user-supplied content of one shaare. Only URL is
// mandatory; empty optional fields are skipped on the details form.
type Bookmark struct {
	URL         string
	Title       string
	Description string
	Tags        string
	Private     bool
}

// addState tracks progress through the two-step add-bookmark workflow.
type addState int

const (
	addStart addState = iota
	addNavigated
	addURLEntered
	addStepOneSubmitted
	addDetailsReady
	addTitleEntered
	addDescriptionEntered
	addTagsEntered
	addPrivacySet
	addSaved
	addSucceeded
	addFailed
)

func (s addState) String() string {
	switch s {
	case addStart:
		return "start"
	case addNavigated:
		return "navigated"
	case addURLEntered:
		return "url-entered"
	case addStepOneSubmitted:
		return "step-one-submitted"
	case addDetailsReady:
		return "details-ready"
	case addTitleEntered:
		return "title-entered"
	case addDescriptionEntered:
		return "description-entered"
	case addTagsEntered:
		return "tags-entered"
	case addPrivacySet:
		return "privacy-set"
	case addSaved:
		return "saved"
	case addSucceeded:
		return "succeeded"
	case addFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type addWorkflow struct {
	sess  browser.Session
	gate  browser.ReadyGate
	esc   interact.Escalator
	rec   *trace.Recorder
	runID string

	addURL   string
	bookmark Bookmark

	// stepSettle follows each intermediate form action; submitSettle
	// follows the final save before verification.
	stepSettle   time.Duration
	submitSettle time.Duration

	// urlField backs the Enter-key fallback when step one has no visible
	// submit control.
	urlField browser.Element
}

func (w *addWorkflow) run() bool {
	state := addStart
	for {
		log.Printf("[add:%s] state %s", w.runID, state)
		w.rec.Log(state.String(), "add-bookmark", "", nil)

		switch state {
		case addStart:
			state = w.navigate()
		case addNavigated:
			state = w.enterURL()
		case addURLEntered:
			state = w.submitStepOne()
		case addStepOneSubmitted:
			state = w.awaitDetails()
		case addDetailsReady:
			state = w.enterTitle()
		case addTitleEntered:
			state = w.enterDescription()
		case addDescriptionEntered:
			state = w.enterTags()
		case addTagsEntered:
			state = w.setPrivacy()
		case addPrivacySet:
			state = w.save()
		case addSaved:
			state = w.verify()
		case addSucceeded:
			return true
		case addFailed:
			return false
		}
	}
}

func (w *addWorkflow) navigate() addState {
	if err := w.sess.Navigate(w.addURL); err != nil {
		log.Printf("[add:%s] navigation to %s failed: %v", w.runID, w.addURL, err)
		return addFailed
	}
	w.gate.Wait(w.sess)
	return addNavigated
}

func (w *addWorkflow) enterURL() addState {
	el, ok := selector.Resolve(w.sess, urlFieldPlan)
	if !ok {
		log.Printf("[add:%s] URL field not found", w.runID)
		dumpFormElements(w.sess, "add:"+w.runID)
		return addFailed
	}
	res := w.esc.Perform(el, interact.SetText(w.bookmark.URL))
	if !res.Succeeded {
		log.Printf("[add:%s] could not fill URL field", w.runID)
		return addFailed
	}
	w.urlField = el
	log.Printf("[add:%s] URL entered via %s tactic", w.runID, res.Tactic)
	return addURLEntered
}

func (w *addWorkflow) submitStepOne() addState {
	// The Enter-key fallback only covers a form without a submit control.
	// A control that resolved but could not be activated is a dead form.
	if el, ok := selector.Resolve(w.sess, stepOneSubmitPlan); ok {
		res := w.esc.Perform(el, interact.Activate())
		if !res.Succeeded {
			log.Printf("[add:%s] could not activate the step-one submit control", w.runID)
			return addFailed
		}
		log.Printf("[add:%s] step one submitted via %s tactic", w.runID, res.Tactic)
		return addStepOneSubmitted
	}

	if w.urlField != nil {
		if err := w.urlField.PressEnter(); err == nil {
			log.Printf("[add:%s] step one submitted via Enter key", w.runID)
			return addStepOneSubmitted
		}
	}

	log.Printf("[add:%s] no way to submit the URL form", w.runID)
	return addFailed
}

func (w *addWorkflow) awaitDetails() addState {
	time.Sleep(w.stepSettle)
	w.gate.Wait(w.sess)
	return addDetailsReady
}

// enterTitle is the canary for the details form: if the title field is
// absent, step one never reached it, and retrying optional fields on the
// wrong page would only mask that.
func (w *addWorkflow) enterTitle() addState {
	el, ok := selector.Resolve(w.sess, titlePlan)
	if !ok {
		log.Printf("[add:%s] details form not reached, title field absent at %s",
			w.runID, w.sess.CurrentURL())
		dumpFormElements(w.sess, "add:"+w.runID)
		w.rec.Log("title", "add-bookmark", trace.OutcomeMissing, nil)
		return addFailed
	}

	if w.bookmark.Title == "" {
		w.rec.Log("title", "add-bookmark", trace.OutcomeSkipped, nil)
		return addTitleEntered
	}

	// Shaarli usually prefills the title from the target page; overriding
	// it is best effort and a failed fill keeps the prefilled value.
	if res := w.esc.Perform(el, interact.SetText(w.bookmark.Title)); res.Succeeded {
		w.rec.Log("title", "add-bookmark", trace.OutcomeApplied, res.Tactic)
	} else {
		log.Printf("[add:%s] could not set title, keeping prefilled value", w.runID)
		w.rec.Log("title", "add-bookmark", trace.OutcomeFailed, nil)
	}
	return addTitleEntered
}

func (w *addWorkflow) enterDescription() addState {
	w.optionalField("description", descriptionPlan, w.bookmark.Description)
	return addDescriptionEntered
}

func (w *addWorkflow) enterTags() addState {
	w.optionalField("tags", tagsPlan, w.bookmark.Tags)
	return addTagsEntered
}

func (w *addWorkflow) setPrivacy() addState {
	if !w.bookmark.Private {
		w.rec.Log("private", "add-bookmark", trace.OutcomeSkipped, nil)
		return addPrivacySet
	}

	el, ok := selector.Resolve(w.sess, privatePlan)
	if !ok {
		log.Printf("[add:%s] private checkbox not found", w.runID)
		w.rec.Log("private", "add-bookmark", trace.OutcomeMissing, nil)
		return addPrivacySet
	}
	if el.Checked() {
		w.rec.Log("private", "add-bookmark", trace.OutcomeApplied, "already-checked")
		return addPrivacySet
	}
	if res := w.esc.Perform(el, interact.Activate()); res.Succeeded {
		w.rec.Log("private", "add-bookmark", trace.OutcomeApplied, res.Tactic)
	} else {
		log.Printf("[add:%s] could not toggle private checkbox", w.runID)
		w.rec.Log("private", "add-bookmark", trace.OutcomeFailed, nil)
	}
	return addPrivacySet
}

// optionalField fills one non-mandatory details field. Absence and fill
// failure are both recorded but never change the workflow outcome.
func (w *addWorkflow) optionalField(step string, plan selector.Plan, value string) {
	if value == "" {
		w.rec.Log(step, "add-bookmark", trace.OutcomeSkipped, nil)
		return
	}
	el, ok := selector.Resolve(w.sess, plan)
	if !ok {
		log.Printf("[add:%s] %s field not found, continuing", w.runID, step)
		w.rec.Log(step, "add-bookmark", trace.OutcomeMissing, nil)
		return
	}
	if res := w.esc.Perform(el, interact.SetText(value)); res.Succeeded {
		w.rec.Log(step, "add-bookmark", trace.OutcomeApplied, res.Tactic)
	} else {
		log.Printf("[add:%s] could not fill %s field, continuing", w.runID, step)
		w.rec.Log(step, "add-bookmark", trace.OutcomeFailed, nil)
	}
}

func (w *addWorkflow) save() addState {
	el, ok := selector.Resolve(w.sess, savePlan)
	if !ok {
		log.Printf("[add:%s] save button not found", w.runID)
		dumpFormElements(w.sess, "add:"+w.runID)
		return addFailed
	}
	res := w.esc.Perform(el, interact.Activate())
	if !res.Succeeded {
		log.Printf("[add:%s] could not activate save button", w.runID)
		return addFailed
	}
	log.Printf("[add:%s] saved via %s tactic", w.runID, res.Tactic)
	return addSaved
}

func (w *addWorkflow) verify() addState {
	time.Sleep(w.submitSettle)
	w.gate.Wait(w.sess)

	current := w.sess.CurrentURL()
	if strings.Contains(current, "add-shaare") || strings.Contains(current, "admin") {
		log.Printf("[add:%s] still on an admin page after save: %s", w.runID, current)
		return addFailed
	}
	log.Printf("[add:%s] bookmark saved, landed on %s", w.runID, current)
	return addSucceeded
}
