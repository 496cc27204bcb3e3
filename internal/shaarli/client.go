// Package shaarli drives a Shaarli instance through its web UI. The client
// runs each operation as a forward-only workflow over resilient selector
// plans, so template and version differences degrade into fallbacks rather
// than failures.
package shaarli

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"shaarli-driver/internal/browser"
	"shaarli-driver/internal/config"
	"shaarli-driver/internal/interact"
	"shaarli-driver/internal/trace"
)

var (
	// ErrNoSession is returned when a client is constructed without a
	// browser session.
	ErrNoSession = errors.New("shaarli: no browser session")
	// ErrNotAuthenticated is returned by operations that need a prior
	// successful Login.
	ErrNotAuthenticated = errors.New("shaarli: not authenticated")
)

// Auth is the proof of a successful login. Operations that require an
// authenticated session take it explicitly; there is no hidden logged-in
// flag on the client.
type Auth struct {
	id   string
	user string
}

// User returns the username the session was authenticated as.
func (a *Auth) User() string { return a.user }

// Client is the high-level driver for one Shaarli instance.
type Client struct {
	// Gate and Escalator are exported so tests and unusual deployments
	// can tune their timings; the defaults suit a live browser.
	Gate      browser.ReadyGate
	Escalator interact.Escalator
	Recorder  *trace.Recorder

	// InputWait bounds how long Login waits for form inputs to render.
	InputWait time.Duration
	// SubmitSettle follows form submissions before verifying the result.
	SubmitSettle time.Duration
	// StepSettle follows intermediate steps of multi-page workflows.
	StepSettle time.Duration

	sess browser.Session
	cfg  config.ShaarliConfig
}

// NewClient builds a client over an existing browser session.
func NewClient(sess browser.Session, cfg config.ShaarliConfig) (*Client, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return &Client{
		Gate:         browser.DefaultReadyGate(),
		Escalator:    interact.New(),
		InputWait:    10 * time.Second,
		SubmitSettle: 3 * time.Second,
		StepSettle:   2 * time.Second,
		sess:         sess,
		cfg:          cfg,
	}, nil
}

// Login authenticates against the Shaarli login form. It reports success
// or failure through the bool; failure is an expected outcome (bad
// credentials, unexpected markup), not an error.
func (c *Client) Login(username, password string) (*Auth, bool) {
	runID := uuid.New().String()[:8]
	if err := c.Recorder.Start(runID); err != nil {
		log.Printf("[login:%s] trace unavailable: %v", runID, err)
	}

	w := &loginWorkflow{
		sess:      c.sess,
		gate:      c.Gate,
		esc:       c.Escalator,
		rec:       c.Recorder,
		runID:     runID,
		loginURL:  c.cfg.LoginURL(),
		username:  username,
		password:  password,
		inputWait: c.InputWait,
		settle:    c.SubmitSettle,
	}
	if !w.run() {
		return nil, false
	}
	return &Auth{id: runID, user: username}, true
}

// AddBookmark saves a bookmark through the two-step add-shaare flow. The
// bool mirrors Login: false means the workflow ran but the save did not
// take; an error means the operation could not run at all.
func (c *Client) AddBookmark(auth *Auth, b Bookmark) (bool, error) {
	if auth == nil {
		return false, ErrNotAuthenticated
	}
	if b.URL == "" {
		return false, errors.New("shaarli: bookmark URL is required")
	}

	runID := uuid.New().String()[:8]
	if err := c.Recorder.Start(runID); err != nil {
		log.Printf("[add:%s] trace unavailable: %v", runID, err)
	}

	w := &addWorkflow{
		sess:         c.sess,
		gate:         c.Gate,
		esc:          c.Escalator,
		rec:          c.Recorder,
		runID:        runID,
		addURL:       c.cfg.AddBookmarkURL(),
		bookmark:     b,
		stepSettle:   c.StepSettle,
		submitSettle: c.SubmitSettle,
	}
	return w.run(), nil
}

// RecentLinks extracts up to limit bookmarks from the instance's front
// page. Extraction is read-only and repeatable; an empty result with a nil
// error means the page genuinely exposed no external links.
func (c *Client) RecentLinks(auth *Auth, limit int) ([]BookmarkRecord, error) {
	if auth == nil {
		return nil, ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = 10
	}

	base := c.cfg.Base()
	if err := c.sess.Navigate(base); err != nil {
		return nil, err
	}
	c.Gate.Wait(c.sess)

	return extractLinks(c.sess, base, limit), nil
}
