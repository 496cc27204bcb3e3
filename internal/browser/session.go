package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shaarli-driver/internal/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/ysmood/gson"
)

// Driver owns one Chrome page and implements Session on top of rod.
// One Driver serves one workflow at a time; there is no session pooling.
type Driver struct {
	id         string
	cfg        config.BrowserConfig
	browser    *rod.Browser
	page       *rod.Page
	controlURL string
}

// Connect attaches to an existing Chrome or launches a new one using Rod's
// launcher, then opens the single page all workflows share.
func Connect(ctx context.Context, cfg config.BrowserConfig) (*Driver, error) {
	controlURL := cfg.DebuggerURL
	if controlURL == "" && len(cfg.Launch) > 0 {
		bin := cfg.Launch[0]
		launch := launcher.New().Bin(bin).Headless(cfg.IsHeadless())
		for _, rawFlag := range cfg.Launch[1:] {
			flagStr := strings.TrimLeft(rawFlag, "-")
			name, val, hasVal := strings.Cut(flagStr, "=")
			if hasVal {
				launch = launch.Set(flags.Flag(name), val)
			} else {
				launch = launch.Set(flags.Flag(name))
			}
		}
		url, err := launch.Launch()
		if err != nil {
			// Fallback: let Rod pick the port and defaults.
			fallback := launcher.New().Bin(bin).Headless(cfg.IsHeadless())
			alt, altErr := fallback.Launch()
			if altErr != nil {
				return nil, fmt.Errorf("launch chrome: %w (fallback: %v)", err, altErr)
			}
			controlURL = alt
		} else {
			controlURL = url
		}
	}

	if controlURL == "" {
		return nil, errors.New("no debugger_url or launch command provided")
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.GetViewportWidth(),
		Height:            cfg.GetViewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		log.Printf("warning: failed to set viewport: %v", err)
	}

	d := &Driver{
		id:         uuid.NewString(),
		cfg:        cfg,
		browser:    browser,
		page:       page,
		controlURL: controlURL,
	}
	log.Printf("[driver:%s] browser connected at %s", d.id, controlURL)
	return d, nil
}

// ID returns the driver's correlation identifier used in logs.
func (d *Driver) ID() string { return d.id }

// ControlURL returns the WebSocket debugger URL for the connected browser.
func (d *Driver) ControlURL() string { return d.controlURL }

// Close shuts the page and the underlying browser down.
func (d *Driver) Close() error {
	if d.page != nil {
		_ = d.page.Close()
		d.page = nil
	}
	var err error
	if d.browser != nil {
		err = d.browser.Close()
		d.browser = nil
	}
	log.Printf("[driver:%s] browser shutdown complete", d.id)
	return err
}

// Navigate loads the URL and waits for the load event, bounded by the
// configured navigation timeout. Prior element handles become invalid.
func (d *Driver) Navigate(url string) error {
	if err := d.page.Timeout(d.cfg.NavigationTimeout()).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	_ = d.page.Timeout(d.cfg.NavigationTimeout()).WaitLoad()
	return nil
}

// Eval runs a JS function in the page and returns its value.
func (d *Driver) Eval(js string) (gson.JSON, error) {
	res, err := d.page.Timeout(d.cfg.ElementTimeout()).Eval(js)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

// CurrentURL returns the page's current location, or "" when unavailable.
func (d *Driver) CurrentURL() string {
	info, err := d.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// PageSource returns the current document's HTML, or "" when unavailable.
func (d *Driver) PageSource() string {
	html, err := d.page.HTML()
	if err != nil {
		return ""
	}
	return html
}

// Find queries the main document. Misses return an empty slice, not an error.
func (d *Driver) Find(kind Kind, value string) ([]Element, error) {
	return findIn(pageScope{d.page}, d.cfg.ElementTimeout(), kind, value, false)
}

// rodQuerier is the query surface shared by *rod.Page and *rod.Element.
type rodQuerier interface {
	Elements(selector string) (rod.Elements, error)
	ElementsX(xpath string) (rod.Elements, error)
}

type pageScope struct{ page *rod.Page }

func (s pageScope) Elements(sel string) (rod.Elements, error) { return s.page.Elements(sel) }
func (s pageScope) ElementsX(xp string) (rod.Elements, error) { return s.page.ElementsX(xp) }

func findIn(q rodQuerier, timeout time.Duration, kind Kind, value string, relative bool) ([]Element, error) {
	built, err := buildQuery(kind, value, relative)
	if err != nil {
		return nil, err
	}
	var matches rod.Elements
	if built.xpath {
		matches, err = q.ElementsX(built.expr)
	} else {
		matches, err = q.Elements(built.expr)
	}
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(matches))
	for _, m := range matches {
		out = append(out, &rodElement{el: m, timeout: timeout})
	}
	return out, nil
}

// rodElement adapts *rod.Element to the Element interface. All native
// interactions run under the element timeout so no tactic blocks forever.
type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *rodElement) Find(kind Kind, value string) ([]Element, error) {
	return findIn(e.el, e.timeout, kind, value, true)
}

func (e *rodElement) Tag() string {
	prop, err := e.el.Property("tagName")
	if err != nil {
		return ""
	}
	return strings.ToLower(prop.Str())
}

func (e *rodElement) Text() string {
	text, err := e.el.Text()
	if err != nil {
		return ""
	}
	return text
}

func (e *rodElement) Attribute(name string) string {
	attr, err := e.el.Attribute(name)
	if err != nil || attr == nil {
		return ""
	}
	return *attr
}

func (e *rodElement) Checked() bool {
	prop, err := e.el.Property("checked")
	if err != nil {
		return false
	}
	return prop.Bool()
}

func (e *rodElement) Click() error {
	return e.el.Timeout(e.timeout).Click("left", 1)
}

func (e *rodElement) Clear() error {
	if err := e.el.Timeout(e.timeout).SelectAllText(); err != nil {
		return err
	}
	return e.el.Timeout(e.timeout).Input("")
}

func (e *rodElement) Type(text string) error {
	return e.el.Timeout(e.timeout).Input(text)
}

func (e *rodElement) PressEnter() error {
	return e.el.Timeout(e.timeout).Type(input.Enter)
}

func (e *rodElement) ScrollIntoCenter() error {
	_, err := e.el.Timeout(e.timeout).Eval(
		`() => this.scrollIntoView({behavior: 'smooth', block: 'center'})`)
	return err
}

func (e *rodElement) ScriptClick() error {
	_, err := e.el.Timeout(e.timeout).Eval(`() => this.click()`)
	return err
}

func (e *rodElement) ScriptSetValue(text string) error {
	_, err := e.el.Timeout(e.timeout).Eval(`(value) => {
		this.value = value;
		this.dispatchEvent(new Event('input', {bubbles: true}));
		this.dispatchEvent(new Event('change', {bubbles: true}));
	}`, text)
	return err
}

func (e *rodElement) EnterFrame() (Querier, error) {
	frame, err := e.el.Frame()
	if err != nil {
		return nil, fmt.Errorf("enter iframe: %w", err)
	}
	return &frameScope{page: frame, timeout: e.timeout}, nil
}

// frameScope is the content document of an iframe. Rod binds each frame to
// its own page handle, so leaving a frame needs no explicit context switch.
type frameScope struct {
	page    *rod.Page
	timeout time.Duration
}

func (f *frameScope) Find(kind Kind, value string) ([]Element, error) {
	return findIn(pageScope{f.page}, f.timeout, kind, value, false)
}
