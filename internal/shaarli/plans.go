package shaarli

import (
	"shaarli-driver/internal/browser"
	"shaarli-driver/internal/selector"
)

// Selector plans for the Shaarli layouts we know about, oldest templates
// included. Order matters: exact name/id matches lead, structural guesses
// trail, and only the first five rules of each plan are replayed inside
// iframes.

var usernamePlan = selector.Plan{
	{Kind: browser.ByName, Value: "login"},
	{Kind: browser.ByName, Value: "username"},
	{Kind: browser.ByName, Value: "user"},
	{Kind: browser.ByID, Value: "login"},
	{Kind: browser.ByID, Value: "username"},
	{Kind: browser.ByID, Value: "user"},
	{Kind: browser.ByCSS, Value: "input[name='login']"},
	{Kind: browser.ByCSS, Value: "input[name='username']"},
	{Kind: browser.ByCSS, Value: "input[type='text']"},
	{Kind: browser.ByCSS, Value: "input[type='email']"},
	{Kind: browser.ByXPath, Value: "//input[@name='login']"},
	{Kind: browser.ByXPath, Value: "//input[@name='username']"},
	{Kind: browser.ByXPath, Value: "//input[@type='text']"},
	{Kind: browser.ByXPath, Value: "//input[contains(@placeholder, 'user')]"},
	{Kind: browser.ByXPath, Value: "//input[contains(@placeholder, 'login')]"},
	{Kind: browser.ByXPath, Value: "//input[contains(@class, 'user')]"},
	{Kind: browser.ByXPath, Value: "//input[contains(@class, 'login')]"},
	// Structural fallbacks: first text input inside a form, then any input
	// that is not a password/submit/button/hidden control.
	{Kind: browser.ByCSS, Value: "form input[type='text'], form input:not([type])"},
	{Kind: browser.ByCSS, Value: "input:not([type='password']):not([type='submit']):not([type='button']):not([type='hidden'])"},
}

var passwordPlan = selector.Plan{
	{Kind: browser.ByName, Value: "password"},
	{Kind: browser.ByID, Value: "password"},
	{Kind: browser.ByCSS, Value: "input[name='password']"},
	{Kind: browser.ByCSS, Value: "input[type='password']"},
	{Kind: browser.ByXPath, Value: "//input[@name='password']"},
	{Kind: browser.ByXPath, Value: "//input[@type='password']"},
}

var loginSubmitPlan = selector.Plan{
	{Kind: browser.ByCSS, Value: "input[type='submit']"},
	{Kind: browser.ByCSS, Value: "button[type='submit']"},
	{Kind: browser.ByCSS, Value: "input[value*='Login']"},
	{Kind: browser.ByCSS, Value: "input[value*='login']"},
	{Kind: browser.ByCSS, Value: "input[value*='Log in']"},
	{Kind: browser.ByCSS, Value: "button"},
	{Kind: browser.ByXPath, Value: "//input[@type='submit']"},
	{Kind: browser.ByXPath, Value: "//button[@type='submit']"},
	{Kind: browser.ByXPath, Value: "//input[contains(@value, 'Login')]"},
	{Kind: browser.ByXPath, Value: "//button[contains(text(), 'Login')]"},
}

var urlFieldPlan = selector.Plan{
	{Kind: browser.ByName, Value: "post"},
	{Kind: browser.ByID, Value: "shaare"},
	{Kind: browser.ByCSS, Value: "input[name='post']"},
	{Kind: browser.ByCSS, Value: "input[type='url']"},
	{Kind: browser.ByCSS, Value: "input[type='text']"},
	{Kind: browser.ByXPath, Value: "//input[@name='post']"},
	{Kind: browser.ByXPath, Value: "//input[@id='shaare']"},
	{Kind: browser.ByXPath, Value: "//input[@type='url']"},
}

var stepOneSubmitPlan = selector.Plan{
	{Kind: browser.ByCSS, Value: "input[type='submit']"},
	{Kind: browser.ByCSS, Value: "button[type='submit']"},
	{Kind: browser.ByCSS, Value: "input[value*='Add']"},
	{Kind: browser.ByCSS, Value: "button"},
	{Kind: browser.ByXPath, Value: "//input[@type='submit']"},
	{Kind: browser.ByXPath, Value: "//button[@type='submit']"},
	{Kind: browser.ByXPath, Value: "//input[contains(@value, 'Add')]"},
	{Kind: browser.ByXPath, Value: "//button[contains(text(), 'Add')]"},
}

var titlePlan = selector.Plan{
	{Kind: browser.ByName, Value: "lf_title"},
	{Kind: browser.ByName, Value: "title"},
	{Kind: browser.ByID, Value: "lf_title"},
	{Kind: browser.ByID, Value: "title"},
	{Kind: browser.ByCSS, Value: "input[name='lf_title']"},
	{Kind: browser.ByCSS, Value: "input[name='title']"},
	{Kind: browser.ByXPath, Value: "//input[@name='lf_title']"},
	{Kind: browser.ByXPath, Value: "//input[@name='title']"},
}

var descriptionPlan = selector.Plan{
	{Kind: browser.ByName, Value: "lf_description"},
	{Kind: browser.ByName, Value: "description"},
	{Kind: browser.ByID, Value: "lf_description"},
	{Kind: browser.ByID, Value: "description"},
	{Kind: browser.ByCSS, Value: "textarea[name='lf_description']"},
	{Kind: browser.ByCSS, Value: "textarea[name='description']"},
	{Kind: browser.ByXPath, Value: "//textarea[@name='lf_description']"},
	{Kind: browser.ByXPath, Value: "//textarea[@name='description']"},
}

var tagsPlan = selector.Plan{
	{Kind: browser.ByName, Value: "lf_tags"},
	{Kind: browser.ByName, Value: "tags"},
	{Kind: browser.ByID, Value: "lf_tags"},
	{Kind: browser.ByID, Value: "tags"},
	{Kind: browser.ByCSS, Value: "input[name='lf_tags']"},
	{Kind: browser.ByCSS, Value: "input[name='tags']"},
	{Kind: browser.ByXPath, Value: "//input[@name='lf_tags']"},
	{Kind: browser.ByXPath, Value: "//input[@name='tags']"},
}

var privatePlan = selector.Plan{
	{Kind: browser.ByName, Value: "lf_private"},
	{Kind: browser.ByName, Value: "private"},
	{Kind: browser.ByID, Value: "lf_private"},
	{Kind: browser.ByID, Value: "private"},
	{Kind: browser.ByCSS, Value: "input[name='lf_private']"},
	{Kind: browser.ByCSS, Value: "input[name='private']"},
	{Kind: browser.ByXPath, Value: "//input[@name='lf_private']"},
	{Kind: browser.ByXPath, Value: "//input[@name='private']"},
}

var savePlan = selector.Plan{
	{Kind: browser.ByCSS, Value: "input[type='submit'][value*='Save']"},
	{Kind: browser.ByCSS, Value: "button[type='submit']"},
	{Kind: browser.ByCSS, Value: "input[type='submit']"},
	{Kind: browser.ByCSS, Value: "button"},
	{Kind: browser.ByXPath, Value: "//input[@type='submit' and contains(@value, 'Save')]"},
	{Kind: browser.ByXPath, Value: "//button[@type='submit']"},
	{Kind: browser.ByXPath, Value: "//button[contains(text(), 'Save')]"},
	{Kind: browser.ByXPath, Value: "//input[@type='submit']"},
}

// Extraction plans (see extract.go). Container tiers first, then anchors
// found inside a candidate, then page-content fallbacks.

var linkContainerPlan = selector.Plan{
	{Kind: browser.ByCSS, Value: ".linklist .linklist-item"},
	{Kind: browser.ByCSS, Value: ".bookmark"},
	{Kind: browser.ByCSS, Value: ".shaare"},
	{Kind: browser.ByCSS, Value: ".link"},
	{Kind: browser.ByCSS, Value: "article"},
	{Kind: browser.ByCSS, Value: ".post"},
}

var contentContainerPlan = selector.Plan{
	{Kind: browser.ByCSS, Value: ".main-content"},
	{Kind: browser.ByCSS, Value: ".content"},
	{Kind: browser.ByCSS, Value: "#content"},
	{Kind: browser.ByCSS, Value: "main"},
	{Kind: browser.ByCSS, Value: ".container"},
}

var recordLinkSelectors = []string{
	"a[href*='http']",
	".linklist-link",
	".bookmark-title a",
	".shaare-title a",
	"a",
}

var descriptionSelectors = []string{
	".linklist-description",
	".bookmark-description",
	".shaare-description",
	".description",
	"p",
	".text",
}

var tagSelectors = []string{
	".linklist-tags",
	".bookmark-tags",
	".shaare-tags",
	".tags",
	".tag",
}
