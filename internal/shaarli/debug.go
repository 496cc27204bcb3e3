package shaarli

import (
	"log"

	"shaarli-driver/internal/browser"
)

// dumpFormElements logs every input on the page so a failed resolution can
// be diagnosed from the log alone. tag is the workflow's log prefix.
func dumpFormElements(sess browser.Session, tag string) {
	inputs, err := sess.Find(browser.ByCSS, "input")
	if err != nil {
		return
	}
	log.Printf("[%s] page has %d input element(s):", tag, len(inputs))
	for i, in := range inputs {
		log.Printf("[%s]   input %d: name=%q type=%q id=%q placeholder=%q",
			tag, i,
			in.Attribute("name"), in.Attribute("type"),
			in.Attribute("id"), in.Attribute("placeholder"))
	}
}
