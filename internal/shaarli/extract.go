package shaarli

import (
	"log"
	"net/url"
	"strings"

	"shaarli-driver/internal/browser"
	"shaarli-driver/internal/selector"
)

// BookmarkRecord is one extracted link from the public link list.
type BookmarkRecord struct {
	URL         string
	Title       string
	Description string
	Tags        string
}

const noTitle = "No title"

// extractLinks pulls up to limit bookmark records out of the current page
// using a three-tier cascade: known container markup first, then every
// external anchor on the page, then anchors inside generic content
// containers. Each tier only runs when the previous one produced nothing.
func extractLinks(sess browser.Session, base string, limit int) []BookmarkRecord {
	candidates := collectCandidates(sess, base, limit)
	if len(candidates) == 0 {
		logEmptyPage(sess)
		return nil
	}

	records := make([]BookmarkRecord, 0, len(candidates))
	for _, c := range candidates {
		rec, ok := recordFromCandidate(c, base)
		if !ok {
			continue
		}
		// Never hand back a record without an external URL, whatever
		// the markup looked like.
		if rec.URL == "" || !isExternal(rec.URL, base) {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func collectCandidates(sess browser.Session, base string, limit int) []browser.Element {
	// Tier 1: known bookmark container markup.
	if containers, ok := selector.ResolveAll(sess, linkContainerPlan); ok {
		log.Printf("link extraction: %d container(s) matched", len(containers))
		if len(containers) > limit {
			containers = containers[:limit]
		}
		return containers
	}

	// Tier 2: every anchor on the page, filtered to external targets.
	if anchors, err := sess.Find(browser.ByCSS, "a"); err == nil {
		external := filterExternal(anchors, base, limit)
		if len(external) > 0 {
			log.Printf("link extraction: fell back to %d external anchor(s)", len(external))
			return external
		}
	}

	// Tier 3: anchors inside a generic content container.
	if container, ok := selector.Resolve(sess, contentContainerPlan); ok {
		if anchors, err := container.Find(browser.ByCSS, "a"); err == nil {
			external := filterExternal(anchors, base, limit)
			if len(external) > 0 {
				log.Printf("link extraction: %d anchor(s) from content container", len(external))
				return external
			}
		}
	}
	return nil
}

// filterExternal keeps anchors pointing off the configured site, measured
// against the configured base rather than wherever the browser landed.
func filterExternal(anchors []browser.Element, base string, limit int) []browser.Element {
	var out []browser.Element
	for _, a := range anchors {
		if !isExternal(a.Attribute("href"), base) {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}

// recordFromCandidate turns one candidate element into a record. An anchor
// candidate is its own link; container candidates are searched for their
// first external anchor, then mined for description and tags.
func recordFromCandidate(c browser.Element, base string) (BookmarkRecord, bool) {
	var link browser.Element
	if strings.EqualFold(c.Tag(), "a") {
		link = c
	} else {
		link = firstExternalAnchor(c, base)
		if link == nil {
			return BookmarkRecord{}, false
		}
	}

	rec := BookmarkRecord{
		URL:   link.Attribute("href"),
		Title: anchorTitle(link),
	}
	if !strings.EqualFold(c.Tag(), "a") {
		rec.Description = firstText(c, descriptionSelectors)
		rec.Tags = gatherText(c, tagSelectors)
	}
	return rec, true
}

func firstExternalAnchor(c browser.Element, base string) browser.Element {
	for _, sel := range recordLinkSelectors {
		matches, err := c.Find(browser.ByCSS, sel)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if isExternal(m.Attribute("href"), base) {
				return m
			}
		}
	}
	return nil
}

func anchorTitle(link browser.Element) string {
	if t := strings.TrimSpace(link.Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(link.Attribute("title")); t != "" {
		return t
	}
	return noTitle
}

// firstText returns the trimmed text of the first selector that matches a
// non-empty element under c.
func firstText(c browser.Element, selectors []string) string {
	for _, sel := range selectors {
		matches, err := c.Find(browser.ByCSS, sel)
		if err != nil || len(matches) == 0 {
			continue
		}
		if t := strings.TrimSpace(matches[0].Text()); t != "" {
			return t
		}
	}
	return ""
}

// gatherText joins the text of every match of the first selector that hits.
func gatherText(c browser.Element, selectors []string) string {
	for _, sel := range selectors {
		matches, err := c.Find(browser.ByCSS, sel)
		if err != nil || len(matches) == 0 {
			continue
		}
		var parts []string
		for _, m := range matches {
			if t := strings.TrimSpace(m.Text()); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// isExternal reports whether href is an absolute http(s) URL pointing at a
// different origin than base. Relative links, fragments, and same-origin
// permalinks are all internal.
func isExternal(href, base string) bool {
	if href == "" {
		return false
	}
	h, err := url.Parse(href)
	if err != nil {
		return false
	}
	if h.Scheme != "http" && h.Scheme != "https" {
		return false
	}
	b, err := url.Parse(base)
	if err != nil {
		return true
	}
	return !strings.EqualFold(h.Scheme, b.Scheme) || !strings.EqualFold(h.Host, b.Host)
}

// logEmptyPage dumps a source snippet when no tier produced a candidate so
// an unexpected layout shows up in the log.
func logEmptyPage(sess browser.Session) {
	src := sess.PageSource()
	if len(src) > 500 {
		src = src[:500]
	}
	log.Printf("link extraction found nothing at %s, page starts with: %s",
		sess.CurrentURL(), src)
}
