package browser

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Probe checks whether the target site answers HTTP at all before a
// workflow burns its navigation timeouts on a dead host. Any status
// below 400 counts as reachable.
func Probe(baseURL string, timeout time.Duration) bool {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL)
	if err != nil {
		log.Printf("server not reachable: %v", err)
		return false
	}
	defer resp.Body.Close()
	log.Printf("server responded with status: %d", resp.StatusCode)
	return resp.StatusCode < 400
}

// ProbeWithSession is the in-browser fallback: navigate and check that the
// browser did not land on its network-error page.
func ProbeWithSession(s Session, baseURL string) bool {
	if err := s.Navigate(baseURL); err != nil {
		log.Printf("connectivity test failed: %v", err)
		return false
	}
	return !strings.Contains(s.CurrentURL(), "neterror")
}
