package browser

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ysmood/gson"
)

func TestProbeReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if !Probe(srv.URL, time.Second) {
		t.Error("expected a 200 server to count as reachable")
	}
}

func TestProbeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if Probe(srv.URL, time.Second) {
		t.Error("expected a 503 server to count as unreachable")
	}
}

func TestProbeDeadHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if Probe(url, time.Second) {
		t.Error("expected a closed server to count as unreachable")
	}
}

// navSession records navigations and reports a fixed landing URL.
type navSession struct {
	landedAt string
	navErr   error
}

func (s *navSession) Find(Kind, string) ([]Element, error) { return nil, nil }
func (s *navSession) Eval(string) (gson.JSON, error) { return gson.New(nil), nil }
func (s *navSession) PageSource() string { return "" }
func (s *navSession) CurrentURL() string { return s.landedAt }
func (s *navSession) Navigate(string) error { return s.navErr }

func TestProbeWithSession(t *testing.T) {
	ok := &navSession{landedAt: "https://links.example.com/"}
	if !ProbeWithSession(ok, "https://links.example.com") {
		t.Error("expected a clean landing to count as reachable")
	}

	bad := &navSession{landedAt: "about:neterror?e=dnsNotFound"}
	if ProbeWithSession(bad, "https://links.example.com") {
		t.Error("expected the browser error page to count as unreachable")
	}
}
