package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWithMetricsCountsRequests(t *testing.T) {
	m := NewMetrics()

	h := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), m)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user/note", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status=%d", rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	if !strings.Contains(body, `notekeep_http_requests_total{method="GET",path="/user/note",status="200"} 3`) {
		t.Fatalf("missing counter in exposition:\n%s", body)
	}
}

func TestRouteLabelBoundsCardinality(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/user/../../etc/passwd", nil)
	if got := routeLabel(r); got != "other" {
		t.Fatalf("routeLabel=%q want other", got)
	}
	r = httptest.NewRequest(http.MethodPost, "/login", nil)
	if got := routeLabel(r); got != "/login" {
		t.Fatalf("routeLabel=%q want /login", got)
	}
}

func TestObservePurgedIgnoresNonPositive(t *testing.T) {
	m := NewMetrics()
	m.ObservePurged(0)
	m.ObservePurged(-3)
	m.ObservePurged(2)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "notekeep_sessions_purged_total 2") {
		t.Fatalf("missing purge counter:\n%s", rr.Body.String())
	}
}
