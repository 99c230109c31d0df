package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDelivery(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveDelivery("accepted")
	m.ObserveDelivery("accepted")
	m.ObserveDelivery("signature_mismatch")

	if got := testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("accepted")); got != 2 {
		t.Errorf("accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("signature_mismatch")); got != 1 {
		t.Errorf("signature_mismatch = %v, want 1", got)
	}
}

func TestObserveChallengeAndRateLimit(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveChallenge("verified")
	m.ObserveChallenge("rejected")
	m.ObserveChallenge("rejected")
	m.ObserveRateLimited()
	m.ObserveRateLimitError()

	if got := testutil.ToFloat64(m.ChallengesTotal.WithLabelValues("rejected")); got != 2 {
		t.Errorf("rejected = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RateLimitedTotal); got != 1 {
		t.Errorf("rate limited = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RateLimitErrorsTotal); got != 1 {
		t.Errorf("rate limit errors = %v, want 1", got)
	}
}

func TestObserveHTTP(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveHTTP("POST", "/webhook", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/webhook", "200")); got != 1 {
		t.Errorf("POST /webhook 200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched path should be bucketed, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveDelivery("accepted")
	m.ObserveChallenge("verified")
	m.ObserveHTTP("GET", "/", 200, time.Second)
	m.ObserveRateLimited()
	m.ObserveRateLimitError()
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveDelivery("accepted")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `webhook_deliveries_total{result="accepted"} 1`) {
		t.Errorf("metrics output missing delivery counter:\n%s", body)
	}
}
