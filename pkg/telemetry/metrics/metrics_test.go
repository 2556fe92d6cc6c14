package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector

	// None of these may panic.
	c.ObserveEvaluation("entrance", true, 100, time.Microsecond)
	c.ObserveRuleOutcome("bpa-logo", false)
	c.ObserveSignCreated("tariff")
	c.ObserveHTTPRequest("GET", "/api/signs", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil collector handler status = %d, want 404", rec.Code)
	}
}

func TestDisabledConfigReturnsNil(t *testing.T) {
	if c := NewCollector(Config{Enabled: false}); c != nil {
		t.Error("disabled config should return a nil collector")
	}
}

func TestCollectorExposesMetrics(t *testing.T) {
	c := NewCollector(Config{Enabled: true})
	if c == nil {
		t.Fatal("enabled config returned nil collector")
	}

	c.ObserveEvaluation("terms_conditions", false, 76, 50*time.Microsecond)
	c.ObserveRuleOutcome("bpa-logo", false)
	c.ObserveSignCreated("entrance")
	c.ObserveHTTPRequest("POST", "/api/compliance/check", 200, 2*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("metrics endpoint status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`signage_compliance_evaluations_total{compliant="false",sign_type="terms_conditions"} 1`,
		`signage_compliance_rule_outcomes_total{outcome="fail",rule_id="bpa-logo"} 1`,
		`signage_signs_created_total{sign_type="entrance"} 1`,
		`signage_http_requests_total{method="POST",route="/api/compliance/check",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
