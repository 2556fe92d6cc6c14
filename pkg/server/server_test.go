package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/WispAyr/signage-designer/pkg/compliance"
	"github.com/WispAyr/signage-designer/pkg/config"
	"github.com/WispAyr/signage-designer/pkg/designer"
	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
	"github.com/WispAyr/signage-designer/pkg/telemetry/metrics"
	"github.com/WispAyr/signage-designer/pkg/template"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := template.NewCatalog(logger, template.BuiltinSource{})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	collector := metrics.NewCollector(metrics.Config{Enabled: true, Namespace: "signage_test"})
	svc := designer.NewService(store.NewMemoryStore(), catalog, compliance.NewEngine(nil), collector, logger)
	cfg := config.DefaultConfig()
	return NewServer(&cfg.Server, &cfg.Telemetry.Metrics, svc, collector, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createTestSign(t *testing.T, handler http.Handler) sign.Sign {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/signs", designer.CreateSignRequest{
		Site:       "krs",
		TemplateID: "terms-standard",
		Metadata: sign.Metadata{
			CompanyName:    "Local Car Park Management Ltd",
			CompanyNumber:  "12345678",
			HelplineNumber: "0345 123 4567",
			ParkingCharge:  sign.IntPtr(100),
			ReducedCharge:  sign.IntPtr(60),
			HasANPR:        true,
			Website:        "www.localcarparks.co.uk",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sign: status %d: %s", rec.Code, rec.Body.String())
	}
	var created sign.Sign
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created sign: %v", err)
	}
	return created
}

func TestCreateAndGetSign(t *testing.T) {
	handler := newTestServer(t).Handler()

	created := createTestSign(t, handler)
	if created.Reference != "KRS-TCS-001-v1" {
		t.Errorf("reference = %q, want KRS-TCS-001-v1", created.Reference)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/signs/"+created.Reference, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get sign: status %d", rec.Code)
	}
	var got sign.Sign
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Reference != created.Reference {
		t.Errorf("got reference %q", got.Reference)
	}
}

func TestCreateSignValidationError(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/signs", designer.CreateSignRequest{
		Site:       "krs",
		TemplateID: "terms-standard",
		Metadata:   sign.Metadata{ParkingCharge: sign.IntPtr(500)},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error struct {
			Message string `json:"message"`
			Field   string `json:"field"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Field != "parkingCharge" {
		t.Errorf("field = %q, want parkingCharge", resp.Error.Field)
	}
}

func TestGetMissingSignReturns404(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/signs/KRS-TCS-001-v1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDeleteSign(t *testing.T) {
	handler := newTestServer(t).Handler()
	created := createTestSign(t, handler)

	rec := doJSON(t, handler, http.MethodDelete, "/api/signs/"+created.Reference, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/signs/"+created.Reference, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("after delete: status %d, want 404", rec.Code)
	}
}

func TestReviseSign(t *testing.T) {
	handler := newTestServer(t).Handler()
	created := createTestSign(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/signs/"+created.Reference+"/revise", map[string]any{
		"metadata": sign.Metadata{
			CompanyName:    "Local Car Park Management Ltd",
			HelplineNumber: "0345 999 8888",
			ParkingCharge:  sign.IntPtr(90),
			ReducedCharge:  sign.IntPtr(50),
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("revise: status %d: %s", rec.Code, rec.Body.String())
	}
	var revised sign.Sign
	if err := json.Unmarshal(rec.Body.Bytes(), &revised); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if revised.Reference != "KRS-TCS-001-v2" {
		t.Errorf("revised reference = %q, want KRS-TCS-001-v2", revised.Reference)
	}
}

func TestStoredComplianceCheck(t *testing.T) {
	handler := newTestServer(t).Handler()
	created := createTestSign(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/signs/"+created.Reference+"/compliance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("compliance: status %d", rec.Code)
	}
	var report compliance.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.Compliant {
		t.Errorf("standard terms sign should be compliant: %+v", report.Summary)
	}
}

func TestInlineComplianceCheck(t *testing.T) {
	handler := newTestServer(t).Handler()

	doc := sign.Sign{
		Type: sign.TypeEntrance,
		Elements: []sign.Element{
			{Kind: sign.KindText, Content: "Welcome"},
		},
	}
	rec := doJSON(t, handler, http.MethodPost, "/api/compliance/check", doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("inline check: status %d: %s", rec.Code, rec.Body.String())
	}
	var report compliance.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Compliant {
		t.Error("bare sign should not be compliant")
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/compliance/check", sign.Sign{Type: sign.Type("billboard")})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown type: status %d, want 400", rec.Code)
	}
}

func TestListTemplates(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("templates: status %d", rec.Code)
	}
	var templates []template.Template
	if err := json.Unmarshal(rec.Body.Bytes(), &templates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) == 0 {
		t.Error("expected built-in templates")
	}
}

func TestHealthAndReady(t *testing.T) {
	handler := newTestServer(t).Handler()

	for _, path := range []string{"/health", "/ready"} {
		rec := doJSON(t, handler, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rec.Code)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("request id = %q, want client-supplied-id", got)
	}

	// A fresh ID is generated when the client sends none.
	rec = doJSON(t, handler, http.MethodGet, "/health", nil)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected generated request id")
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	handler := newTestServer(t).Handler()
	createTestSign(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "signage_test_http_requests_total") {
		t.Errorf("metrics output missing request counter:\n%s", truncate(body, 400))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
