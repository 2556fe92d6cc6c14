package designer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/WispAyr/signage-designer/pkg/compliance"
	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
	"github.com/WispAyr/signage-designer/pkg/template"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := template.NewCatalog(logger, template.BuiltinSource{})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewService(store.NewMemoryStore(), catalog, compliance.NewEngine(nil), nil, logger)
}

func fullMetadata() sign.Metadata {
	return sign.Metadata{
		SiteName:          "Kings Road Car Park",
		CompanyName:       "Local Car Park Management Ltd",
		CompanyNumber:     "12345678",
		HelplineNumber:    "0345 123 4567",
		ParkingCharge:     sign.IntPtr(100),
		ReducedCharge:     sign.IntPtr(60),
		PaymentPeriodDays: 28,
		ReducedPeriodDays: 14,
		HasANPR:           true,
		Website:           "www.localcarparks.co.uk",
	}
}

func TestCreateSignMintsSequentialReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateSign(ctx, CreateSignRequest{
		Site: "krs", TemplateID: "terms-standard", Metadata: fullMetadata(),
	})
	if err != nil {
		t.Fatalf("CreateSign: %v", err)
	}
	if first.Reference != "KRS-TCS-001-v1" {
		t.Errorf("reference = %q, want KRS-TCS-001-v1", first.Reference)
	}
	if first.Type != sign.TypeTermsConditions {
		t.Errorf("type = %q", first.Type)
	}

	second, err := svc.CreateSign(ctx, CreateSignRequest{
		Site: "krs", TemplateID: "terms-standard", Metadata: fullMetadata(),
	})
	if err != nil {
		t.Fatalf("CreateSign: %v", err)
	}
	if second.Reference != "KRS-TCS-002-v1" {
		t.Errorf("second reference = %q, want KRS-TCS-002-v1", second.Reference)
	}

	got, err := svc.GetSign(ctx, "KRS-TCS-001-v1")
	if err != nil {
		t.Fatalf("GetSign: %v", err)
	}
	if got.TemplateID != "terms-standard" {
		t.Errorf("stored templateId = %q", got.TemplateID)
	}
}

func TestCreateSignByType(t *testing.T) {
	svc := newTestService(t)

	sg, err := svc.CreateSign(context.Background(), CreateSignRequest{
		Site: "krs", Type: sign.TypeEntrance, Metadata: fullMetadata(),
	})
	if err != nil {
		t.Fatalf("CreateSign: %v", err)
	}
	if sg.Reference != "KRS-ENT-001-v1" {
		t.Errorf("reference = %q, want KRS-ENT-001-v1", sg.Reference)
	}
}

func TestCreateSignValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   CreateSignRequest
		field string
	}{
		{
			name:  "missing site",
			req:   CreateSignRequest{Type: sign.TypeEntrance},
			field: "site",
		},
		{
			name:  "unknown template",
			req:   CreateSignRequest{Site: "krs", TemplateID: "no-such-template"},
			field: "templateId",
		},
		{
			name:  "unknown type",
			req:   CreateSignRequest{Site: "krs", Type: sign.Type("billboard")},
			field: "type",
		},
		{
			name: "charge over limit",
			req: CreateSignRequest{
				Site: "krs", TemplateID: "terms-standard",
				Metadata: sign.Metadata{ParkingCharge: sign.IntPtr(150)},
			},
			field: "parkingCharge",
		},
		{
			name: "negative reduced charge",
			req: CreateSignRequest{
				Site: "krs", TemplateID: "terms-standard",
				Metadata: sign.Metadata{ReducedCharge: sign.IntPtr(-5)},
			},
			field: "reducedCharge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSign(ctx, tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestReviseSignBumpsVersion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	original, err := svc.CreateSign(ctx, CreateSignRequest{
		Site: "krs", TemplateID: "terms-standard", Metadata: fullMetadata(),
	})
	if err != nil {
		t.Fatalf("CreateSign: %v", err)
	}

	meta := fullMetadata()
	meta.HelplineNumber = "0345 999 8888"
	revised, err := svc.ReviseSign(ctx, original.Reference, meta)
	if err != nil {
		t.Fatalf("ReviseSign: %v", err)
	}
	if revised.Reference != "KRS-TCS-001-v2" {
		t.Errorf("revised reference = %q, want KRS-TCS-001-v2", revised.Reference)
	}

	// The previous version stays retrievable.
	if _, err := svc.GetSign(ctx, original.Reference); err != nil {
		t.Errorf("original version lost: %v", err)
	}

	got, err := svc.GetSign(ctx, "KRS-TCS-001-v2")
	if err != nil {
		t.Fatalf("GetSign revised: %v", err)
	}
	found := false
	for _, el := range got.TextElements() {
		if el.Content == "Helpline: 0345 999 8888" {
			found = true
		}
	}
	if !found {
		t.Error("revised metadata not substituted into elements")
	}
}

func TestReviseSignMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ReviseSign(context.Background(), "KRS-TCS-001-v1", fullMetadata())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCheckComplianceStoredSign(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sg, err := svc.CreateSign(ctx, CreateSignRequest{
		Site: "krs", TemplateID: "terms-standard", Metadata: fullMetadata(),
	})
	if err != nil {
		t.Fatalf("CreateSign: %v", err)
	}

	report, err := svc.CheckCompliance(ctx, sg.Reference)
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	if !report.Compliant {
		for _, r := range report.Results {
			if !r.Passed && r.Category == compliance.CategoryRequired {
				t.Errorf("required rule %s failed: %s", r.RuleID, r.Message)
			}
		}
		t.Fatal("standard terms sign with full metadata should be compliant")
	}
	if report.Score < 90 {
		t.Errorf("score = %d, want >= 90", report.Score)
	}
}

func TestCheckComplianceMissingSign(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CheckCompliance(context.Background(), "KRS-TCS-001-v1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, site := range []string{"aaa", "bbb"} {
		if _, err := svc.CreateSign(ctx, CreateSignRequest{
			Site: site, Type: sign.TypeEntrance, Metadata: fullMetadata(),
		}); err != nil {
			t.Fatalf("CreateSign %s: %v", site, err)
		}
	}

	if err := svc.DeleteSign(ctx, "AAA-ENT-001-v1"); err != nil {
		t.Fatalf("DeleteSign: %v", err)
	}
	signs, err := svc.ListSigns(ctx)
	if err != nil {
		t.Fatalf("ListSigns: %v", err)
	}
	if len(signs) != 1 || signs[0].Reference != "BBB-ENT-001-v1" {
		t.Errorf("unexpected remaining signs: %+v", signs)
	}
}

func TestTemplatesCoversEveryType(t *testing.T) {
	svc := newTestService(t)
	seen := map[sign.Type]bool{}
	for _, tpl := range svc.Templates() {
		seen[tpl.SignType] = true
	}
	for _, typ := range sign.Types() {
		if !seen[typ] {
			t.Errorf("no template for sign type %q", typ)
		}
	}
}
