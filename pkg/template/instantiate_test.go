package template

import (
	"strings"
	"testing"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

func TestSubstitute(t *testing.T) {
	fields := map[string]string{
		"companyName":   "Local Car Park Management Ltd",
		"parkingCharge": "100",
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "single placeholder",
			content: "Managed by {{companyName}}",
			want:    "Managed by Local Car Park Management Ltd",
		},
		{
			name:    "repeated placeholder",
			content: "{{parkingCharge}} then {{parkingCharge}}",
			want:    "100 then 100",
		},
		{
			name:    "unknown placeholder left verbatim",
			content: "Hello {{mysteryField}}",
			want:    "Hello {{mysteryField}}",
		},
		{
			name:    "no placeholders",
			content: "plain text",
			want:    "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.content, fields); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestFields_DefaultsAndOverrides(t *testing.T) {
	fields := Fields(sign.Metadata{
		CompanyName:   "Acme Parking Ltd",
		ParkingCharge: sign.IntPtr(85),
	})

	if fields["companyName"] != "Acme Parking Ltd" {
		t.Errorf("companyName = %q, want override", fields["companyName"])
	}
	if fields["parkingCharge"] != "85" {
		t.Errorf("parkingCharge = %q, want \"85\"", fields["parkingCharge"])
	}
	// Unprovided fields keep their documented defaults.
	if fields["reducedCharge"] != "60" {
		t.Errorf("reducedCharge default = %q, want \"60\"", fields["reducedCharge"])
	}
	if fields["helplineNumber"] != "0345 000 0000" {
		t.Errorf("helplineNumber default = %q", fields["helplineNumber"])
	}
}

func TestInstantiate(t *testing.T) {
	tpl := Template{
		ID:       "terms-standard",
		SignType: sign.TypeTermsConditions,
		Elements: []sign.Element{
			{Kind: sign.KindText, Content: "Managed by {{companyName}}. Charge £{{parkingCharge}}."},
			{Kind: sign.KindLogo, Content: "BPA Approved Operator"},
		},
	}
	meta := sign.Metadata{
		CompanyName:   "Acme Parking Ltd",
		ParkingCharge: sign.IntPtr(90),
	}

	s := Instantiate(tpl, meta, "KRS", "KRS-TCS-001-v1")

	if s.Reference != "KRS-TCS-001-v1" {
		t.Errorf("reference = %q", s.Reference)
	}
	if s.Type != sign.TypeTermsConditions {
		t.Errorf("type = %q", s.Type)
	}
	if s.TemplateID != "terms-standard" {
		t.Errorf("templateId = %q", s.TemplateID)
	}
	if len(s.Elements) != 2 {
		t.Fatalf("element count = %d, want 2", len(s.Elements))
	}
	if got := s.Elements[0].Content; got != "Managed by Acme Parking Ltd. Charge £90." {
		t.Errorf("substituted content = %q", got)
	}
	if s.Elements[0].ID == "" || s.Elements[1].ID == "" {
		t.Error("instantiated elements must get fresh identifiers")
	}
	if s.Elements[0].ID == s.Elements[1].ID {
		t.Error("element identifiers must be unique")
	}
	// The template itself must not have been mutated.
	if strings.Contains(tpl.Elements[0].Content, "Acme") || tpl.Elements[0].ID != "" {
		t.Error("Instantiate mutated the template")
	}
}

func TestCatalog_BuiltinCoversEveryType(t *testing.T) {
	catalog, err := NewCatalog(nil, BuiltinSource{})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	for _, st := range sign.Types() {
		if len(catalog.ForType(st)) == 0 {
			t.Errorf("no built-in template for sign type %q", st)
		}
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	catalog, err := NewCatalog(nil, BuiltinSource{})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := catalog.Get("no-such-template"); err == nil {
		t.Error("expected error for unknown template id")
	}
}
