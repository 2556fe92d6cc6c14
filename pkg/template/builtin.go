package template

import (
	"github.com/WispAyr/signage-designer/pkg/sign"
)

// BuiltinSource serves the compiled-in template catalog: one standard
// layout per sign type. Static data, never mutated.
type BuiltinSource struct{}

// Load implements Source.
func (BuiltinSource) Load() ([]Template, error) {
	return builtinTemplates(), nil
}

func builtinTemplates() []Template {
	return []Template{
		{
			ID:          "entrance-standard",
			Name:        "Standard entrance sign",
			Description: "Entrance sign with header, ANPR disclosure and operator details",
			SignType:    sign.TypeEntrance,
			Elements: []sign.Element{
				{Kind: sign.KindBorder, Content: "standard", Position: sign.Rect{Width: 600, Height: 800}},
				{Kind: sign.KindText, Content: "PARKING REGULATIONS APPLY",
					Style: sign.Style{FontSize: 48, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 20, Width: 560, Height: 80}},
				{Kind: sign.KindText, Content: "This car park is private land. {{siteName}} is managed by {{companyName}}.",
					Style: sign.Style{FontSize: 18}, Position: sign.Rect{X: 20, Y: 120, Width: 560, Height: 60}},
				{Kind: sign.KindText, Content: "ANPR camera technology is in use on this site.",
					Style: sign.Style{FontSize: 16}, Position: sign.Rect{X: 20, Y: 190, Width: 560, Height: 40}},
				{Kind: sign.KindText, Content: "Helpline: {{helplineNumber}}",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 700, Width: 360, Height: 30}},
				{Kind: sign.KindLogo, Content: "BPA Approved Operator", Position: sign.Rect{X: 460, Y: 690, Width: 120, Height: 80}},
			},
		},
		{
			ID:          "terms-standard",
			Name:        "Standard terms and conditions sign",
			Description: "Full terms board with contract, charge, privacy and debt recovery wording",
			SignType:    sign.TypeTermsConditions,
			Elements: []sign.Element{
				{Kind: sign.KindBorder, Content: "standard", Position: sign.Rect{Width: 800, Height: 1200}},
				{Kind: sign.KindText, Content: "TERMS & CONDITIONS APPLY",
					Style: sign.Style{FontSize: 48, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 20, Width: 760, Height: 80}},
				{Kind: sign.KindText, Content: "This car park is private land managed by {{companyName}} on behalf of the landowner.",
					Style: sign.Style{FontSize: 16}, Position: sign.Rect{X: 20, Y: 120, Width: 760, Height: 40}},
				{Kind: sign.KindText, Content: "By entering or remaining on this land you agree to abide by the terms and conditions displayed.",
					Style: sign.Style{FontSize: 16}, Position: sign.Rect{X: 20, Y: 170, Width: 760, Height: 40}},
				{Kind: sign.KindText, Content: "Failure to comply will result in a Parking Charge Notice of £{{parkingCharge}}, reduced to £{{reducedCharge}} if paid within {{reducedPeriodDays}} days.",
					Style: sign.Style{FontSize: 16}, Position: sign.Rect{X: 20, Y: 220, Width: 760, Height: 60}},
				{Kind: sign.KindText, Content: "ANPR camera technology is in use. Personal data is processed for parking management; see our privacy notice at {{website}}.",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 290, Width: 760, Height: 60}},
				{Kind: sign.KindText, Content: "Non-payment will result in debt recovery action and additional collection fees.",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 360, Width: 760, Height: 40}},
				{Kind: sign.KindText, Content: "Vehicles are left entirely at the owner's risk.",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 410, Width: 760, Height: 30}},
				{Kind: sign.KindText, Content: "{{companyName}}. Company registration no: {{companyNumber}}. Registered in England.",
					Style: sign.Style{FontSize: 12}, Position: sign.Rect{X: 20, Y: 1100, Width: 560, Height: 30}},
				{Kind: sign.KindText, Content: "Helpline: {{helplineNumber}}",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 1140, Width: 360, Height: 30}},
				{Kind: sign.KindLogo, Content: "BPA Approved Operator", Position: sign.Rect{X: 640, Y: 1080, Width: 140, Height: 100}},
			},
		},
		{
			ID:          "tariff-standard",
			Name:        "Standard tariff board",
			Description: "Tariff board with header and charge table",
			SignType:    sign.TypeTariff,
			Elements: []sign.Element{
				{Kind: sign.KindBorder, Content: "standard", Position: sign.Rect{Width: 600, Height: 900}},
				{Kind: sign.KindText, Content: "PARKING REGULATIONS APPLY",
					Style: sign.Style{FontSize: 48, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 20, Width: 560, Height: 80}},
				{Kind: sign.KindText, Content: "Tariff for {{siteName}}",
					Style: sign.Style{FontSize: 24}, Position: sign.Rect{X: 20, Y: 120, Width: 560, Height: 40}},
				{Kind: sign.KindText, Content: "Pay at machine or via the app at {{website}}",
					Style: sign.Style{FontSize: 14}, Position: sign.Rect{X: 20, Y: 800, Width: 560, Height: 30}},
			},
		},
		{
			ID:          "disabled-standard",
			Name:        "Accessible bay sign",
			SignType:    sign.TypeDisabled,
			Elements: []sign.Element{
				{Kind: sign.KindBorder, Content: "standard", Position: sign.Rect{Width: 450, Height: 600}},
				{Kind: sign.KindIcon, Content: "wheelchair", Position: sign.Rect{X: 150, Y: 60, Width: 150, Height: 150}},
				{Kind: sign.KindText, Content: "Blue Badge holders only",
					Style: sign.Style{FontSize: 28, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 240, Width: 410, Height: 60}},
				{Kind: sign.KindText, Content: "Badge must be clearly displayed at all times",
					Style: sign.Style{FontSize: 16, Alignment: "center"}, Position: sign.Rect{X: 20, Y: 310, Width: 410, Height: 40}},
			},
		},
		{
			ID:          "ev-standard",
			Name:        "EV charging bay sign",
			SignType:    sign.TypeEVCharging,
			Elements: []sign.Element{
				{Kind: sign.KindBorder, Content: "standard", Position: sign.Rect{Width: 450, Height: 600}},
				{Kind: sign.KindIcon, Content: "ev-plug", Position: sign.Rect{X: 150, Y: 60, Width: 150, Height: 150}},
				{Kind: sign.KindText, Content: "Electric vehicle charging only",
					Style: sign.Style{FontSize: 28, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 240, Width: 410, Height: 60}},
				{Kind: sign.KindText, Content: "Bay in use only while actively charging",
					Style: sign.Style{FontSize: 16, Alignment: "center"}, Position: sign.Rect{X: 20, Y: 310, Width: 410, Height: 40}},
			},
		},
		{
			ID:       "internal-standard",
			Name:     "Internal sign",
			SignType: sign.TypeInternal,
			Elements: []sign.Element{
				{Kind: sign.KindText, Content: "{{siteName}}",
					Style: sign.Style{FontSize: 32, FontWeight: "bold", Alignment: "center"},
					Position: sign.Rect{X: 20, Y: 20, Width: 410, Height: 60}},
			},
		},
		{
			ID:       "wayfinding-standard",
			Name:     "Wayfinding sign",
			SignType: sign.TypeWayfinding,
			Elements: []sign.Element{
				{Kind: sign.KindIcon, Content: "arrow-right", Position: sign.Rect{X: 20, Y: 20, Width: 80, Height: 80}},
				{Kind: sign.KindText, Content: "Exit",
					Style: sign.Style{FontSize: 32, FontWeight: "bold"},
					Position: sign.Rect{X: 120, Y: 30, Width: 300, Height: 60}},
			},
		},
	}
}
