package compliance

import (
	"regexp"
	"strings"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// BPA Code of Practice limits and thresholds.
const (
	// MaxParkingCharge is the maximum parking charge in pounds.
	MaxParkingCharge = 100

	// MaxReducedCharge is the maximum reduced (early payment) charge in pounds.
	MaxReducedCharge = 60

	// ReducedPaymentWindowDays is the early payment discount window.
	ReducedPaymentWindowDays = 14

	// PaymentWindowDays is the total payment window before escalation.
	PaymentWindowDays = 28

	// DebtRecoveryFee is the standard debt recovery fee in pounds.
	DebtRecoveryFee = 70

	// MinLegibleFontSize is the smallest legible font size in points.
	MinLegibleFontSize = 10

	// MinHeaderFontSize is the minimum header font size in points.
	MinHeaderFontSize = 48

	// MinBodyFontSize is the minimum body text font size in points.
	MinBodyFontSize = 14
)

// Text rule patterns. All match case-insensitively against the joined text
// of the sign (see package doc for the concatenation convention).
var (
	reHeaderStatement = regexp.MustCompile(`(?i)parking regulations? apply|terms *&? *conditions? apply|private land|private property`)
	rePrivateLand     = regexp.MustCompile(`(?i)private (land|property)|privately owned|this car park is private`)
	reCompanyDetails  = regexp.MustCompile(`(?i)company reg(istration)? *(no|number)?:? *\d+|registered in england`)
	reHelpline        = regexp.MustCompile(`(?i)helpline:?\s*[\d\s-]+|contact:?\s*[\d\s-]+|\d{4}\s*\d{3}\s*\d{4}`)
	reANPR            = regexp.MustCompile(`(?i)anpr|automatic number plate|camera (technology|monitoring|surveillance)|monitored by .*camera`)
	rePaymentPeriod   = regexp.MustCompile(`(?i)if paid within \d+ days|reduced to.*if paid|\d+ days`)
	reContractClause  = regexp.MustCompile(`(?i)by entering (or remaining )?on this land|you agree to abide by|terms and conditions (of )?signs distributed`)
	rePrivacyNotice   = regexp.MustCompile(`(?i)personal data|privacy notice|data protection|photographs? of you`)
	reDebtRecovery    = regexp.MustCompile(`(?i)debt recovery|non-?payment will result|collection fees?`)
	reVehiclesAtRisk  = regexp.MustCompile(`(?i)vehicles? (are )?(left|parked) (entirely )?at (the )?owner'?s? risk|at your own risk|no liability`)
	reWebsite         = regexp.MustCompile(`(?i)www\.[a-z0-9.-]+|https?://\S+|[a-z0-9-]+\.(com|co\.uk|org|uk)`)
)

// hasLogoContaining reports whether the sign carries a logo element whose
// content contains the given fragment, case-insensitively.
func hasLogoContaining(s *sign.Sign, fragment string) bool {
	for _, el := range s.Elements {
		if el.Kind == sign.KindLogo && strings.Contains(strings.ToLower(el.Content), fragment) {
			return true
		}
	}
	return false
}

// entranceAndTerms is the applicability set shared by most required rules.
var entranceAndTerms = []sign.Type{sign.TypeEntrance, sign.TypeTermsConditions}

// Rulebook returns the fixed BPA rulebook in catalog order: required rules
// first, then recommended, then warnings. The returned slice is freshly
// allocated on each call so callers cannot disturb each other, but the
// rules themselves are process-wide constants in behaviour.
func Rulebook() []Rule {
	return []Rule{
		// Required.
		{
			ID:       "header-statement",
			Name:     "Header statement",
			Category: CategoryRequired,
			AppliesTo: []sign.Type{
				sign.TypeEntrance, sign.TypeTermsConditions, sign.TypeTariff,
			},
			Check: func(in *Input) bool {
				return reHeaderStatement.MatchString(in.Text)
			},
			PassMessage: "Sign carries a recognised header statement",
			FailMessage: "No header statement found (e.g. \"Parking Regulations Apply\")",
			Suggestion:  "Add a prominent header such as \"Parking Regulations Apply\" or \"Terms & Conditions Apply\"",
		},
		{
			ID:        "private-land-notice",
			Name:      "Private land notice",
			Category:  CategoryRequired,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				return rePrivateLand.MatchString(in.Text)
			},
			PassMessage: "Private land status is stated",
			FailMessage: "Sign does not state that the car park is private land",
			Suggestion:  "State clearly that the site is private land or privately owned",
		},
		{
			ID:        "bpa-logo",
			Name:      "BPA logo",
			Category:  CategoryRequired,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				return hasLogoContaining(in.Sign, "bpa")
			},
			PassMessage: "BPA logo is present",
			FailMessage: "BPA Approved Operator logo is missing",
			Suggestion:  "Add the BPA Approved Operator Scheme logo element",
		},
		{
			ID:        "company-details",
			Name:      "Company details",
			Category:  CategoryRequired,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				if reCompanyDetails.MatchString(in.Text) {
					return true
				}
				name := in.Sign.Metadata.CompanyName
				if name == "" {
					return false
				}
				for _, el := range in.Sign.TextElements() {
					if strings.Contains(el.Content, name) {
						return true
					}
				}
				return false
			},
			PassMessage: "Operating company details are shown",
			FailMessage: "Company name and registration details are missing",
			Suggestion:  "Include the operator's company name and registration number",
		},
		{
			ID:        "helpline-number",
			Name:      "Helpline number",
			Category:  CategoryRequired,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				return reHelpline.MatchString(in.Text)
			},
			PassMessage: "A helpline or contact number is displayed",
			FailMessage: "No helpline or contact telephone number found",
			Suggestion:  "Add a helpline number, e.g. \"Helpline: 0345 000 0000\"",
		},
		{
			ID:        "anpr-notice",
			Name:      "ANPR notice",
			Category:  CategoryRequired,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				// Sites without ANPR have nothing to disclose.
				if !in.Sign.Metadata.HasANPR {
					return true
				}
				return reANPR.MatchString(in.Text)
			},
			PassMessage: "Camera enforcement is disclosed",
			FailMessage: "Site uses ANPR but the sign does not disclose camera enforcement",
			Suggestion:  "State that ANPR / automatic number plate recognition cameras are in use",
		},
		{
			ID:        "parking-charge-amount",
			Name:      "Parking charge amount",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				charge := in.Sign.Metadata.ParkingCharge
				return charge != nil && *charge <= MaxParkingCharge
			},
			PassMessage: "Parking charge is within the BPA limit",
			FailMessage: "Parking charge is missing or exceeds the £100 limit",
			Suggestion:  "Set a parking charge of no more than £100",
		},
		{
			ID:        "reduced-charge-amount",
			Name:      "Reduced charge amount",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				charge := in.Sign.Metadata.ReducedCharge
				return charge != nil && *charge <= MaxReducedCharge
			},
			PassMessage: "Reduced charge is within the BPA limit",
			FailMessage: "Reduced charge is missing or exceeds the £60 limit",
			Suggestion:  "Set a reduced (early payment) charge of no more than £60",
		},
		{
			ID:        "payment-period",
			Name:      "Payment period",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				return rePaymentPeriod.MatchString(in.Text)
			},
			PassMessage: "Payment period is stated",
			FailMessage: "Payment period wording not found",
			Suggestion:  "State the payment window, e.g. \"reduced to £60 if paid within 14 days\"",
		},
		{
			ID:        "contract-clause",
			Name:      "Contract clause",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				return reContractClause.MatchString(in.Text)
			},
			PassMessage: "Contractual acceptance wording is present",
			FailMessage: "Contract formation wording not found",
			Suggestion:  "Add wording such as \"By entering or remaining on this land you agree to the terms\"",
		},
		{
			ID:        "privacy-notice",
			Name:      "Privacy notice",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				return rePrivacyNotice.MatchString(in.Text)
			},
			PassMessage: "Data protection wording is present",
			FailMessage: "No personal data / privacy wording found",
			Suggestion:  "Explain that personal data may be collected and reference the privacy notice",
		},
		{
			ID:        "debt-recovery-notice",
			Name:      "Debt recovery notice",
			Category:  CategoryRequired,
			AppliesTo: []sign.Type{sign.TypeTermsConditions},
			Check: func(in *Input) bool {
				return reDebtRecovery.MatchString(in.Text)
			},
			PassMessage: "Debt recovery consequences are stated",
			FailMessage: "No debt recovery wording found",
			Suggestion:  "State that non-payment will result in debt recovery and additional fees",
		},

		// Recommended.
		{
			ID:        "vehicles-at-risk",
			Name:      "Vehicles left at owner's risk",
			Category:  CategoryRecommended,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				return reVehiclesAtRisk.MatchString(in.Text)
			},
			PassMessage: "Owner's risk disclaimer is present",
			FailMessage: "No owner's risk disclaimer found",
			Suggestion:  "Consider adding \"Vehicles are left entirely at the owner's risk\"",
		},
		{
			ID:        "company-logo",
			Name:      "Company logo",
			Category:  CategoryRecommended,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				for _, el := range in.Sign.Elements {
					if el.Kind == sign.KindLogo && !strings.Contains(strings.ToLower(el.Content), "bpa") {
						return true
					}
				}
				return false
			},
			PassMessage: "Operator logo is present",
			FailMessage: "No operator logo on the sign",
			Suggestion:  "Consider adding the operating company's logo",
		},
		{
			ID:        "website-reference",
			Name:      "Website reference",
			Category:  CategoryRecommended,
			AppliesTo: entranceAndTerms,
			Check: func(in *Input) bool {
				return reWebsite.MatchString(in.Text)
			},
			PassMessage: "A website address is displayed",
			FailMessage: "No website address found",
			Suggestion:  "Consider adding the operator website for appeals and payments",
		},

		// Warnings, applicable to every sign type.
		{
			ID:       "font-size-legibility",
			Name:     "Font size legibility",
			Category: CategoryWarning,
			Check: func(in *Input) bool {
				for _, el := range in.Sign.TextElements() {
					// Unset font sizes are a rendering default, not a breach.
					if el.Style.FontSize > 0 && el.Style.FontSize < MinLegibleFontSize {
						return false
					}
				}
				return true
			},
			PassMessage: "All text is at or above the legibility threshold",
			FailMessage: "Some text is below the 10pt legibility threshold",
			Suggestion:  "Increase small text to at least 10pt",
		},
		{
			ID:       "border-visibility",
			Name:     "Border visibility",
			Category: CategoryWarning,
			Check: func(in *Input) bool {
				return in.Sign.HasElementKind(sign.KindBorder)
			},
			PassMessage: "Sign has a visible border",
			FailMessage: "Sign has no border element",
			Suggestion:  "Add a contrasting border to improve edge visibility",
		},
	}
}
