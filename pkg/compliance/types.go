package compliance

import (
	"github.com/WispAyr/signage-designer/pkg/sign"
)

// Category classifies how a rule contributes to the overall verdict.
type Category string

const (
	// CategoryRequired rules block compliance when they fail.
	CategoryRequired Category = "required"

	// CategoryRecommended rules affect the score but never the verdict.
	CategoryRecommended Category = "recommended"

	// CategoryWarning rules are legibility and visibility checks; score only.
	CategoryWarning Category = "warning"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is a recognised value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRequired, CategoryRecommended, CategoryWarning:
		return true
	}
	return false
}

// Input is the precomputed view of a sign that rule predicates run
// against. Text is the concatenation of all text element contents joined
// by single spaces; predicates match it case-insensitively.
type Input struct {
	Sign *sign.Sign
	Text string
}

// Rule is a single named rulebook entry: an applicability set and a
// predicate over the sign. Rules are immutable configuration data, built
// once per process and shared by every evaluation.
type Rule struct {
	// ID uniquely identifies the rule within the rulebook.
	ID string

	// Name is the human-readable rule name.
	Name string

	// Category determines how the rule contributes to the verdict.
	Category Category

	// AppliesTo lists the sign types the rule applies to. An empty set
	// means the rule applies to every sign type.
	AppliesTo []sign.Type

	// Check reports whether the sign satisfies the rule. Predicates are
	// total: a sign with missing metadata fails the rules that reference
	// the missing data, it never errors.
	Check func(in *Input) bool

	// PassMessage and FailMessage are the human-readable result message
	// for the respective outcome.
	PassMessage string
	FailMessage string

	// Suggestion is the remediation hint attached to a failing result.
	Suggestion string
}

// AppliesToType returns true if the rule applies to signs of type t.
func (r *Rule) AppliesToType(t sign.Type) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, st := range r.AppliesTo {
		if st == t {
			return true
		}
	}
	return false
}

// RuleResult is the outcome of evaluating one rule against one sign.
type RuleResult struct {
	RuleID     string   `json:"ruleId"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Passed     bool     `json:"passed"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary aggregates the per-rule outcomes of a report.
type Summary struct {
	Passed         int `json:"passed"`
	FailedRequired int `json:"failedRequired"`
	Warnings       int `json:"warnings"`
}

// Report is the result of evaluating a sign against the rulebook. Reports
// are ephemeral: every evaluation builds a fresh one and nothing mutates
// it afterwards.
type Report struct {
	// Compliant is true iff every applicable required rule passed.
	Compliant bool `json:"compliant"`

	// Score is round(100 * passed / applicable), half-up.
	Score int `json:"score"`

	// Results holds one entry per applicable rule, in rulebook order.
	Results []RuleResult `json:"results"`

	// Summary counts passed, failed-required and failed-nonrequired rules.
	Summary Summary `json:"summary"`
}
