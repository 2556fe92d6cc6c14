package compliance

import (
	"math"
	"strings"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// Engine evaluates signs against a rulebook.
type Engine interface {
	// Evaluate runs every applicable rule against the sign and returns a
	// fresh report. It never fails: malformed signs simply fail the rules
	// that reference the missing data.
	Evaluate(s *sign.Sign) *Report
}

// RulebookEngine is the standard Engine implementation over an immutable
// rule catalog. Both the HTTP API and the stdio tool server share one
// instance, so the two transports can never drift apart in behaviour.
type RulebookEngine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rulebook. The engine takes
// ownership of the slice; callers must not mutate it afterwards. Passing
// nil uses the standard BPA rulebook.
func NewEngine(rules []Rule) *RulebookEngine {
	if rules == nil {
		rules = Rulebook()
	}
	return &RulebookEngine{rules: rules}
}

// Rules returns the engine's rulebook in catalog order.
func (e *RulebookEngine) Rules() []Rule {
	return e.rules
}

// Evaluate implements Engine.
func (e *RulebookEngine) Evaluate(s *sign.Sign) *Report {
	in := &Input{
		Sign: s,
		Text: JoinText(s),
	}

	report := &Report{Compliant: true}

	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.AppliesToType(s.Type) {
			continue
		}

		passed := rule.Check(in)

		result := RuleResult{
			RuleID:   rule.ID,
			Name:     rule.Name,
			Category: rule.Category,
			Passed:   passed,
		}
		if passed {
			result.Message = rule.PassMessage
			report.Summary.Passed++
		} else {
			result.Message = rule.FailMessage
			result.Suggestion = rule.Suggestion
			if rule.Category == CategoryRequired {
				report.Compliant = false
				report.Summary.FailedRequired++
			} else {
				report.Summary.Warnings++
			}
		}
		report.Results = append(report.Results, result)
	}

	report.Score = score(report.Summary.Passed, len(report.Results))
	return report
}

// JoinText concatenates the content of every text element, joined by
// single spaces. This is the canonical input for all text rules; see the
// package doc for why the join is deliberately naive.
func JoinText(s *sign.Sign) string {
	var parts []string
	for _, el := range s.Elements {
		if el.Kind == sign.KindText {
			parts = append(parts, el.Content)
		}
	}
	return strings.Join(parts, " ")
}

// score is round-half-up of 100*passed/total. A sign with no applicable
// rules scores 100: vacuously compliant.
func score(passed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Floor(100*float64(passed)/float64(total) + 0.5))
}
