// Package compliance implements the British Parking Association Code of
// Practice rule engine for car-park signage.
//
// The engine evaluates an assembled sign document against a fixed,
// immutable rulebook and produces a compliance report: an overall
// pass/fail verdict, a percentage score, and per-rule results with
// remediation suggestions. Evaluation is a pure function over the sign
// value; it performs no I/O, holds no state between calls, and is safe to
// invoke concurrently.
//
// Rule categories:
//   - required: a sign is non-compliant if any applicable required rule fails
//   - recommended: contributes to the score only
//   - warning: legibility and visibility checks, score only
//
// Text rules match case-insensitive regular expressions against the
// concatenation of every text element's content, joined by single spaces.
// A rule can therefore be satisfied by fragments spread across unrelated
// elements, or miss semantically correct but differently worded text.
// This imprecision is retained deliberately for compatibility with the
// published rulebook behaviour; tightening it to per-element or structured
// matching would change verdicts on existing signs.
package compliance
