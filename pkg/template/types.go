// Package template provides the sign template catalog and the
// instantiation step that turns a template plus operator metadata into a
// concrete sign document.
//
// Placeholders in template element content use the {{fieldName}} form and
// are substituted by literal string replacement against an explicit
// field→value table. There is no escaping and no expression language:
// placeholders with no corresponding value are left in the output
// verbatim, matching the original designer's behaviour.
package template

import (
	"github.com/WispAyr/signage-designer/pkg/sign"
)

// Template is a reusable sign layout whose element content may contain
// {{field}} placeholders.
type Template struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	SignType    sign.Type      `json:"signType" yaml:"sign_type"`
	Elements    []sign.Element `json:"elements" yaml:"elements"`
}

// Source provides templates to the catalog.
type Source interface {
	// Load returns all templates from the source.
	Load() ([]Template, error)
}
