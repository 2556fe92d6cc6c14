// Package sign defines the core domain types for printable car-park
// signage: the sign document itself, its typed content elements, and
// operator-supplied metadata. These types are the input to the
// compliance engine and the unit persisted by the sign store.
package sign

import "time"

// Type categorises a sign by its regulatory function. The set is closed:
// a sign's type is fixed once its reference has been minted, and changing
// type means creating a new sign.
type Type string

const (
	// TypeEntrance is the sign displayed at the car park entrance.
	TypeEntrance Type = "entrance"

	// TypeTermsConditions is the full terms and conditions sign.
	TypeTermsConditions Type = "terms_conditions"

	// TypeTariff is the tariff board listing parking charges.
	TypeTariff Type = "tariff"

	// TypeDisabled is the accessible-bay signage.
	TypeDisabled Type = "disabled"

	// TypeEVCharging is the electric vehicle charging bay signage.
	TypeEVCharging Type = "ev_charging"

	// TypeInternal is internal directional or informational signage.
	TypeInternal Type = "internal"

	// TypeWayfinding is wayfinding signage.
	TypeWayfinding Type = "wayfinding"
)

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the type is a recognised value.
func (t Type) IsValid() bool {
	switch t {
	case TypeEntrance, TypeTermsConditions, TypeTariff, TypeDisabled,
		TypeEVCharging, TypeInternal, TypeWayfinding:
		return true
	}
	return false
}

// Types returns all recognised sign types in declaration order.
func Types() []Type {
	return []Type{
		TypeEntrance, TypeTermsConditions, TypeTariff, TypeDisabled,
		TypeEVCharging, TypeInternal, TypeWayfinding,
	}
}

// ElementKind identifies what a content element renders as.
type ElementKind string

const (
	KindText   ElementKind = "text"
	KindImage  ElementKind = "image"
	KindQR     ElementKind = "qr"
	KindLogo   ElementKind = "logo"
	KindIcon   ElementKind = "icon"
	KindBorder ElementKind = "border"
)

// String returns the string representation of the kind.
func (k ElementKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a recognised value.
func (k ElementKind) IsValid() bool {
	switch k {
	case KindText, KindImage, KindQR, KindLogo, KindIcon, KindBorder:
		return true
	}
	return false
}

// Style describes how an element is rendered. The compliance engine only
// reads FontSize (for legibility warnings); everything else is consumed
// by the renderer, which is outside this service.
type Style struct {
	FontSize   float64 `json:"fontSize,omitempty" yaml:"font_size,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty" yaml:"font_weight,omitempty"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
	Background string  `json:"background,omitempty" yaml:"background,omitempty"`
	Alignment  string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}

// Rect is an element's position and size on the sign face, in millimetres
// from the top-left corner.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Element is a single typed content item on a sign. Only Kind and Content
// are consumed by the compliance engine; Style and Position matter only
// for layout.
type Element struct {
	ID       string      `json:"id" yaml:"id"`
	Kind     ElementKind `json:"kind" yaml:"kind"`
	Content  string      `json:"content" yaml:"content"`
	Style    Style       `json:"style,omitempty" yaml:"style,omitempty"`
	Position Rect        `json:"position,omitempty" yaml:"position,omitempty"`
}

// Metadata holds the operator-supplied fields a sign is assembled from.
// Charge amounts are whole pounds and never negative; the pointer fields
// distinguish "not provided" from zero, which the charge-limit rules rely on.
type Metadata struct {
	SiteName           string `json:"siteName,omitempty" yaml:"site_name,omitempty"`
	CompanyName        string `json:"companyName,omitempty" yaml:"company_name,omitempty"`
	CompanyNumber      string `json:"companyNumber,omitempty" yaml:"company_number,omitempty"`
	HelplineNumber     string `json:"helplineNumber,omitempty" yaml:"helpline_number,omitempty"`
	ParkingCharge      *int   `json:"parkingCharge,omitempty" yaml:"parking_charge,omitempty"`
	ReducedCharge      *int   `json:"reducedCharge,omitempty" yaml:"reduced_charge,omitempty"`
	PaymentPeriodDays  int    `json:"paymentPeriodDays,omitempty" yaml:"payment_period_days,omitempty"`
	ReducedPeriodDays  int    `json:"reducedPeriodDays,omitempty" yaml:"reduced_period_days,omitempty"`
	HasANPR            bool   `json:"hasAnpr" yaml:"has_anpr"`
	Website            string `json:"website,omitempty" yaml:"website,omitempty"`
}

// Sign is a printable signage document: an ordered set of content elements
// plus the metadata it was assembled from. A sign is immutable once stored;
// a content revision produces a new sign with a bumped reference version.
type Sign struct {
	Reference  string    `json:"reference" yaml:"reference"`
	Type       Type      `json:"type" yaml:"type"`
	Site       string    `json:"site,omitempty" yaml:"site,omitempty"`
	TemplateID string    `json:"templateId,omitempty" yaml:"template_id,omitempty"`
	Metadata   Metadata  `json:"metadata" yaml:"metadata"`
	Elements   []Element `json:"elements" yaml:"elements"`
	CreatedAt  time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// TextElements returns the sign's text elements in document order.
func (s *Sign) TextElements() []Element {
	var out []Element
	for _, el := range s.Elements {
		if el.Kind == KindText {
			out = append(out, el)
		}
	}
	return out
}

// HasElementKind returns true if any element has the given kind.
func (s *Sign) HasElementKind(kind ElementKind) bool {
	for _, el := range s.Elements {
		if el.Kind == kind {
			return true
		}
	}
	return false
}

// IntPtr returns a pointer to v. Convenience for building Metadata literals.
func IntPtr(v int) *int {
	return &v
}
