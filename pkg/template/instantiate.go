package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// Defaults are the substitution values used when the operator metadata
// does not provide a field. They mirror the standard BPA limits so a bare
// template still produces plausible wording.
var Defaults = map[string]string{
	"siteName":           "this site",
	"companyName":        "the operator",
	"companyNumber":      "00000000",
	"helplineNumber":     "0345 000 0000",
	"parkingCharge":      "100",
	"reducedCharge":      "60",
	"paymentPeriodDays":  "28",
	"reducedPeriodDays":  "14",
	"website":            "",
}

// Fields builds the placeholder substitution table for a metadata record:
// defaults first, then every provided metadata value on top.
func Fields(meta sign.Metadata) map[string]string {
	fields := make(map[string]string, len(Defaults)+2)
	for k, v := range Defaults {
		fields[k] = v
	}

	setIfPresent := func(key, val string) {
		if val != "" {
			fields[key] = val
		}
	}
	setIfPresent("siteName", meta.SiteName)
	setIfPresent("companyName", meta.CompanyName)
	setIfPresent("companyNumber", meta.CompanyNumber)
	setIfPresent("helplineNumber", meta.HelplineNumber)
	setIfPresent("website", meta.Website)

	if meta.ParkingCharge != nil {
		fields["parkingCharge"] = strconv.Itoa(*meta.ParkingCharge)
	}
	if meta.ReducedCharge != nil {
		fields["reducedCharge"] = strconv.Itoa(*meta.ReducedCharge)
	}
	if meta.PaymentPeriodDays > 0 {
		fields["paymentPeriodDays"] = strconv.Itoa(meta.PaymentPeriodDays)
	}
	if meta.ReducedPeriodDays > 0 {
		fields["reducedPeriodDays"] = strconv.Itoa(meta.ReducedPeriodDays)
	}
	return fields
}

// Substitute performs literal {{field}} replacement on a content string.
// Unknown placeholders are left verbatim.
func Substitute(content string, fields map[string]string) string {
	for k, v := range fields {
		content = strings.ReplaceAll(content, "{{"+k+"}}", v)
	}
	return content
}

// Instantiate produces a concrete sign from a template and metadata. Each
// element receives a fresh identifier; the computed reference and site are
// attached by the caller via the arguments.
func Instantiate(tpl Template, meta sign.Metadata, site, reference string) *sign.Sign {
	fields := Fields(meta)

	elements := make([]sign.Element, len(tpl.Elements))
	for i, el := range tpl.Elements {
		el.ID = uuid.NewString()
		el.Content = Substitute(el.Content, fields)
		elements[i] = el
	}

	return &sign.Sign{
		Reference:  reference,
		Type:       tpl.SignType,
		Site:       site,
		TemplateID: tpl.ID,
		Metadata:   meta,
		Elements:   elements,
		CreatedAt:  time.Now().UTC(),
	}
}
