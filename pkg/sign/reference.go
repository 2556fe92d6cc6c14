package sign

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// typeCodes maps each sign type to its three-letter reference code.
// Unknown types degrade to "GEN" rather than erroring.
var typeCodes = map[Type]string{
	TypeEntrance:        "ENT",
	TypeTermsConditions: "TCS",
	TypeTariff:          "TAR",
	TypeDisabled:        "DIS",
	TypeEVCharging:      "EVC",
	TypeInternal:        "INT",
	TypeWayfinding:      "WAY",
}

// GenericTypeCode is the reference code used for unrecognised sign types.
const GenericTypeCode = "GEN"

// TypeCode returns the three-letter reference code for a sign type.
func TypeCode(t Type) string {
	if code, ok := typeCodes[t]; ok {
		return code
	}
	return GenericTypeCode
}

// MakeReference builds a sign reference of the form SITE-CODE-SEQ-vVERSION,
// e.g. "KRS-ENT-001-v1". The site code is uppercased and the sequence is
// zero-padded to three digits. The function is total: an unknown type maps
// to the generic code instead of failing.
func MakeReference(site string, t Type, sequence, version int) string {
	return fmt.Sprintf("%s-%s-%03d-v%d", strings.ToUpper(site), TypeCode(t), sequence, version)
}

// Reference is the parsed form of a sign reference string.
type Reference struct {
	Site     string
	TypeCode string
	Sequence int
	Version  int
}

// Lineage returns the version-independent part of the reference,
// e.g. "KRS-ENT-001". All revisions of one sign share a lineage.
func (r Reference) Lineage() string {
	return fmt.Sprintf("%s-%s-%03d", r.Site, r.TypeCode, r.Sequence)
}

// String formats the reference back into its canonical form.
func (r Reference) String() string {
	return fmt.Sprintf("%s-v%d", r.Lineage(), r.Version)
}

var referencePattern = regexp.MustCompile(`^([A-Z0-9]+)-([A-Z]{3})-(\d{3})-v(\d+)$`)

// ParseReference parses a canonical sign reference. It returns an error
// for anything that does not match the SITE-CODE-SEQ-vVERSION shape.
func ParseReference(ref string) (Reference, error) {
	m := referencePattern.FindStringSubmatch(ref)
	if m == nil {
		return Reference{}, fmt.Errorf("invalid sign reference %q", ref)
	}
	seq, _ := strconv.Atoi(m[3])
	version, _ := strconv.Atoi(m[4])
	return Reference{
		Site:     m[1],
		TypeCode: m[2],
		Sequence: seq,
		Version:  version,
	}, nil
}
