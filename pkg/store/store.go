// Package store persists sign documents. Three backends implement the
// same Store contract: an in-memory map for tests, the flat JSON file
// layout the original designer used, and SQLite for larger installations.
package store

import (
	"context"
	"errors"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// ErrNotFound is returned when a referenced sign does not exist.
// Transports surface it to callers as the message "Sign not found".
var ErrNotFound = errors.New("sign not found")

// Store is the persistence contract for sign documents. Signs are keyed
// by their full reference, so every revision is its own record.
type Store interface {
	// Save persists a sign, overwriting any record with the same reference.
	Save(ctx context.Context, s *sign.Sign) error

	// Get returns the sign with the given reference, or ErrNotFound.
	Get(ctx context.Context, reference string) (*sign.Sign, error)

	// List returns every stored sign, ordered by reference.
	List(ctx context.Context) ([]*sign.Sign, error)

	// Delete removes the sign with the given reference, or ErrNotFound.
	Delete(ctx context.Context, reference string) error

	// NextSequence returns the next unused sequence number for the
	// (site, type) counter scope, starting at 1.
	NextSequence(ctx context.Context, site string, t sign.Type) (int, error)

	// Close releases backend resources.
	Close() error
}

// nextSequenceFromRefs derives the next (site, type) sequence number from
// a set of existing references. Shared by the backends that keep no
// separate counter.
func nextSequenceFromRefs(refs []string, site string, t sign.Type) int {
	target := sign.MakeReference(site, t, 0, 1)
	prefix := target[:len(target)-len("-000-v1")]

	max := 0
	for _, ref := range refs {
		parsed, err := sign.ParseReference(ref)
		if err != nil {
			continue
		}
		if parsed.Site+"-"+parsed.TypeCode != prefix {
			continue
		}
		if parsed.Sequence > max {
			max = parsed.Sequence
		}
	}
	return max + 1
}
