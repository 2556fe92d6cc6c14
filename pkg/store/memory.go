package store

import (
	"context"
	"sort"
	"sync"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// MemoryStore implements Store using an in-memory map. Intended for tests
// and ephemeral development runs.
type MemoryStore struct {
	mu    sync.RWMutex
	signs map[string]*sign.Sign
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		signs: make(map[string]*sign.Sign),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, sg *sign.Sign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to keep the stored record immune to caller mutation.
	cp := *sg
	cp.Elements = append([]sign.Element(nil), sg.Elements...)
	s.signs[sg.Reference] = &cp
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, reference string) (*sign.Sign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sg, ok := s.signs[reference]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sg
	cp.Elements = append([]sign.Element(nil), sg.Elements...)
	return &cp, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]*sign.Sign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*sign.Sign, 0, len(s.signs))
	for _, sg := range s.signs {
		cp := *sg
		cp.Elements = append([]sign.Element(nil), sg.Elements...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.signs[reference]; !ok {
		return ErrNotFound
	}
	delete(s.signs, reference)
	return nil
}

// NextSequence implements Store.
func (s *MemoryStore) NextSequence(ctx context.Context, site string, t sign.Type) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]string, 0, len(s.signs))
	for ref := range s.signs {
		refs = append(refs, ref)
	}
	return nextSequenceFromRefs(refs, site, t), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
