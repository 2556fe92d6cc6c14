package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// FileStore implements Store as one JSON document per sign plus a JSON
// array index, the layout the original designer wrote to disk. Access to
// the index is serialised; the engine and services above never see the
// file layout, only Sign values.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

const indexFile = "index.json"

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory and an empty index if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %q: %w", dir, err)
	}

	s := &FileStore{
		dir:    dir,
		logger: logger.With("component", "store.file"),
	}

	indexPath := filepath.Join(dir, indexFile)
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		if err := s.writeIndex([]string{}); err != nil {
			return nil, err
		}
	}

	s.logger.Info("file store opened", "dir", dir)
	return s, nil
}

// signPath maps a reference to its document path. References are already
// filesystem-safe (uppercase alphanumerics and dashes).
func (s *FileStore) signPath(reference string) string {
	return filepath.Join(s.dir, reference+".json")
}

func (s *FileStore) readIndex() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read sign index: %w", err)
	}
	var refs []string
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("failed to parse sign index: %w", err)
	}
	return refs, nil
}

// writeIndex replaces the index atomically via a temp file rename.
func (s *FileStore) writeIndex(refs []string) error {
	sort.Strings(refs)
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sign index: %w", err)
	}

	tmp := filepath.Join(s.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sign index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, indexFile)); err != nil {
		return fmt.Errorf("failed to replace sign index: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, sg *sign.Sign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sign %q: %w", sg.Reference, err)
	}
	if err := os.WriteFile(s.signPath(sg.Reference), data, 0o644); err != nil {
		return fmt.Errorf("failed to write sign %q: %w", sg.Reference, err)
	}

	refs, err := s.readIndex()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if ref == sg.Reference {
			return nil
		}
	}
	return s.writeIndex(append(refs, sg.Reference))
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, reference string) (*sign.Sign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.signPath(reference))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sign %q: %w", reference, err)
	}

	var sg sign.Sign
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("failed to parse sign %q: %w", reference, err)
	}
	return &sg, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]*sign.Sign, error) {
	s.mu.Lock()
	refs, err := s.readIndex()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]*sign.Sign, 0, len(refs))
	for _, ref := range refs {
		sg, err := s.Get(ctx, ref)
		if err == ErrNotFound {
			// Index drift: document deleted out of band. Skip it.
			s.logger.Warn("indexed sign missing on disk", "reference", ref)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.signPath(reference)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete sign %q: %w", reference, err)
	}

	refs, err := s.readIndex()
	if err != nil {
		return err
	}
	kept := refs[:0]
	for _, ref := range refs {
		if !strings.EqualFold(ref, reference) {
			kept = append(kept, ref)
		}
	}
	return s.writeIndex(kept)
}

// NextSequence implements Store.
func (s *FileStore) NextSequence(ctx context.Context, site string, t sign.Type) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.readIndex()
	if err != nil {
		return 0, err
	}
	return nextSequenceFromRefs(refs, site, t), nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
