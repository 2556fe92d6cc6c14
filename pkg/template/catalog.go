package template

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// Catalog is the process-wide template registry. It merges the built-in
// templates with any file-based sources; file templates with the same ID
// as a built-in override it. Lookups are safe for concurrent use with
// reloads.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]Template
	sources   []Source
	logger    *slog.Logger
}

// NewCatalog creates a catalog over the given sources, loading them
// immediately. Sources are applied in order, later sources winning ID
// conflicts.
func NewCatalog(logger *slog.Logger, sources ...Source) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		templates: make(map[string]Template),
		sources:   sources,
		logger:    logger.With("component", "template.catalog"),
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads every source and swaps in the merged result atomically.
func (c *Catalog) Reload() error {
	merged := make(map[string]Template)
	for _, src := range c.sources {
		templates, err := src.Load()
		if err != nil {
			return fmt.Errorf("failed to load template source: %w", err)
		}
		for _, tpl := range templates {
			if tpl.ID == "" {
				return fmt.Errorf("template %q has no id", tpl.Name)
			}
			if !tpl.SignType.IsValid() {
				return fmt.Errorf("template %q has unknown sign type %q", tpl.ID, tpl.SignType)
			}
			merged[tpl.ID] = tpl
		}
	}

	c.mu.Lock()
	c.templates = merged
	c.mu.Unlock()

	c.logger.Info("template catalog loaded", "template_count", len(merged))
	return nil
}

// Get returns the template with the given ID.
func (c *Catalog) Get(id string) (Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tpl, ok := c.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("template %q not found", id)
	}
	return tpl, nil
}

// ForType returns the templates available for a sign type, sorted by ID.
func (c *Catalog) ForType(t sign.Type) []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Template
	for _, tpl := range c.templates {
		if tpl.SignType == t {
			out = append(out, tpl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns every template, sorted by ID.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Template, 0, len(c.templates))
	for _, tpl := range c.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
