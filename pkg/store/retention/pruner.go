// Package retention prunes superseded sign revisions from the store.
// Every content revision produces a new versioned record; installations
// that revise signs frequently accumulate stale versions that are never
// printed again. The pruner keeps a configured number of recent versions
// per sign lineage and deletes the rest once they are old enough.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// KeepVersions is the number of most recent versions to keep per
	// sign lineage. The latest version is always kept. Default: 3.
	KeepVersions int

	// RetentionDays protects recent revisions: a superseded version is
	// only deleted once it is at least this many days old.
	// 0 disables the age guard.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		KeepVersions:  3,
		RetentionDays: 30,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner deletes superseded sign versions according to the retention
// policy.
type Pruner struct {
	store  store.Store
	config *Config
	logger *slog.Logger
	now    func() time.Time
}

// NewPruner creates a retention pruner over the given store.
func NewPruner(st store.Store, config *Config, logger *slog.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:  st,
		config: config,
		logger: logger.With("component", "store.retention"),
		now:    time.Now,
	}
}

// Prune deletes superseded versions beyond the keep-count, subject to the
// age guard. Returns the number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	if p.config.KeepVersions < 1 {
		p.config.KeepVersions = 1
	}

	signs, err := p.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list signs for pruning: %w", err)
	}

	// Group revisions by lineage (reference without the version suffix).
	lineages := make(map[string][]*sign.Sign)
	for _, sg := range signs {
		parsed, err := sign.ParseReference(sg.Reference)
		if err != nil {
			// Not a canonical reference; leave it alone.
			continue
		}
		lineages[parsed.Lineage()] = append(lineages[parsed.Lineage()], sg)
	}

	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
	deleted := 0

	for lineage, revisions := range lineages {
		if len(revisions) <= p.config.KeepVersions {
			continue
		}

		// Newest versions first; everything past the keep-count is a
		// candidate.
		sort.Slice(revisions, func(i, j int) bool {
			pi, _ := sign.ParseReference(revisions[i].Reference)
			pj, _ := sign.ParseReference(revisions[j].Reference)
			return pi.Version > pj.Version
		})

		for _, sg := range revisions[p.config.KeepVersions:] {
			if p.config.RetentionDays > 0 && sg.CreatedAt.After(cutoff) {
				continue
			}
			if err := p.store.Delete(ctx, sg.Reference); err != nil {
				return deleted, fmt.Errorf("failed to prune %q: %w", sg.Reference, err)
			}
			deleted++
			p.logger.Debug("pruned superseded sign version",
				"reference", sg.Reference,
				"lineage", lineage,
			)
		}
	}

	if deleted > 0 {
		p.logger.Info("pruned superseded sign versions", "deleted_count", deleted)
	}
	return deleted, nil
}
