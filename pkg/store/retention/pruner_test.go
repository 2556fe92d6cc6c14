package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
)

func saveVersions(t *testing.T, st store.Store, lineageSite string, versions []int, age time.Duration) {
	t.Helper()
	for _, v := range versions {
		s := &sign.Sign{
			Reference: sign.MakeReference(lineageSite, sign.TypeEntrance, 1, v),
			Type:      sign.TypeEntrance,
			CreatedAt: time.Now().Add(-age),
		}
		if err := st.Save(context.Background(), s); err != nil {
			t.Fatalf("Save v%d: %v", v, err)
		}
	}
}

func TestPrune_KeepsRecentVersions(t *testing.T) {
	st := store.NewMemoryStore()
	saveVersions(t, st, "krs", []int{1, 2, 3, 4, 5}, 100*24*time.Hour)

	pruner := NewPruner(st, &Config{KeepVersions: 2, RetentionDays: 30}, nil)
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	// v5 and v4 survive, v1-v3 are gone.
	for v, wantKept := range map[int]bool{1: false, 2: false, 3: false, 4: true, 5: true} {
		_, err := st.Get(context.Background(), sign.MakeReference("krs", sign.TypeEntrance, 1, v))
		if wantKept && err != nil {
			t.Errorf("v%d should have been kept: %v", v, err)
		}
		if !wantKept && !errors.Is(err, store.ErrNotFound) {
			t.Errorf("v%d should have been pruned, got %v", v, err)
		}
	}
}

func TestPrune_AgeGuardProtectsRecentRevisions(t *testing.T) {
	st := store.NewMemoryStore()
	// All revisions created just now: nothing is old enough to delete.
	saveVersions(t, st, "krs", []int{1, 2, 3, 4}, 0)

	pruner := NewPruner(st, &Config{KeepVersions: 1, RetentionDays: 30}, nil)
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 (age guard)", deleted)
	}
}

func TestPrune_UnderKeepCountUntouched(t *testing.T) {
	st := store.NewMemoryStore()
	saveVersions(t, st, "krs", []int{1, 2}, 365*24*time.Hour)

	pruner := NewPruner(st, &Config{KeepVersions: 3, RetentionDays: 0}, nil)
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestScheduler_NoScheduleIsNoop(t *testing.T) {
	st := store.NewMemoryStore()
	pruner := NewPruner(st, &Config{KeepVersions: 1, PruneSchedule: ""}, nil)
	sched := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sched.IsRunning() {
		t.Error("scheduler should not run without a schedule")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	st := store.NewMemoryStore()
	pruner := NewPruner(st, &Config{KeepVersions: 1, PruneSchedule: "not a cron"}, nil)
	sched := NewScheduler(pruner)

	if err := sched.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}
