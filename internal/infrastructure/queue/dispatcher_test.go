package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/OJOMB/user-registry/internal/core/ports"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []ports.UserAuditEntry
}

func (r *recordingSink) InsertEntry(_ context.Context, entry *ports.UserAuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingSink) snapshot() []ports.UserAuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.UserAuditEntry(nil), r.entries...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	d := NewDispatcher(3, sink, zerolog.Nop())
	d.Start(ctx)

	id := uuid.New()
	d.Enqueue(ports.UserAuditEntry{UserID: id, Action: ports.AuditActionCreated, Email: "jane@example.com", Timestamp: time.Now()})
	d.Enqueue(ports.UserAuditEntry{UserID: id, Action: ports.AuditActionDeleted, Timestamp: time.Now()})

	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })

	entries := sink.snapshot()
	if entries[0].Action != ports.AuditActionCreated || entries[1].Action != ports.AuditActionDeleted {
		t.Fatalf("entries for the same user must keep enqueue order: %+v", entries)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingSink{}, zerolog.Nop())

	id := uuid.New().String()
	first := d.shardIndex(id)
	for i := 0; i < 10; i++ {
		if got := d.shardIndex(id); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingSink{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
