package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/OJOMB/user-registry/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the user id, guaranteeing per-user write ordering in the audit
// trail.
type Dispatcher struct {
	workers  []chan ports.UserAuditEntry
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.UserAuditEntry, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.UserAuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an entry to the worker responsible for its user id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(entry ports.UserAuditEntry) {
	d.workers[d.shardIndex(entry.UserID.String())] <- entry
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.UserAuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.InsertEntry(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("user_id", entry.UserID.String()).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
		}
	}
}
