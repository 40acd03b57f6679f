package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded for user mutations.
const (
	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// UserAuditEntry records a single successful mutation of a user.
type UserAuditEntry struct {
	UserID    uuid.UUID
	Action    string
	Email     string
	Timestamp time.Time
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	InsertEntry(ctx context.Context, entry *UserAuditEntry) error
}

// AuditSink accepts audit entries for asynchronous recording. Enqueueing
// must never fail the mutation that produced the entry.
type AuditSink interface {
	Enqueue(entry UserAuditEntry)
}
