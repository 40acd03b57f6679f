package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/OJOMB/user-registry/internal/core/domain"
)

// UserRepository defines persistence operations for users over a store that
// offers only per-record conditional writes and multi-record transactions.
// Email uniqueness is maintained manually through a derived email → id
// lookup record whose lifecycle is entirely owned by the implementation.
type UserRepository interface {
	// GetUser performs a point lookup on the primary record.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetUserByEmail resolves email to an id via the lookup record, then
	// delegates to GetUser. A lookup entry referencing a missing primary
	// record is surfaced as ErrNotFound, not repaired.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser claims the email with a conditional lookup insert, then
	// writes the primary record. A partial failure triggers a best-effort
	// compensating delete of the lookup entry.
	CreateUser(ctx context.Context, user *domain.User) error

	// UpdateUser rewrites the primary record, requiring it to exist. When
	// oldEmail is non-empty the email is changing, and the old lookup entry
	// is replaced by one for the new email in a single atomic transaction
	// with the primary write.
	UpdateUser(ctx context.Context, user *domain.User, oldEmail string) error

	// DeleteUser removes the primary record, requiring it to exist. The
	// email lookup entry is knowingly left behind (see repository docs).
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// AccountRepository defines persistence for operator accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
