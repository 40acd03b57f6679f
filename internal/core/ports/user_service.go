package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/OJOMB/user-registry/internal/core/domain"
)

// UserService defines the use-case operations consumed by the HTTP layer.
// Implementations enforce input-shape invariants before any storage
// interaction and translate storage errors into the domain taxonomy.
type UserService interface {
	// CreateUser persists the given user and returns it unchanged, echoing
	// the generated id and timestamps.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateUser fetches the current user, applies the present fields of
	// update and persists the result. An all-absent update is rejected with
	// ErrMissingParameters before any store interaction.
	UpdateUser(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// AccountService defines operator registration and login.
type AccountService interface {
	Register(ctx context.Context, username, password, role string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
