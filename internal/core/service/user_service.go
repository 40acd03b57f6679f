package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/OJOMB/user-registry/internal/api/metrics"
	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

// UserCache abstracts the read-through cache (Redis). A nil user with a nil
// error means a miss. Cache failures are never fatal to the operation.
type UserCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo   ports.UserRepository
	cache  UserCache
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache UserCache, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, audit: audit, logger: logger}
}

// CreateUser persists a new user. The id must already be populated; the
// repository enforces email uniqueness.
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id must be populated", domain.ErrValidation)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		mapped := fromRepoError(err)
		if errIsConflict(mapped) {
			metrics.UserConflictsTotal.WithLabelValues("create").Inc()
		}
		return nil, mapped
	}

	s.warmCache(ctx, user)
	s.recordAudit(user.ID, ports.AuditActionCreated, user.Email)
	metrics.UsersCreatedTotal.Inc()

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user created")
	return user, nil
}

// GetUser returns the user with the given id, consulting the cache first.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: user id must be populated", domain.ErrValidation)
	}

	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("cache read failed, falling through to store")
	} else if cached != nil {
		metrics.UserCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	} else {
		metrics.UserCacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fromRepoError(err)
	}

	s.warmCache(ctx, user)
	return user, nil
}

// GetUserByEmail returns the user owning the given email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email must be populated", domain.ErrValidation)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fromRepoError(err)
	}

	s.warmCache(ctx, user)
	return user, nil
}

// UpdateUser fetches the current user, applies the present fields of update
// and persists the result. The previous email is passed to the repository
// only when the update actually changes the email, so the lookup-migration
// transaction runs only when needed.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: user id must be populated", domain.ErrValidation)
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: update must contain at least one field", domain.ErrMissingParameters)
	}

	// Authoritative read, bypassing the cache.
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fromRepoError(err)
	}

	oldEmail := ""
	if update.Email != nil && *update.Email != user.Email {
		oldEmail = user.Email
	}

	user.Apply(update)

	if err := s.repo.UpdateUser(ctx, user, oldEmail); err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user")
		mapped := fromRepoError(err)
		if errIsConflict(mapped) {
			metrics.UserConflictsTotal.WithLabelValues("update").Inc()
		}
		return nil, mapped
	}

	s.invalidateCache(ctx, id)
	s.recordAudit(id, ports.AuditActionUpdated, user.Email)
	metrics.UsersUpdatedTotal.WithLabelValues(emailChangedLabel(oldEmail)).Inc()

	s.logger.Info().Str("user_id", id.String()).Bool("email_changed", oldEmail != "").Msg("user updated")
	return user, nil
}

// DeleteUser removes the user with the given id.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: user id must be populated", domain.ErrValidation)
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fromRepoError(err)
	}

	s.invalidateCache(ctx, id)
	s.recordAudit(id, ports.AuditActionDeleted, "")
	metrics.UsersDeletedTotal.Inc()

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func (s *UserService) warmCache(ctx context.Context, user *domain.User) {
	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to warm cache")
	}
}

func (s *UserService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("failed to invalidate cache entry")
	}
}

func (s *UserService) recordAudit(id uuid.UUID, action, email string) {
	s.audit.Enqueue(ports.UserAuditEntry{
		UserID:    id,
		Action:    action,
		Email:     email,
		Timestamp: time.Now().UTC(),
	})
}

func errIsConflict(err error) bool {
	return errors.Is(err, domain.ErrConflictingUser)
}

func emailChangedLabel(oldEmail string) string {
	if oldEmail != "" {
		return "true"
	}
	return "false"
}
