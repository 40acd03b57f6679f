package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

const (
	collectionUsers      = "users"
	collectionUserEmails = "user_emails"
)

// UserRepository persists users across two collections: the primary records
// keyed by user id, and a derived email → id lookup collection that exists
// solely to enforce email uniqueness and serve email-based retrieval. The
// store has no cross-collection unique constraint, so consistency between
// the two is maintained with conditional writes and, when an update changes
// the email, a single multi-document transaction.
type UserRepository struct {
	client *mongo.Client
	users  *mongo.Collection
	emails *mongo.Collection
	log    zerolog.Logger
}

func NewUserRepository(db *mongo.Database, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		client: db.Client(),
		users:  db.Collection(collectionUsers),
		emails: db.Collection(collectionUserEmails),
		log:    log,
	}
}

// GetUser performs a point lookup on the primary collection.
func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.users.FindOne(ctx, bson.M{"_id": id.String()}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", ports.ErrInternal, err)
	}

	return userFromRaw(raw)
}

// GetUserByEmail resolves the email through the lookup collection and then
// fetches the primary record. A lookup entry pointing at a missing primary
// record is an inconsistency: it is logged and surfaced as not-found, never
// repaired here.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var entry emailDoc
	if err := r.emails.FindOne(ctx, bson.M{"_id": email}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("%w: resolve email: %v", ports.ErrInternal, err)
	}

	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup entry for %s holds invalid user id", ports.ErrValidation, email)
	}

	user, err := r.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			r.log.Warn().
				Str("email", email).
				Str("user_id", entry.ID).
				Msg("lookup entry references a missing user record")
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser claims the email first with an insert conditioned on no
// existing lookup entry, then writes the primary record. If the primary
// write fails after the claim succeeded, the claim is rolled back with a
// best-effort compensating delete; a failed rollback leaves the lookup
// entry orphaned, which is logged but does not change the returned error.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.emails.InsertOne(ctx, emailDoc{Email: user.Email, ID: user.ID.String()})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ports.ErrEmailAddressInUse, user.Email)
		}
		return fmt.Errorf("%w: claim email: %v", ports.ErrInternal, err)
	}

	if _, err := r.users.InsertOne(ctx, docFromUser(user)); err != nil {
		if _, delErr := r.emails.DeleteOne(ctx, bson.M{"_id": user.Email, "id": user.ID.String()}); delErr != nil {
			r.log.Error().Err(delErr).
				Str("email", user.Email).
				Str("user_id", user.ID.String()).
				Msg("rollback of lookup entry failed; entry is now orphaned")
		}
		return fmt.Errorf("%w: insert user: %v", ports.ErrInternal, err)
	}

	return nil
}

// UpdateUser rewrites the primary record, requiring it to already exist so a
// deleted user cannot be resurrected. When oldEmail is non-empty the email
// is changing: the old lookup entry is removed, the new one inserted
// (conditioned on the new email being unclaimed) and the primary record
// rewritten, all inside one transaction. The failing step determines the
// returned error.
func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User, oldEmail string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if oldEmail == "" {
		res, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, docFromUser(user))
		if err != nil {
			return fmt.Errorf("%w: update user: %v", ports.ErrInternal, err)
		}
		if res.MatchedCount == 0 {
			return ports.ErrNotFound
		}
		return nil
	}

	// The ownership check runs outside the transaction. This leaves a narrow
	// window between check and transact which is accepted: the transaction's
	// own conditions still guarantee no partial migration.
	var entry emailDoc
	err := r.emails.FindOne(ctx, bson.M{"_id": oldEmail}).Decode(&entry)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		r.log.Warn().
			Str("email", oldEmail).
			Str("user_id", user.ID.String()).
			Msg("no lookup entry for previous email; proceeding with migration")
	case err != nil:
		return fmt.Errorf("%w: read old lookup entry: %v", ports.ErrInternal, err)
	case entry.ID != user.ID.String():
		return fmt.Errorf("%w: %s is claimed by another user", ports.ErrEmailAddressInUse, oldEmail)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %v", ports.ErrInternal, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// 1. Drop the old lookup entry.
		if _, err := r.emails.DeleteOne(sc, bson.M{"_id": oldEmail}); err != nil {
			return nil, fmt.Errorf("%w: delete old lookup entry: %v", ports.ErrInternal, err)
		}

		// 2. Claim the new email, conditioned on no existing entry.
		if _, err := r.emails.InsertOne(sc, emailDoc{Email: user.Email, ID: user.ID.String()}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("%w: %s", ports.ErrEmailAddressInUse, user.Email)
			}
			return nil, fmt.Errorf("%w: insert new lookup entry: %v", ports.ErrInternal, err)
		}

		// 3. Rewrite the primary record, requiring it to exist.
		res, err := r.users.ReplaceOne(sc, bson.M{"_id": user.ID.String()}, docFromUser(user))
		if err != nil {
			return nil, fmt.Errorf("%w: replace user: %v", ports.ErrInternal, err)
		}
		if res.MatchedCount == 0 {
			return nil, ports.ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrEmailAddressInUse) || errors.Is(err, ports.ErrNotFound) || errors.Is(err, ports.ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: email migration transaction: %v", ports.ErrInternal, err)
	}
	return nil
}

// DeleteUser removes the primary record, requiring it to exist. The email
// lookup entry is NOT removed: the delete path has no view of the user's
// email without an extra read. A later create with the same email will be
// rejected as a conflict until the orphan is cleaned up out of band.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("%w: delete user: %v", ports.ErrInternal, err)
	}
	if res.DeletedCount == 0 {
		return ports.ErrNotFound
	}

	r.log.Debug().Str("user_id", id.String()).Msg("user deleted; email lookup entry left in place")
	return nil
}
