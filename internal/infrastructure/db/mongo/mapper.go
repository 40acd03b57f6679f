package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

// userDoc is the persisted shape of a user. Every attribute is stored as a
// string: the id as UUID text, dob as YYYY-MM-DD, timestamps as RFC3339.
type userDoc struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
	DOB       string `bson:"dob"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"updated_at"`
}

// emailDoc is a lookup record resolving an email to the owning user's id.
type emailDoc struct {
	Email string `bson:"_id"`
	ID    string `bson:"id"`
}

func docFromUser(u *domain.User) userDoc {
	return userDoc{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		DOB:       u.DateOfBirth.Format(time.DateOnly),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// userFromRaw decodes a stored document field by field so that a corrupt or
// partial record surfaces as ErrMalformedResponse with a precise reason
// rather than a silent zero value. first_name and last_name may legitimately
// be absent; everything else is required.
func userFromRaw(raw bson.Raw) (*domain.User, error) {
	idStr, err := getString(raw, "_id")
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid uuid", ports.ErrMalformedResponse)
	}

	firstName, err := getOptionalString(raw, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, err := getOptionalString(raw, "last_name")
	if err != nil {
		return nil, err
	}
	email, err := getString(raw, "email")
	if err != nil {
		return nil, err
	}

	dobStr, err := getString(raw, "dob")
	if err != nil {
		return nil, err
	}
	dob, err := time.Parse(time.DateOnly, dobStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dob format", ports.ErrMalformedResponse)
	}

	createdStr, err := getString(raw, "created_at")
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid created_at format", ports.ErrMalformedResponse)
	}

	updatedStr, err := getString(raw, "updated_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid updated_at format", ports.ErrMalformedResponse)
	}

	return &domain.User{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dob,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}

func getString(raw bson.Raw, key string) (string, error) {
	val, err := raw.LookupErr(key)
	if err != nil {
		return "", fmt.Errorf("%w: %s missing", ports.ErrMalformedResponse, key)
	}
	s, ok := val.StringValueOK()
	if !ok {
		return "", fmt.Errorf("%w: incorrect type for %s", ports.ErrMalformedResponse, key)
	}
	return s, nil
}

func getOptionalString(raw bson.Raw, key string) (string, error) {
	val, err := raw.LookupErr(key)
	if err != nil {
		return "", nil
	}
	s, ok := val.StringValueOK()
	if !ok {
		return "", fmt.Errorf("%w: incorrect type for %s", ports.ErrMalformedResponse, key)
	}
	return s, nil
}
