package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity managed by this service. ID is immutable after
// creation and Email is globally unique, enforced by the storage layer.
type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"` // calendar date, no time-of-day
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser builds a User with a fresh id and both timestamps set to now.
func NewUser(firstName, lastName, email string, dateOfBirth time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UserUpdate is a partial-update descriptor: nil fields are absent and leave
// the corresponding User field unchanged.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
}

// IsEmpty reports whether every field of the update is absent.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.DateOfBirth == nil
}

// Apply copies the present fields of update onto the user and advances
// UpdatedAt, regardless of which fields changed.
func (u *User) Apply(update UserUpdate) {
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.DateOfBirth != nil {
		u.DateOfBirth = *update.DateOfBirth
	}
	u.UpdatedAt = time.Now().UTC()
}
