package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Account models an operator of the registry API. Accounts are separate from
// the Users the registry manages: they exist only to authenticate callers.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
