package service

import (
	"errors"
	"fmt"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

// fromRepoError re-types a storage error into the domain taxonomy:
//
//	NotFound                      → ErrUserNotFound
//	Validation                    → ErrValidation (reason preserved)
//	EmailAddressInUse             → ErrConflictingUser (reason preserved)
//	MalformedResponse, Internal,
//	anything unrecognised         → ErrInternal
func fromRepoError(err error) error {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, ports.ErrValidation):
		return fmt.Errorf("%w: %s", domain.ErrValidation, trimSentinel(err, ports.ErrValidation))
	case errors.Is(err, ports.ErrEmailAddressInUse):
		return fmt.Errorf("%w: %s", domain.ErrConflictingUser, trimSentinel(err, ports.ErrEmailAddressInUse))
	default:
		return domain.ErrInternal
	}
}

// trimSentinel strips the sentinel's own message prefix so the reason is not
// repeated when re-wrapped under a domain sentinel.
func trimSentinel(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
