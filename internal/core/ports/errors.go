package ports

import "errors"

// Storage error taxonomy surfaced by UserRepository implementations. Reasons
// are carried by wrapping, e.g. fmt.Errorf("%w: %s", ErrMalformedResponse, …),
// so callers match with errors.Is and still see the detail in the message.
var (
	// ErrNotFound: the requested record (or its lookup entry) does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrValidation: a stored value is not well-formed for its declared role,
	// e.g. a lookup entry holding an unparseable user id.
	ErrValidation = errors.New("validation error")

	// ErrMalformedResponse: a stored record could not be decoded into a User
	// (missing required attribute or wrong attribute type).
	ErrMalformedResponse = errors.New("malformed record")

	// ErrEmailAddressInUse: a conditional insert of a lookup entry failed
	// because the email is already claimed.
	ErrEmailAddressInUse = errors.New("email address already in use")

	// ErrInternal: any other transport or store failure. Not retried here;
	// retry policy is a caller concern.
	ErrInternal = errors.New("internal repository error")
)
