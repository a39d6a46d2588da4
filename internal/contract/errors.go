package contract

import "errors"

// ErrUnauthorized is returned when the caller lacks the authority a message
// requires. Storage-level failures (ErrNotFound, ErrAlreadyMinted,
// ErrInvalidInput) come from the storage package unchanged.
var ErrUnauthorized = errors.New("unauthorized")
