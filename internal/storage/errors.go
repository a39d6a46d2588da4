package storage

import "errors"

// Ledger storage errors.
var (
	// ErrNotFound is returned when a requested token or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMinted is returned when inserting a token_id that exists or
	// existed before. Burned IDs are never reused.
	ErrAlreadyMinted = errors.New("token_id already minted")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyInitialized is returned when the write-once contract config
	// is set a second time.
	ErrAlreadyInitialized = errors.New("contract config already initialized")
)
