package storage

import "errors"

// Trade journal errors. The journal is append-only.
var (
	// ErrNotFound is returned when a requested trade does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a trade_id is inserted twice.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned for nil trades or trades without an id.
	ErrInvalidInput = errors.New("invalid input")
)
