package repository

import "errors"

// Storage error taxonomy shared by every gateway implementation. Services
// match on these with errors.Is; infrastructure wraps driver errors into
// them so the driver never leaks upward.
var (
	// ErrNotFound means the referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a conditional create lost to an existing record with
	// the same uniqueness key. Identifier allocation retries on this; nothing
	// else does.
	ErrConflict = errors.New("already exists")
	// ErrUnavailable means the gateway call failed for infrastructural
	// reasons. It must never be treated as "does not exist".
	ErrUnavailable = errors.New("storage unavailable")
)
