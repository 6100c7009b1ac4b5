package transport

import "errors"

var (
	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden: the record exists but belongs to someone else. Boundary
	// layers must not let callers distinguish this from a missing machine id.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidReference: a referenced peripheral/machine id is missing or
	// malformed.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrBadStatus: a status value outside {online, offline}.
	ErrBadStatus = errors.New("invalid machine status")
)
