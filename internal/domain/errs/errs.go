// Package errs defines the failure kinds surfaced by the holdings listing
// core. Callers classify errors with errors.Is against the sentinels below;
// the wrapped cause stays reachable through errors.Is and errors.As.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a malformed owner, page size or cursor
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable marks a failed read from the storage collaborator
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrIntegrityViolation marks data breaking an invariant the core relies on,
	// such as two snapshots sharing the maximum block number of one token
	ErrIntegrityViolation = errors.New("integrity violation")
)

// InvalidArgument returns an ErrInvalidArgument with a formatted reason
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IntegrityViolation returns an ErrIntegrityViolation with a formatted reason
func IntegrityViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIntegrityViolation, fmt.Sprintf(format, args...))
}

// Storage wraps a storage read failure. A nil err returns nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: failed to %s: %w", ErrStorageUnavailable, op, err)
}
