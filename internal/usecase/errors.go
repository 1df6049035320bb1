package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrRosterIncomplete is returned when a roster submission carries a
	// starter count other than eleven.
	ErrRosterIncomplete = errors.New("roster requires exactly eleven starters")

	// ErrRosterNotFound blocks recording until roster selection has been
	// completed for the match.
	ErrRosterNotFound = errors.New("no committed roster for match")

	// ErrInvalidSubstitution rejects substitution entries missing either
	// player or naming the same player twice.
	ErrInvalidSubstitution = errors.New("invalid substitution")

	// ErrSaveInFlight rejects a save while a previous one is pending.
	ErrSaveInFlight = errors.New("save already in flight")

	// ErrPersistenceTimeout marks a backing-store round trip that exceeded
	// the configured deadline; the session stays usable and the coach can
	// retry.
	ErrPersistenceTimeout = errors.New("persistence deadline exceeded")
)
