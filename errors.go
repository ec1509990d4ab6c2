package ar

import "errors"

// Common errors.
var (
	// ErrDisjointSpaces is returned when a pose transform is requested
	// between coordinate spaces that share no common root. This indicates
	// a programming error in the caller: spaces from different tracking
	// sessions can never be related.
	ErrDisjointSpaces = errors.New("ar: disjoint coordinate spaces")

	// ErrNoBackend is returned by NewSession when no tracking backend
	// is supplied.
	ErrNoBackend = errors.New("ar: no tracking backend")

	// ErrSessionClosed is returned by operations on a closed Session.
	ErrSessionClosed = errors.New("ar: session closed")
)

// BackendQueryError indicates a hit-test query failed inside the tracking
// backend or its transport. It is distinct from a legitimately empty
// result: "nothing there" resolves to a nil AnchorOffset with no error,
// while "could not ask" surfaces as a BackendQueryError.
//
// The underlying backend error is available via Unwrap.
type BackendQueryError struct {
	// Backend is the name of the backend that failed.
	Backend string

	// Err is the backend's own error.
	Err error
}

func (e *BackendQueryError) Error() string {
	return "ar: hit-test query failed on backend " + e.Backend + ": " + e.Err.Error()
}

func (e *BackendQueryError) Unwrap() error { return e.Err }
