package backend

import "errors"

// Built-in backend names.
const (
	// BackendNull is the always-empty fallback backend.
	BackendNull = "null"

	// BackendScripted is the deterministic canned-response backend.
	BackendScripted = "scripted"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrClosed is returned when operations are called after Close.
	ErrClosed = errors.New("backend: closed")
)
