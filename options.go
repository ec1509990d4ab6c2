package ar

import "log/slog"

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Default calibration, fresh registry
//	sess, err := ar.NewSession(backend.MustDefault())
//
//	// Custom calibration loaded from disk
//	calib, _ := ar.LoadCalibration("device.yaml")
//	sess, err := ar.NewSession(backend.MustDefault(), ar.WithCalibration(calib))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	calib    Calibration
	registry *Registry
	logger   *slog.Logger
	idSource func() string
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		calib:    DefaultCalibration(),
		registry: nil, // created in NewSession if nil
	}
}

// WithCalibration sets the session's calibration parameters.
func WithCalibration(c Calibration) SessionOption {
	return func(o *sessionOptions) {
		o.calib = c
	}
}

// WithRegistry supplies an existing anchor registry instead of creating
// a fresh one. Use this to share anchors between a session and a host
// that created anchors on explicit request.
func WithRegistry(r *Registry) SessionOption {
	return func(o *sessionOptions) {
		o.registry = r
	}
}

// WithSessionLogger passes a logger to the session's backend when the
// backend implements LoggerSetter. The package-level logger
// (ar.SetLogger) is unaffected.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// WithSessionIDSource sets the anchor id generator for the session's
// registry. Ignored when WithRegistry is also given.
func WithSessionIDSource(fn func() string) SessionOption {
	return func(o *sessionOptions) {
		o.idSource = fn
	}
}
