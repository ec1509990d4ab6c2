package backend

import (
	"sync"

	"github.com/gogpu/ar"
)

// Factory creates a new tracking backend instance.
type Factory func() ar.TrackingBackend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Real tracking integrations register ahead of the null fallback by
	// prepending themselves via Prioritize.
	backendPriority = []string{BackendNull}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Prioritize places a backend name at the front of the selection order
// used by Default. Registering alone does not affect priority: the
// scripted backend, for example, is registered but never auto-selected.
func Prioritize(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	order := make([]string, 0, len(backendPriority)+1)
	order = append(order, name)
	for _, n := range backendPriority {
		if n != name {
			order = append(order, n)
		}
	}
	backendPriority = order
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) ar.TrackingBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() ar.TrackingBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}
	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() ar.TrackingBackend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes and returns the default backend.
func InitDefault() (ar.TrackingBackend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}

	if err := b.Init(); err != nil {
		return nil, err
	}

	return b, nil
}
