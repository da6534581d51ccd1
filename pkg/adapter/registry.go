package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory to the registry under one or more URL schemes.
// Called by adapter implementations in their init() functions.
func Register(factory func(*slog.Logger) Adapter, schemes ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, s := range schemes {
		registry[strings.ToLower(s)] = factory
	}
}

// Get retrieves an adapter factory by scheme.
func Get(scheme string) (func(*slog.Logger) Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(scheme)]
	return f, ok
}

// NewAdapter creates a new adapter instance for the given scheme.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(scheme string, logger *slog.Logger) (Adapter, error) {
	if scheme == "" {
		return nil, fmt.Errorf("adapter scheme not specified")
	}

	factory, ok := Get(scheme)
	if !ok {
		return nil, &UnknownAdapterError{
			Scheme:    scheme,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns all registered schemes (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a scheme is registered.
func IsRegistered(scheme string) bool {
	_, ok := Get(scheme)
	return ok
}

// UnknownAdapterError is returned when no adapter handles a URL scheme.
type UnknownAdapterError struct {
	Scheme    string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unsupported database scheme %q (supported: %s)", e.Scheme, strings.Join(e.Available, ", "))
}
