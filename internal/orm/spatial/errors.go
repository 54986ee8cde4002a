package spatial

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned for spatial type names outside the catalog
	ErrUnknownType = errors.New("unknown spatial type")

	// ErrUnsupportedBackend is returned when no backend is registered under a name
	ErrUnsupportedBackend = errors.New("unsupported spatial backend")

	// ErrUnsupportedModifier is returned when a backend cannot store a requested
	// modifier (for example Z or M coordinates on MySQL)
	ErrUnsupportedModifier = errors.New("unsupported spatial modifier")
)

// ConfigurationError reports a fatal build-time problem: an unsupported backend
// or an unrecognized spatial type. It is never retried.
type ConfigurationError struct {
	Op   string
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("spatial: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
