package translations

import "fmt"

// ConfigurationError is returned when a required setting is missing or malformed.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

// FetchError is returned by a ContentFetcher when the remote call fails.
// StatusCode is zero for transport failures, in which case Err holds the cause.
type FetchError struct {
	Path       string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %q: remote returned %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("fetch %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e FetchError) Unwrap() error {
	return e.Err
}

// ShapeError is returned when the remote response is valid JSON of the wrong shape.
type ShapeError struct {
	Path     string
	Expected string
}

// Error implements the error interface.
func (e ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape for %q: expected %s", e.Path, e.Expected)
}
