package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedCatalog is the sentinel wrapped by MalformedCatalogError.
var ErrMalformedCatalog = errors.New("malformed catalog")

// MalformedCatalogError reports a catalog document that could not be parsed.
// It is fatal for a run.
type MalformedCatalogError struct {
	Path    string
	Message string
	Err     error
}

func (e *MalformedCatalogError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("malformed catalog %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("malformed catalog: %s", msg)
}

func (e *MalformedCatalogError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedCatalog
}

// Is lets errors.Is match the sentinel even when a cause is wrapped.
func (e *MalformedCatalogError) Is(target error) bool {
	return target == ErrMalformedCatalog
}
