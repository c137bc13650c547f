package gotrans

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTranslation is returned when every engine in the catalog failed.
	ErrNoTranslation = errors.New("no translation available")

	// ErrEmptyCatalog is returned when a catalog is built from no engines.
	ErrEmptyCatalog = errors.New("engine catalog is empty")
)

// EngineError indicates that a single engine could not produce a translation.
type EngineError struct {
	Engine    EngineID
	Message   string
	Cause     error
	Retryable bool // Whether the call may succeed if repeated
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine %s: %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("engine %s: %s", e.Engine, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache store failure.
type CacheError struct {
	Op      string // "get", "set" or "session"
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error (%s): %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error (%s): %s", e.Op, e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CatalogError indicates an invalid engine list.
type CatalogError struct {
	Engine  EngineID
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error: %s: %q", e.Message, e.Engine)
}
