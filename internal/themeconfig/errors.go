package themeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrInvalidConfig indicates a variable file could not be understood
	ErrInvalidConfig = errors.New("invalid variable configuration")

	// ErrCircularReference indicates variables that reference each other in a loop
	ErrCircularReference = errors.New("circular reference detected")
)

// InvalidConfigError represents a malformed variable file
type InvalidConfigError struct {
	FilePath string
	Reason   string
}

func (e *InvalidConfigError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("invalid variable configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid variable configuration in %s: %s", e.FilePath, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewInvalidConfigError creates a new invalid configuration error
func NewInvalidConfigError(filePath, reason string) error {
	return &InvalidConfigError{FilePath: filePath, Reason: reason}
}

// CircularReferenceError represents a var() reference chain that loops
type CircularReferenceError struct {
	Theme          string
	ReferenceChain []string
}

func (e *CircularReferenceError) Error() string {
	chain := strings.Join(e.ReferenceChain, " → ")
	return fmt.Sprintf("circular reference detected in theme %q: %s\nSuggestion: Break the circular dependency chain",
		e.Theme, chain)
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(theme string, chain []string) error {
	return &CircularReferenceError{Theme: theme, ReferenceChain: chain}
}
