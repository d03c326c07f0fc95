package sotest_go

import (
	"errors"
	"fmt"
)

// ErrSymbolNotFound is wrapped by every DispatchError.
var ErrSymbolNotFound = errors.New("symbol not found")

// ParseError is a recoverable script diagnostic.
type ParseError struct {
	Msg  string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
}

// LoadError carries the loader message of a failed `use`.
type LoadError struct {
	Path string
	Msg  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Error while opening %s: %s.", e.Path, e.Msg)
}

// DispatchError reports a `call` no loaded library could resolve.
type DispatchError struct {
	Name string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("No function named %s was found.", e.Name)
}

func (e *DispatchError) Unwrap() error { return ErrSymbolNotFound }

// ResourceError is always fatal: read failures, unusable script or journal files.
type ResourceError struct {
	Op     string
	Source string
	Err    error
}

func (e *ResourceError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
