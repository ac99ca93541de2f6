package viewer

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTarget is returned by New when no Backend is given.
	ErrMissingTarget = errors.New("viewer: no render target")
	// ErrDisposed resolves loads issued or finished after Dispose.
	ErrDisposed = errors.New("viewer: disposed")
	// ErrSuperseded resolves a remote load overtaken by a newer request on
	// the same channel.
	ErrSuperseded = errors.New("viewer: load superseded")
)

// LoadError is a failed fetch, decode or layout of a texture source.
type LoadError struct {
	Channel Channel
	Source  string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("viewer: load %s from %s: %v", e.Channel, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
