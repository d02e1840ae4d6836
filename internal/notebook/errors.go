// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the notebook path does not name an existing file.
	ErrNotFound = errors.New("notebook not found")
	// ErrParse reports that the file is not a well-formed notebook document.
	ErrParse = errors.New("invalid notebook")
)

// Error wraps a load failure with the path it concerns.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns both the kind and the underlying cause so errors.Is matches
// either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(path string, err error) error {
	return &Error{Kind: ErrNotFound, Path: path, Err: err}
}
