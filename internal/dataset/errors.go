package dataset

import (
	"errors"
	"fmt"
)

// NotFoundError reports that an input path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset: %s: not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports malformed input content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dataset: %s: parse failed", e.Path)
	}
	return fmt.Sprintf("dataset: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsParse reports whether err is or wraps a *ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// FailedPath returns the input path named by a loader error, or "".
func FailedPath(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Path
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}
