// ABOUTME: Error values returned by the dataset loader.
// ABOUTME: LoadError wraps every source/format failure; ErrEmptyDataset marks undefined bounds.
package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset indicates the dataset has no records with a payload,
	// so the payload bounds are undefined.
	ErrEmptyDataset = errors.New("dataset has no records")

	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidValue indicates a cell could not be parsed or is out of range.
	ErrInvalidValue = errors.New("invalid value")
)

// LoadError reports a failure to read or decode a dataset source.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load dataset %q", e.Source)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source, reason string, err error) error {
	return &LoadError{Source: source, Reason: reason, Err: err}
}
