// ABOUTME: Error values reported by the playlist generator
// ABOUTME: Sentinel errors for argument/directory problems and a typed error for write failures

package playlist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArguments is returned when the generator options are unusable
	// (no directory, bad durations, bad output name).
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidDirectory is returned when the image directory does not exist,
	// is not a directory, or cannot be read.
	ErrInvalidDirectory = errors.New("invalid image directory")

	// ErrEmptyDirectory is returned when the directory holds no matching images.
	ErrEmptyDirectory = errors.New("image directory contains no images")

	// ErrOutputBusy is returned when another process holds the output lock.
	ErrOutputBusy = errors.New("output file is being written by another process")
)

// WriteError reports a failure to persist the playlist document
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write playlist %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
