package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by operations that need a loaded surface.
	ErrNotReady = errors.New("editor: no image loaded")
	// ErrFinished is returned once the session has been saved or closed.
	ErrFinished = errors.New("editor: session finished")
	// ErrUnknownText is returned when a text id is not in the overlay list.
	ErrUnknownText = errors.New("editor: unknown text object")
)

// DecodeError reports a source image that could not be turned into a surface.
// The surface keeps its previous contents when one is returned.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failed export. No bytes are handed to the host when
// one is returned, and the session stays open so the export can be retried.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
