// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGame is returned by LoadGame when the GameInfo does not name a game.
	ErrNoGame = errors.New("no game detected")

	// ErrNotFound is returned when a requested block or resource is missing.
	ErrNotFound = errors.New("not found")

	errNotReadable = errors.New("masked stream: source is not readable")
	errNotWritable = errors.New("masked stream: source is not writable")
	errNotSeekable = errors.New("masked stream: source is not seekable")
)

// FormatError reports a malformed container. Offset is the absolute offset of
// the offending block header.
type FormatError struct {
	Offset int64
	Tag    string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("malformed container at 0x%X: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed container at 0x%X (%q): %s", e.Offset, e.Tag, e.Reason)
}

// EncodeError wraps a codec failure with the resource it was encoding.
// Object is -1 for a room background.
type EncodeError struct {
	Room   int
	Object int
	Image  int
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Object < 0 {
		return fmt.Sprintf("encode room %d background image %d: %v", e.Room, e.Image, e.Err)
	}
	return fmt.Sprintf("encode room %d object %d image %d: %v", e.Room, e.Object, e.Image, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
