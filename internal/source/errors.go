package source

import "errors"

var (
	// ErrUnknownFormat is returned for an input format name other than
	// auto, json or sarif.
	ErrUnknownFormat = errors.New("unknown input format")

	// ErrInvalidDocument is returned when an input cannot be decoded.
	ErrInvalidDocument = errors.New("invalid input document")
)
