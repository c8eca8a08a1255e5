package core

import "errors"

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrEmptyBucket        = errors.New("empty bucket")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrDegenerateFit      = errors.New("degenerate fit")
	ErrInvalidRange       = errors.New("invalid range")
	ErrUnknownCountry     = errors.New("unknown country")
)
