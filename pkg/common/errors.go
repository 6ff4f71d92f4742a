package common

import "github.com/cockroachdb/errors"

var (
	ErrDuplicate           = errors.New("duplicate message")
	ErrMediaUnavailable    = errors.New("media unavailable")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrNotConfigured       = errors.New("assistant is not configured")
	ErrRateLimited         = errors.New("upstream rate limited")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnsupportedMessage  = errors.New("unsupported message type")
)
