package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrBackendUnavailable = errors.New("generation backend unavailable")
	ErrBackendError       = errors.New("generation backend error")
	ErrNoCandidates       = errors.New("no surviving candidates")
)
