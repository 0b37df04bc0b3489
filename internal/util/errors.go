package util

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDemoReadOnly       = errors.New("demo mode is read-only")
	ErrUnknownPhase       = errors.New("unknown phase")
	ErrNotCompleted       = errors.New("course not completed")
	ErrStepOutOfRange     = errors.New("step out of range")
	ErrGameNotFound       = errors.New("game not found")
	ErrInvalidGameResult  = errors.New("invalid game results")
	ErrInvalidFeedback    = errors.New("invalid feedback")
)
