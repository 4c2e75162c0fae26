package speech

import "errors"

// Error definitions for the speech package.
var (
	ErrNotFound          = errors.New("speech engine not found in registry")
	ErrAlreadyRegistered = errors.New("speech engine is already registered in the registry")
	ErrEmptyOutput       = errors.New("speech engine produced no audio")
	ErrEnginePanic       = errors.New("speech engine panicked")
)
