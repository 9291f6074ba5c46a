package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a request carries neither prompt text
	// nor an upstream payload.
	ErrEmptyPrompt = errors.New("prompt text cannot be empty")

	// ErrEmptyModel is returned when a request names no model.
	ErrEmptyModel = errors.New("model id cannot be empty")
)
