package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSessionNotFound    = errors.New("session not found")
	ErrGenerationInFlight = errors.New("generation already in progress for this session")
	ErrJSONParse          = errors.New("Failed to parse JSON from LLM response")
	ErrInvalidStructure   = errors.New("Could not generate valid itinerary structure")
	ErrDatabaseError      = errors.New("database error")
)

// GenerationError is returned when the text generator fails or its output can never
// be turned into a usable itinerary.
type GenerationError struct {
	Message string
	Err     error
}

// NewGenerationError wraps err, reusing an existing GenerationError in the chain.
func NewGenerationError(err error) *GenerationError {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	msg := "Something went wrong during generation"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &GenerationError{Message: msg, Err: err}
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
