package curriculum

import "fmt"

// GenerationError indicates the generator call itself failed or returned
// nothing usable.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("curriculum generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("curriculum generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the generator responded but the response could not
// be accepted as a learning path.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("learning path parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("learning path parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
