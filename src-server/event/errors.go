package event

import "fmt"

type ValidationCode string

const (
	CodeUnrecognizedDate ValidationCode = "unrecognized-date"
	CodeTitleTooShort    ValidationCode = "title-too-short"
)

// ValidationError is a user input problem. Its message is the reply text sent
// back to chat, so the user can fix the input and resubmit.
type ValidationError struct {
	Code ValidationCode

	// DateText is set for CodeUnrecognizedDate.
	DateText string
	// TitleLength is set for CodeTitleTooShort.
	TitleLength int
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeUnrecognizedDate:
		return fmt.Sprintf("No se reconoció la fecha %s", e.DateText)
	case CodeTitleTooShort:
		return fmt.Sprintf("¿Un título de %d letras? ¿Me estás cargando?", e.TitleLength)
	default:
		return fmt.Sprintf("entrada inválida (%s)", e.Code)
	}
}

// ConfigurationError is an internal misconfiguration (an event pointing at a
// formatter tag nobody registered). It is fatal to the operation, logged, and
// the user only sees a generic failure.
type ConfigurationError struct {
	FormatterTag string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no formatter registered for tag %q", e.FormatterTag)
}

// NotFoundError is an identity lookup miss.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no existe el evento %d", e.ID)
}

// PersistenceError wraps a store flush failure. It is logged once with a fixed
// marker and never surfaced to the requesting user.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("event store flush failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
