package boarderr

import (
	"fmt"
)

// BoardError is the error type of statusboard.
//
// Please use errors.Is or errors.Unwrap if you want to know what kind of error is it.
type BoardError struct {
	kind    error
	from    error
	message string
}

// New creates a new BoardError.
func New(kind error, from error, format string, args ...interface{}) BoardError {
	msg := fmt.Sprintf(format, args...)
	if from != nil {
		if msg != "" {
			msg += ": "
		}
		msg += from.Error()
	}

	return BoardError{
		kind:    kind,
		from:    from,
		message: msg,
	}
}

// Error implements error interface.
func (e BoardError) Error() string {
	return e.message
}

// Unwrap implement for errors.Unwrap.
func (e BoardError) Unwrap() error {
	return e.from
}

// Is implement for errors.Is.
func (e BoardError) Is(err error) bool {
	return e.kind == err
}
