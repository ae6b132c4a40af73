package statusboard

import (
	"errors"
)

// The errors in statusboard library can check the error type via errors.Is function.
var (
	// ErrCommunicate is a error for if connect or communicate with the backend was failed.
	ErrCommunicate = errors.New("backend communication error")

	// ErrUnexpectedStatus is a error for if the backend replied with non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidResponse is a error for if the response body was not a valid JSON of the expected shape.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInvalidValue is a error for if an enumerated field had a value out of the known set.
	ErrInvalidValue = errors.New("invalid value")
)
