package services

import (
	"errors"
	"fmt"
)

// ErrUnexpected covers every failure that is not a service-reported error:
// transport failures, unreadable bodies and malformed JSON.
var ErrUnexpected = errors.New("generation: unexpected error")

// ServiceError is a non-2xx answer from the generation service.
// Detail is empty when the body carried no usable string "detail".
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("generation service error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("generation service error (status %d)", e.StatusCode)
}

// HasDetail reports whether the service supplied a message for the operator
func (e *ServiceError) HasDetail() bool {
	return e.Detail != ""
}

// AsServiceError unwraps err into a *ServiceError
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
