package errsystem

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrorType struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorType) String() string {
	return e.Code
}

type errSystem struct {
	id         string
	code       ErrorType
	message    string
	err        error
	attributes map[string]any
}

type option func(*errSystem)

// New creates a new error.
func New(code ErrorType, err error, opts ...option) *errSystem {
	res := &errSystem{
		id:         uuid.New().String(),
		err:        err,
		code:       code,
		attributes: make(map[string]any),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (e *errSystem) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.err.Error())
}

func (e *errSystem) Unwrap() error {
	return e.err
}

// WithUserMessage adds a user-friendly message to the error.
func WithUserMessage(message string, args ...any) option {
	return func(e *errSystem) {
		e.message = fmt.Sprintf(message, args...)
	}
}

// WithAttributes adds additional metadata attributes to the error.
func WithAttributes(attributes map[string]any) option {
	return func(e *errSystem) {
		for k, v := range attributes {
			e.attributes[k] = v
		}
	}
}

// WithContextMessage adds some internal context that can help with debugging.
func WithContextMessage(message string) option {
	return func(e *errSystem) {
		e.attributes["message"] = message
	}
}
