package errors

import (
	"fmt"
	"strings"
)

var (
	// client faults
	ErrMalformedPayload  = fmt.Errorf("invalid json payload")
	ErrUnauthorized      = fmt.Errorf("unauthorized")
	ErrMissingCredential = fmt.Errorf("%w: api key is missing", ErrUnauthorized)
	ErrUnknownCredential = fmt.Errorf("%w: invalid api key", ErrUnauthorized)
	ErrInvalidPayload    = fmt.Errorf("invalid payload")
	ErrInvalidArg        = fmt.Errorf("invalid arg")
	ErrNotFound          = fmt.Errorf("not found")

	// configuration faults
	ErrSchemaNotFound  = fmt.Errorf("schema not found")
	ErrSchemaMalformed = fmt.Errorf("schema malformed")
	ErrSchemaInvalid   = fmt.Errorf("schema invalid")

	// schema authoring faults, raised when building documentation models
	ErrUnsupportedFieldType = fmt.Errorf("unsupported field type")
	ErrAmbiguousType        = fmt.Errorf("ambiguous field type")
	ErrModelNameCollision   = fmt.Errorf("model name collision")

	// transient
	ErrQueueUnavailable = fmt.Errorf("queue unavailable")
)

// InvalidPayloadError carries every validation error found in a payload, in the order
// they were found.
type InvalidPayloadError struct {
	Errors []string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidPayload, strings.Join(e.Errors, "; "))
}

// Unwrap allows errors.Is(err, ErrInvalidPayload)
func (e *InvalidPayloadError) Unwrap() error {
	return ErrInvalidPayload
}
