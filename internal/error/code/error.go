package code

import "errors"

// Coded is an error carrying a numeric error code, raised at the service
// boundary so controllers can map it onto the response envelope.
type Coded struct {
	Code    int
	Message string
	Fields  []string // names of the fields that failed validation, if any
}

func (e *Coded) Error() string {
	return e.Message
}

// NewError creates a coded error with the code's default message.
func NewError(errorCode int) *Coded {
	return &Coded{Code: errorCode, Message: GetMessage(errorCode)}
}

// NewFieldError creates a coded validation error naming the conflicting fields.
func NewFieldError(errorCode int, fields ...string) *Coded {
	return &Coded{Code: errorCode, Message: GetMessage(errorCode), Fields: fields}
}

// CodeOf extracts the error code from err, falling back to ErrUnknown.
func CodeOf(err error) int {
	var coded *Coded
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrUnknown
}

// FieldsOf extracts the failed field names from err, if it is a coded error.
func FieldsOf(err error) []string {
	var coded *Coded
	if errors.As(err, &coded) {
		return coded.Fields
	}
	return nil
}
