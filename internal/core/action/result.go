// Package action provides the safe-action wrapper: schema validation,
// panic containment and error normalisation around server-side
// mutations. Every invocation terminates in a well-formed Result.
package action

// Result is the discriminated outcome of one action invocation.
// Exactly one variant is populated: OK=true carries Data, OK=false
// carries Message and, for validation failures, FieldErrors.
type Result[T any] struct {
	OK          bool                `json:"ok"`
	Data        T                   `json:"data,omitempty"`
	Message     string              `json:"message,omitempty"`
	FieldErrors map[string][]string `json:"field_errors,omitempty"`
}

// Success wraps a payload in the success variant.
func Success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Failure builds the failure variant with a user-facing message.
func Failure[T any](message string) Result[T] {
	return Result[T]{OK: false, Message: message}
}

// Invalid builds the failure variant for schema violations.
func Invalid[T any](message string, fields map[string][]string) Result[T] {
	return Result[T]{OK: false, Message: message, FieldErrors: fields}
}
