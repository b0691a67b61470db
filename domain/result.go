package domain

import "errors"

// Result is the envelope every adapter operation returns. Exactly one of
// Data (OK) or Error (!OK) is meaningful.
type Result[T any] struct {
	OK    bool
	Data  T
	Error string
	Kind  Kind
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Data: v}
}

// Fail builds a failed result.
func Fail[T any](kind Kind, msg string) Result[T] {
	return Result[T]{Kind: kind, Error: msg}
}

// Err returns the failure as an error, or nil when OK.
func (r Result[T]) Err() error {
	if r.OK {
		return nil
	}
	return errors.New(r.Error)
}

// Unit is the payload of operations that return nothing.
type Unit struct{}
