package errcode

import (
	"errors"

	"ddscode-go/drivers/ad983x"
)

// Code is a stable, console-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	UnknownCommand Code = "unknown_command"
	BusFailure     Code = "bus_failure"
	Cancelled      Code = "cancelled"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return MapDriverErr(err)
}

// MapDriverErr maps AD983x driver errors to a Code.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	if errors.Is(err, ad983x.ErrInvalidArgument) {
		return InvalidParams
	}
	var be *ad983x.BusError
	if errors.As(err, &be) {
		return BusFailure
	}
	return Error
}
