package value

import (
	"errors"
)

// ErrorDisplayValue is shown in place of any value that could not be computed.
const ErrorDisplayValue = "#ERROR"

var (
	ErrAddress    = createError("invalid address", "#REF!")
	ErrUnknown    = createError("unknown formula", "#NAME?")
	ErrMalformed  = createError("malformed formula call", "#CALL!")
	ErrArgument   = createError("invalid argument", "#VALUE!")
	ErrArithmetic = createError("arithmetic error", "#NUM!")
	ErrMode       = createError("unsupported argument mode", "#MODE!")
	ErrSyntax     = createError("invalid expression", "#SYNTAX!")
)

type Error struct {
	message string
	code    string
}

func createError(message, code string) Error {
	return Error{
		message: message,
		code:    code,
	}
}

func (e Error) Error() string {
	return e.message
}

func (e Error) String() string {
	return e.message
}

// Code gives a short identifier of the error kind.
func (e Error) Code() string {
	return e.code
}

// Kind extracts the error kind wrapped in err.
func Kind(err error) (Error, bool) {
	var e Error
	if err == nil {
		return e, false
	}
	ok := errors.As(err, &e)
	return e, ok
}

// Display gives the text to show for err. Every kind collapses to the same
// token.
func Display(err error) string {
	if err == nil {
		return ""
	}
	return ErrorDisplayValue
}
