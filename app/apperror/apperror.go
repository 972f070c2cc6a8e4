// Package apperror carries the typed error codes services raise and
// controllers translate into HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeDuplicateResource Code = "DUPLICATE_RESOURCE"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeAlreadyPaired     Code = "ALREADY_PAIRED"
	CodePairNotConnected  Code = "PAIR_NOT_CONNECTED"
)

type Error struct {
	Code   Code
	Detail string
}

func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// CodeOf returns the code carried by err, or "" for errors that did not
// originate from a service validation failure.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
