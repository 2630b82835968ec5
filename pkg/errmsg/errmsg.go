// Package errmsg holds the coded error value returned by resource-file
// error lookups. Tools that share a resources file use the code to key
// their exit statuses and the message for user-facing output.
package errmsg

import "fmt"

// Error pairs a user-facing message with a numeric error code.
type Error struct {
	Code int
	Msg  string
}

// New creates a coded error.
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// WithArgs returns a copy of the error with the message formatted using
// fmt.Sprintf-style arguments.
func (e *Error) WithArgs(args ...interface{}) *Error {
	return &Error{Code: e.Code, Msg: fmt.Sprintf(e.Msg, args...)}
}
