package command

import (
	"fmt"
	"strconv"
	"time"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the typed failure returned by command handlers. It wraps a return
// code (of type RetCode) and the exact protocol-facing message text.
//
// Error() returns the message verbatim, without any prefix or decoration,
// so that callers asserting on protocol error strings see the same text a
// real server would produce.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The protocol-facing error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess        RetCode = iota // 0: Command executed successfully.
	RetCProtocol                      // 1: Malformed arguments or transaction-state violation.
	RetCWrongType                     // 2: Operation against a key holding the wrong kind of value.
	RetCUnknownCommand                // 3: Command name is not registered at this layer.
)

// --------------------------------------------------------------------------
// Canned Protocol Errors
// --------------------------------------------------------------------------

// ErrDiscardWithoutMulti is returned when DISCARD is issued outside a transaction.
func ErrDiscardWithoutMulti() *Error {
	return NewError(RetCProtocol, "ERR DISCARD without MULTI")
}

// ErrExecWithoutMulti is returned when EXEC is issued outside a transaction.
func ErrExecWithoutMulti() *Error {
	return NewError(RetCProtocol, "ERR EXEC without MULTI")
}

// ErrNestedMulti is returned when MULTI is issued inside an open transaction.
func ErrNestedMulti() *Error {
	return NewError(RetCProtocol, "ERR MULTI calls can not be nested")
}

// ErrNotAnInteger is returned for any argument that must parse as an integer
// but does not (timestamps, counters, expiry seconds).
func ErrNotAnInteger() *Error {
	return NewError(RetCProtocol, "ERR value is not an integer or out of range")
}

// ErrTimeoutNotAnInteger is the timeout-argument variant of ErrNotAnInteger.
// It is part of the contract blocking-command collaborators must honor.
func ErrTimeoutNotAnInteger() *Error {
	return NewError(RetCProtocol, "ERR timeout is not an integer or out of range")
}

// ErrTimeoutNegative is returned for syntactically valid but negative timeouts.
func ErrTimeoutNegative() *Error {
	return NewError(RetCProtocol, "ERR timeout is negative")
}

// ErrSameObjects is returned by rename/renamenx when source and destination
// name the same key.
func ErrSameObjects() *Error {
	return NewError(RetCProtocol, "ERR source and destination objects are the same")
}

// ErrNoSuchKey is returned by commands that require an existing key.
func ErrNoSuchKey() *Error {
	return NewError(RetCProtocol, "ERR no such key")
}

// ErrIndexOutOfRange is returned by positional list commands.
func ErrIndexOutOfRange() *Error {
	return NewError(RetCProtocol, "ERR index out of range")
}

// ErrInvalidDBIndex is returned by select for a negative database index.
func ErrInvalidDBIndex() *Error {
	return NewError(RetCProtocol, "ERR invalid DB index")
}

// ErrWrongType is returned when a value-family command touches a key holding
// a different value variant.
func ErrWrongType() *Error {
	return NewError(RetCWrongType, "WRONGTYPE Operation against a key holding the wrong kind of value")
}

// ErrUnknownCommand is returned for names no layer handles (including names
// the facade deliberately withholds).
func ErrUnknownCommand(name string) *Error {
	return NewError(RetCUnknownCommand, fmt.Sprintf("ERR unknown command '%s'", name))
}

// ErrWrongArgCount is returned when a handler receives the wrong number of
// arguments.
func ErrWrongArgCount(name string) *Error {
	return NewError(RetCProtocol, fmt.Sprintf("ERR wrong number of arguments for '%s' command", name))
}

// --------------------------------------------------------------------------
// Argument Parsing Helpers
// --------------------------------------------------------------------------

// ParseInt parses a base-10 integer argument and maps failure to the exact
// protocol error text.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrNotAnInteger()
	}
	return n, nil
}

// ParseTimeout validates a timeout argument on behalf of the blocking-command
// collaborators. The core itself has no blocking commands, but the error
// contract is shared with them.
func ParseTimeout(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrTimeoutNotAnInteger()
	}
	if n < 0 {
		return 0, ErrTimeoutNegative()
	}
	return time.Duration(n) * time.Second, nil
}
