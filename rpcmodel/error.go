// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcmodel

import (
	"fmt"
)

// ErrorCode identifies a kind of error. These error codes are NOT used for
// JSON-RPC response errors.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrUnregisteredMethod indicates a method was specified for an
	// unregistered command.
	ErrUnregisteredMethod ErrorCode = iota

	// ErrNumParams indicates a provided parameter count doesn't match the
	// command's expectation.
	ErrNumParams

	// ErrInvalidType indicates a parameter could not be unmarshalled into
	// the type the command expects.
	ErrInvalidType

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnregisteredMethod: "ErrUnregisteredMethod",
	ErrNumParams:          "ErrNumParams",
	ErrInvalidType:        "ErrInvalidType",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a general error. This differs from an RPCError in that
// this error typically is used more by the consumers of the package as
// opposed to the RPCErrors which are intended to be returned to the client
// across the wire via a JSON-RPC Response. The caller can use type assertions
// to determine the specific error and access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// makeError creates an Error given a set of arguments.
func makeError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
