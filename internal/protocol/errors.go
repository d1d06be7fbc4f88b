package protocol

import (
	"errors"
	"fmt"
)

// Error represents a failure in parameter generation or round execution.
//
// These are caller-recoverable conditions (bad bit width, unlucky
// non-positive parameter draw, entropy source failure). Degenerate
// moduli reaching the arithmetic layer are a programming-contract
// violation and panic there instead; see neutro.Number.PowMod.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Param names the offending parameter, when one exists ("p", "g").
	Param string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes protocol errors.
type ErrorCode string

const (
	// ErrCodeNonPositiveParam indicates a generated public parameter
	// failed the neutrosophic positivity test. The draw is never retried
	// internally; the caller must re-invoke generation.
	ErrCodeNonPositiveParam ErrorCode = "NON_POSITIVE_PARAM"

	// ErrCodeBadBitSize indicates a non-positive bit width.
	ErrCodeBadBitSize ErrorCode = "BAD_BIT_SIZE"

	// ErrCodeSourceFailure indicates the randomness source failed.
	ErrCodeSourceFailure ErrorCode = "SOURCE_FAILURE"
)

func (e *Error) Error() string {
	msg := e.Message
	if e.Param != "" {
		msg = fmt.Sprintf("%s (parameter %q)", msg, e.Param)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a protocol *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == code
}
