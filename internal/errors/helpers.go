package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsDesync checks if an error is a stale tick error
func IsDesync(err error) bool {
	return GetCode(err) == CodeDesync
}

// IsIllegalMove checks if an error is an illegal move error
func IsIllegalMove(err error) bool {
	return GetCode(err) == CodeIllegalMove
}

// IsCombatActive checks if an error reports an unresolved combat
func IsCombatActive(err error) bool {
	return GetCode(err) == CodeCombatActive
}

// IsNoActiveCombat checks if an error reports a missing or resolved combat
func IsNoActiveCombat(err error) bool {
	return GetCode(err) == CodeNoActiveCombat
}

// IsRecoverable reports whether the client can recover by refetching the
// canonical save and retrying from fresh state.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case CodeDesync, CodeIllegalMove, CodeCombatActive, CodeNoActiveCombat, CodeFailedPrecondition:
		return true
	default:
		return false
	}
}
