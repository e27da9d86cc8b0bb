package errors

import "net/http"

// Code represents an error code
type Code string

// Generic error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Run-state error codes. These cover the recoverable failures a client is
// expected to handle by refetching the canonical save rather than retrying
// blindly.
const (
	// CodeDesync means the caller supplied a stale client tick. The server
	// state was not mutated.
	CodeDesync Code = "DESYNC"

	// CodeIllegalMove means the target node is not a reachable, available
	// neighbor of the current node.
	CodeIllegalMove Code = "ILLEGAL_MOVE"

	// CodeCombatActive means the operation requires no active combat but one
	// exists and has not ended.
	CodeCombatActive Code = "COMBAT_ACTIVE"

	// CodeNoActiveCombat means the operation requires an active combat but
	// none exists, or the encounter already resolved.
	CodeNoActiveCombat Code = "NO_ACTIVE_COMBAT"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeIllegalMove:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeDesync, CodeCombatActive:
		return http.StatusConflict
	case CodeFailedPrecondition, CodeNoActiveCombat:
		return http.StatusPreconditionFailed
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
