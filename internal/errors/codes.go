// Package errors provides structured error handling for the game engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeIDNotFound indicates a referenced player id does not exist.
	CodeIDNotFound Code = "ID_NOT_FOUND"

	// CodeInvalidRequest covers all rule violations: wrong phase, match
	// concluded, unresolved reward pending, card unavailable, or a reward
	// choice that was never offered.
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// CodeMessageUndecodable indicates a malformed or unrecognized payload.
	CodeMessageUndecodable Code = "MESSAGE_UNDECODABLE"
)
