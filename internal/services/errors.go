package services

import (
	"errors"
	"fmt"
)

// Auth flow error taxonomy. Every one of these is recoverable at the client
// and maps to a distinct machine-readable reason, so the UI can tell "wrong
// code, try again" apart from "code expired, resend". Only storage failures
// fall outside this set and surface as generic 5xx.
var (
	// ErrDelivery: the SMS collaborator was unreachable or rejected the send.
	// The challenge is rolled back, so retrying means requesting a new code.
	ErrDelivery = errors.New("otp delivery failed")

	// ErrChallengeNotFound: no active challenge for the mobile number
	// (never issued, already consumed, or superseded)
	ErrChallengeNotFound = errors.New("no active verification for this number")

	// ErrChallengeExpired: the code was issued but its TTL has passed
	ErrChallengeExpired = errors.New("verification code has expired")

	// ErrCodeMismatch: an active challenge exists but the code is wrong
	ErrCodeMismatch = errors.New("incorrect verification code")

	// ErrRateLimited: too many sends or verify attempts in a short window
	ErrRateLimited = errors.New("too many requests, please wait and retry")
)

// ValidationError rejects a malformed payload before any side effect.
// Fields maps field name to a human-readable problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
