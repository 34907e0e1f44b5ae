package services

import (
	"errors"
	"fmt"
	"time"
)

// Terminal outcomes of the auth and matching flows. The HTTP layer maps
// these to status codes; anything not listed here is treated as an
// infrastructure failure.
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidSession covers a missing cookie, an unknown user, a nulled
	// token and a token mismatch alike; no distinction is leaked.
	ErrInvalidSession = errors.New("invalid session")

	// ErrExpiredSession means the stored token matched a real session whose
	// validity window has elapsed.
	ErrExpiredSession = errors.New("expired session")

	// ErrMalformedPayload means the cookie value could not be parsed into a
	// session payload at all.
	ErrMalformedPayload = errors.New("malformed session payload")

	ErrUsernameTaken    = errors.New("username is already taken")
	ErrUserNotFound     = errors.New("username not found")
	ErrRecoveryMismatch = errors.New("recovery code does not match")

	ErrGroupNotFound  = errors.New("group does not exist")
	ErrGroupLimit     = errors.New("user already has 2 groups")
	ErrGroupFull      = errors.New("group already has 2 users")
	ErrNotGroupMember = errors.New("user is not in this group")
)

// RateLimitedError reports an IP lockout together with the seconds left
// until the window reopens.
type RateLimitedError struct {
	Remaining time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("ip locked for %d seconds", e.RemainingSeconds())
}

func (e *RateLimitedError) RemainingSeconds() int {
	seconds := int(e.Remaining.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
