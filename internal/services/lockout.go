package services

import (
	"time"

	"pickaname/internal/models"
)

const (
	// MaxLoginAttempts failed logins from one IP trip the lockout.
	MaxLoginAttempts = 5

	// LockoutDuration is how long the IP stays blocked, measured from its
	// most recent failed attempt.
	LockoutDuration = 10 * time.Minute
)

type FailedLoginRepository interface {
	RecordFailure(ip string, at time.Time) error
	Find(ip string) (models.FailedLogin, bool, error)
	Clear(ip string) error
}

// LockoutGuard tracks failed login attempts per client IP in the ledger and
// blocks further attempts once the threshold is reached. The counter is
// never reset by time alone: once the window elapses attempts simply stop
// being blocked, and only a successful login (or the janitor) clears the row.
type LockoutGuard struct {
	ledger FailedLoginRepository
	now    func() time.Time
}

func NewLockoutGuard(ledger FailedLoginRepository) *LockoutGuard {
	return &LockoutGuard{ledger: ledger, now: time.Now}
}

func (guard *LockoutGuard) WithClock(now func() time.Time) *LockoutGuard {
	guard.now = now
	return guard
}

// RecordFailure bumps the IP's counter; the underlying upsert is a single
// statement, so concurrent failures from one IP all land.
func (guard *LockoutGuard) RecordFailure(ip string) error {
	return guard.ledger.RecordFailure(ip, guard.now())
}

// CheckLocked reports whether the IP is currently blocked and, if so, how
// long until the window reopens.
func (guard *LockoutGuard) CheckLocked(ip string) (time.Duration, bool, error) {
	record, found, err := guard.ledger.Find(ip)
	if err != nil {
		return 0, false, err
	}
	if !found || record.Attempts < MaxLoginAttempts {
		return 0, false, nil
	}

	remaining := record.LastAttempt.Add(LockoutDuration).Sub(guard.now())
	if remaining <= 0 {
		return 0, false, nil
	}
	return remaining, true, nil
}

// Clear deletes the IP's failure record; called only after a successful
// login, so the next failure starts counting from one again.
func (guard *LockoutGuard) Clear(ip string) error {
	return guard.ledger.Clear(ip)
}
