package models

import "time"

// FailedLogin tracks failed login attempts per client IP. One row per IP;
// the counter only grows on failures and the row is deleted on a successful
// login or by the janitor after seven days of inactivity.
type FailedLogin struct {
	IP          string    `gorm:"column:ip;primaryKey"`
	Attempts    int       `gorm:"not null"`
	LastAttempt time.Time `gorm:"column:last_attempt;not null"`
}

func (FailedLogin) TableName() string { return "failed_logins" }
