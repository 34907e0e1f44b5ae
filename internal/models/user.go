package models

import "time"

// User is an account row. SessionToken and SessionExpiration are either
// both set or both NULL; logout and the janitor clear them together.
type User struct {
	ID                uint       `gorm:"column:user_id;primaryKey"`
	Username          string     `gorm:"uniqueIndex;not null"`
	PasswordHash      string     `gorm:"column:password;not null"`
	SessionToken      *string    `gorm:"column:session_token"`
	SessionExpiration *time.Time `gorm:"column:session_expiration"`
	RecoveryToken     string     `gorm:"column:recovery_token;not null"`
	LastLogin         time.Time  `gorm:"column:last_login;not null"`
}

func (User) TableName() string { return "users" }

// HasActiveSession reports whether both session fields are populated.
func (user *User) HasActiveSession() bool {
	return user.SessionToken != nil && user.SessionExpiration != nil
}
