package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"pickaname/internal/models"
	"pickaname/internal/security"

	"gorm.io/gorm"
)

// RecoveryTokenBytes is the entropy of the account recovery token handed to
// the user at registration.
const RecoveryTokenBytes = 8

type AuthUserRepository interface {
	FindByUsername(username string) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type GroupCodeSource interface {
	GroupCodes(userID uint) (map[string]string, error)
}

// AuthService orchestrates registration, the lockout-gated login flow and
// account recovery. Session issuance is delegated to SessionService and
// brute-force accounting to LockoutGuard.
type AuthService struct {
	users    AuthUserRepository
	groups   GroupCodeSource
	sessions *SessionService
	lockout  *LockoutGuard
}

func NewAuthService(users AuthUserRepository, groups GroupCodeSource, sessions *SessionService, lockout *LockoutGuard) *AuthService {
	return &AuthService{users: users, groups: groups, sessions: sessions, lockout: lockout}
}

type LoginResult struct {
	UserID       uint
	Username     string
	SessionToken string
	GroupCodes   map[string]string
}

type RegisterResult struct {
	UserID        uint
	Username      string
	SessionToken  string
	RecoveryToken string
}

// NormalizeUsername lowercases and trims a username; usernames are stored
// and compared in this form everywhere.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Login runs the credential check behind the lockout guard. The lockout is
// consulted before and after the username lookup so a locked IP gets the
// same answer whether or not the username exists, and failed attempts are
// recorded for unknown usernames and wrong passwords alike.
func (service *AuthService) Login(username string, password string, ip string) (LoginResult, error) {
	username = NormalizeUsername(username)

	user, lookupErr := service.users.FindByUsername(username)
	userMissing := errors.Is(lookupErr, gorm.ErrRecordNotFound)
	if lookupErr != nil && !userMissing {
		return LoginResult{}, lookupErr
	}

	if err := service.failIfLocked(ip); err != nil {
		return LoginResult{}, err
	}

	if userMissing {
		// Answer exactly like the wrong-password branch, even on the
		// attempt that crosses the threshold; the lock shows only from the
		// next attempt on.
		if err := service.lockout.RecordFailure(ip); err != nil {
			return LoginResult{}, err
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	// Concurrent failures may have tripped the guard since the first check.
	if err := service.failIfLocked(ip); err != nil {
		return LoginResult{}, err
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !match {
		if err := service.lockout.RecordFailure(ip); err != nil {
			return LoginResult{}, err
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := service.lockout.Clear(ip); err != nil {
		return LoginResult{}, err
	}

	token, _, err := service.sessions.Renew(user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	groupCodes, err := service.groups.GroupCodes(user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		UserID:       user.ID,
		Username:     user.Username,
		SessionToken: token,
		GroupCodes:   groupCodes,
	}, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (service *AuthService) failIfLocked(ip string) error {
	remaining, locked, err := service.lockout.CheckLocked(ip)
	if err != nil {
		return err
	}
	if locked {
		return &RateLimitedError{Remaining: remaining}
	}
	return nil
}

// Register creates the account and logs the new user in right away. The
// returned recovery token is shown exactly once; only the user keeps it.
func (service *AuthService) Register(username string, password string) (RegisterResult, error) {
	username = NormalizeUsername(username)

	if _, err := service.users.FindByUsername(username); err == nil {
		return RegisterResult{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RegisterResult{}, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return RegisterResult{}, err
	}
	recoveryToken, err := security.HexToken(RecoveryTokenBytes)
	if err != nil {
		return RegisterResult{}, err
	}

	user := models.User{
		Username:      username,
		PasswordHash:  passwordHash,
		RecoveryToken: recoveryToken,
		LastLogin:     time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		// The unique index on username is the last line of defense against
		// two concurrent registrations of the same name.
		if isUniqueViolation(err) {
			return RegisterResult{}, ErrUsernameTaken
		}
		return RegisterResult{}, err
	}

	token, _, err := service.sessions.IssueToken(user.ID)
	if err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{
		UserID:        user.ID,
		Username:      user.Username,
		SessionToken:  token,
		RecoveryToken: recoveryToken,
	}, nil
}

// Recover replaces the password of a user presenting the recovery token
// handed out at registration.
func (service *AuthService) Recover(username string, recoveryToken string, newPassword string) error {
	username = NormalizeUsername(username)
	recoveryToken = strings.ToLower(strings.TrimSpace(recoveryToken))

	user, err := service.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(user.RecoveryToken), []byte(recoveryToken)) != 1 {
		return ErrRecoveryMismatch
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(user.ID, passwordHash)
}
