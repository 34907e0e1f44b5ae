package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"pickaname/internal/models"
	"pickaname/internal/security"

	"gorm.io/gorm"
)

const (
	// SessionTokenBytes is the entropy of a session token; rendered as hex
	// the token is twice as many characters.
	SessionTokenBytes = 20

	// SessionTTL is the validity window of a token, measured from issuance.
	SessionTTL = 24 * time.Hour

	// renewSkipThreshold keeps renewal a no-op while more than this much of
	// the window remains, so back-to-back renewals do not churn tokens.
	renewSkipThreshold = 23 * time.Hour
)

type SessionUserRepository interface {
	FindByID(userID uint) (models.User, error)
	SetSessionToken(userID uint, token string, expiration time.Time, lastLogin time.Time) error
	ClearSessionToken(userID uint) error
}

// Identity is the result of a successful session validation.
type Identity struct {
	UserID   uint
	Username string
}

// SessionService owns the server-side token lifecycle: validation against
// the stored row, issuance, rolling renewal and logout.
type SessionService struct {
	users SessionUserRepository
	now   func() time.Time
}

func NewSessionService(users SessionUserRepository) *SessionService {
	return &SessionService{users: users, now: time.Now}
}

// WithClock replaces the service's time source; tests use this to move
// through expiration windows without sleeping.
func (service *SessionService) WithClock(now func() time.Time) *SessionService {
	service.now = now
	return service
}

// Validate confirms that the claimed token matches the stored, unexpired
// token of the user. A missing row, a nulled token and a token mismatch all
// fail the same way; only a matching-but-elapsed session reports expiry.
// Read-only: validation never touches the stored session.
func (service *SessionService) Validate(claimedToken string, userID uint) (Identity, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, ErrInvalidSession
	}
	if err != nil {
		return Identity{}, err
	}

	if !user.HasActiveSession() {
		return Identity{}, ErrInvalidSession
	}
	if !user.SessionExpiration.After(service.now()) {
		return Identity{}, ErrExpiredSession
	}
	if subtle.ConstantTimeCompare([]byte(*user.SessionToken), []byte(claimedToken)) != 1 {
		return Identity{}, ErrInvalidSession
	}

	return Identity{UserID: user.ID, Username: user.Username}, nil
}

// IssueToken mints a fresh token valid for SessionTTL and stores it,
// overwriting any previous token in the same statement. Whatever session
// was active before stops validating immediately.
func (service *SessionService) IssueToken(userID uint) (string, time.Time, error) {
	token, err := security.HexToken(SessionTokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}

	now := service.now()
	expiration := now.Add(SessionTTL)
	if err := service.users.SetSessionToken(userID, token, expiration, now); err != nil {
		return "", time.Time{}, err
	}
	return token, expiration, nil
}

// Renew reissues the user's token unless more than renewSkipThreshold of
// the current window remains, in which case the stored token is returned
// unchanged. Callers must have validated the session first.
func (service *SessionService) Renew(userID uint) (string, time.Time, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", time.Time{}, ErrInvalidSession
	}
	if err != nil {
		return "", time.Time{}, err
	}

	if user.HasActiveSession() && user.SessionExpiration.After(service.now().Add(renewSkipThreshold)) {
		return *user.SessionToken, *user.SessionExpiration, nil
	}

	return service.IssueToken(userID)
}

// Logout nulls the stored token and expiration together.
func (service *SessionService) Logout(userID uint) error {
	return service.users.ClearSessionToken(userID)
}
