package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateRejectsUnknownUser(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	sessions := NewSessionService(repos.Users)

	_, err := sessions.Validate("feedface", 999)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsUserWithoutSession(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	sessions := NewSessionService(repos.Users)
	user := createTestUser(t, repos, "nosession", "long-password")

	_, err := sessions.Validate("feedface", user.ID)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsTokenMismatch(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	sessions := NewSessionService(repos.Users)
	user := createTestUser(t, repos, "mismatch", "long-password")

	_, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	_, err = sessions.Validate("0000000000000000000000000000000000000000", user.ID)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateReportsExpiry(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	clock := newTestClock()
	sessions := NewSessionService(repos.Users).WithClock(clock.Now)
	user := createTestUser(t, repos, "expiring", "long-password")

	token, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	clock.Advance(SessionTTL - time.Second)
	identity, err := sessions.Validate(token, user.ID)
	require.NoError(t, err)
	require.Equal(t, "expiring", identity.Username)

	// The expiration instant itself is already expired.
	clock.Advance(time.Second)
	_, err = sessions.Validate(token, user.ID)
	require.ErrorIs(t, err, ErrExpiredSession)
}

func TestIssueTokenInvalidatesPreviousSession(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	sessions := NewSessionService(repos.Users)
	user := createTestUser(t, repos, "singleactive", "long-password")

	first, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)
	second, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Len(t, second, 2*SessionTokenBytes)

	_, err = sessions.Validate(first, user.ID)
	require.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Validate(second, user.ID)
	require.NoError(t, err)
}

func TestRenewIsNoopWhileTokenFresh(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	clock := newTestClock()
	sessions := NewSessionService(repos.Users).WithClock(clock.Now)
	user := createTestUser(t, repos, "renewer", "long-password")

	token, expiration, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	renewed, renewedExpiration, err := sessions.Renew(user.ID)
	require.NoError(t, err)
	require.Equal(t, token, renewed)
	require.Equal(t, expiration.Unix(), renewedExpiration.Unix())
}

func TestRenewReissuesOncePastThreshold(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	clock := newTestClock()
	sessions := NewSessionService(repos.Users).WithClock(clock.Now)
	user := createTestUser(t, repos, "reissue", "long-password")

	token, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	renewed, _, err := sessions.Renew(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, token, renewed)

	_, err = sessions.Validate(token, user.ID)
	require.ErrorIs(t, err, ErrInvalidSession)
	_, err = sessions.Validate(renewed, user.ID)
	require.NoError(t, err)
}

func TestRenewReissuesAfterExpiry(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	clock := newTestClock()
	sessions := NewSessionService(repos.Users).WithClock(clock.Now)
	user := createTestUser(t, repos, "lapsed", "long-password")

	token, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	clock.Advance(SessionTTL + time.Hour)
	renewed, _, err := sessions.Renew(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, token, renewed)

	_, err = sessions.Validate(renewed, user.ID)
	require.NoError(t, err)
}

func TestLogoutClearsStoredSession(t *testing.T) {
	t.Parallel()

	_, repos := openTestDB(t)
	sessions := NewSessionService(repos.Users)
	user := createTestUser(t, repos, "leaver", "long-password")

	token, _, err := sessions.IssueToken(user.ID)
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(user.ID))

	_, err = sessions.Validate(token, user.ID)
	require.ErrorIs(t, err, ErrInvalidSession)

	stored, err := repos.Users.FindByID(user.ID)
	require.NoError(t, err)
	require.Nil(t, stored.SessionToken)
	require.Nil(t, stored.SessionExpiration)
}
