package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pickaname/internal/db"
	"pickaname/internal/models"
	"pickaname/internal/security"
)

func openTestDB(t *testing.T) (*gorm.DB, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "pickaname-test.db"))
	require.NoError(t, err)
	return database, db.NewRepositories(database)
}

// testClock is a mutable time source shared between services under test.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (clock *testClock) Now() time.Time { return clock.current }

func (clock *testClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

func createTestUser(t *testing.T, repos *db.Repositories, username string, password string) models.User {
	t.Helper()

	passwordHash, err := security.HashPassword(password)
	require.NoError(t, err)
	recoveryToken, err := security.HexToken(RecoveryTokenBytes)
	require.NoError(t, err)

	user := models.User{
		Username:      username,
		PasswordHash:  passwordHash,
		RecoveryToken: recoveryToken,
		LastLogin:     time.Now(),
	}
	require.NoError(t, repos.Users.Create(&user))
	return user
}
