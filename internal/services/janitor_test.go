package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pickaname/internal/models"
)

func TestSweepClearsElapsedSessions(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	clock := newTestClock()
	sessions := NewSessionService(repos.Users).WithClock(clock.Now)
	janitor := NewJanitor(database, zerolog.Nop(), time.Hour).WithClock(clock.Now)

	lapsed := createTestUser(t, repos, "lapsed", "long-password")
	fresh := createTestUser(t, repos, "fresh", "long-password")

	_, _, err := sessions.IssueToken(lapsed.ID)
	require.NoError(t, err)
	clock.Advance(SessionTTL + time.Minute)
	freshToken, _, err := sessions.IssueToken(fresh.ID)
	require.NoError(t, err)

	janitor.Sweep(context.Background())

	cleaned, err := repos.Users.FindByID(lapsed.ID)
	require.NoError(t, err)
	require.Nil(t, cleaned.SessionToken)
	require.Nil(t, cleaned.SessionExpiration)

	_, err = sessions.Validate(freshToken, fresh.ID)
	require.NoError(t, err)
}

func TestSweepDropsStaleFailedLogins(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	clock := newTestClock()
	guard := NewLockoutGuard(repos.FailedLogins).WithClock(clock.Now)
	janitor := NewJanitor(database, zerolog.Nop(), time.Hour).WithClock(clock.Now)

	require.NoError(t, guard.RecordFailure("10.2.0.1"))
	clock.Advance(failedLoginRetention + time.Hour)
	require.NoError(t, guard.RecordFailure("10.2.0.2"))

	janitor.Sweep(context.Background())

	_, found, err := repos.FailedLogins.Find("10.2.0.1")
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = repos.FailedLogins.Find("10.2.0.2")
	require.NoError(t, err)
	require.True(t, found)
}

func TestSweepRemovesIdleAccountsAndOrphans(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	clock := newTestClock()
	janitor := NewJanitor(database, zerolog.Nop(), time.Hour).WithClock(clock.Now)
	groups := NewGroupService(repos.Groups)

	// Idle for four months without a group: swept. The grouped partner with
	// the same idle time stays until the one-year cutoff.
	ungrouped := createTestUser(t, repos, "driftwood", "long-password")
	grouped := createTestUser(t, repos, "anchored", "long-password")
	ancient := createTestUser(t, repos, "fossil", "long-password")

	_, err := groups.Create(grouped.ID)
	require.NoError(t, err)

	idle := clock.Now().Add(-4 * 30 * 24 * time.Hour)
	veryIdle := clock.Now().Add(-13 * 30 * 24 * time.Hour)
	require.NoError(t, database.Model(&models.User{}).Where("user_id IN ?",
		[]uint{ungrouped.ID, grouped.ID}).Update("last_login", idle).Error)
	require.NoError(t, database.Model(&models.User{}).Where("user_id = ?",
		ancient.ID).Update("last_login", veryIdle).Error)

	require.NoError(t, repos.Preferences.AddLikes(ungrouped.ID, []uint{1}))

	janitor.Sweep(context.Background())

	_, err = repos.Users.FindByID(ungrouped.ID)
	require.Error(t, err)
	_, err = repos.Users.FindByID(ancient.ID)
	require.Error(t, err)
	_, err = repos.Users.FindByID(grouped.ID)
	require.NoError(t, err)

	// The swept account's ratings went with it.
	likes, err := repos.Preferences.LikedAmong(ungrouped.ID, []uint{1})
	require.NoError(t, err)
	require.Empty(t, likes)
}
