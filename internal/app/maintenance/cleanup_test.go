package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/database/testutil"
	"github.com/freshmart/storefront/internal/models"
)

func seedChallengeUser(t *testing.T, db *gorm.DB, email string, expiry time.Time) {
	t.Helper()

	code := "123456"
	user := &models.User{
		Email:     email,
		Password:  "irrelevant-hash",
		OTP:       &code,
		OTPExpiry: &expiry,
	}
	require.NoError(t, db.Create(user).Error)
}

func TestCleanupExpiredOTPs(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedChallengeUser(t, db, "stale@example.com", now.Add(-time.Minute))
	seedChallengeUser(t, db, "fresh@example.com", now.Add(time.Minute))

	affected, err := CleanupExpiredOTPs(context.Background(), db, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	var stale models.User
	require.NoError(t, db.Where("email = ?", "stale@example.com").Take(&stale).Error)
	require.Nil(t, stale.OTP)
	require.Nil(t, stale.OTPExpiry)

	var fresh models.User
	require.NoError(t, db.Where("email = ?", "fresh@example.com").Take(&fresh).Error)
	require.True(t, fresh.HasPendingOTP())
}

func TestCleanerRunOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedChallengeUser(t, db, "old@example.com", now.Add(-time.Hour))

	cleaner := NewCleaner(db, WithNow(func() time.Time { return now }))
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var user models.User
	require.NoError(t, db.Where("email = ?", "old@example.com").Take(&user).Error)
	require.False(t, user.HasPendingOTP())
}

func TestCleanerStartAndStop(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	cleaner := NewCleaner(db, WithOTPSchedule("@every 1h"))
	require.NoError(t, cleaner.Start())

	done := cleaner.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("cleaner did not stop in time")
	}
}

func TestCleanerRejectsBadSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	cleaner := NewCleaner(db, WithOTPSchedule("not-a-spec"))
	require.Error(t, cleaner.Start())
}
