package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/models"
	"github.com/freshmart/storefront/pkg/mail"
)

// recordingMailer captures outbound messages instead of delivering them.
type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	err      error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]mail.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func newTestJWTService(t *testing.T, clock func() time.Time) *auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret",
		Issuer: "storefront-test",
		Clock:  clock,
	})
	require.NoError(t, err)
	return svc
}

func newTestEmailService(t *testing.T, mailer mail.Mailer) *EmailService {
	t.Helper()

	svc, err := NewEmailService(mailer, "noreply@freshmart.test", 5*time.Minute)
	require.NoError(t, err)
	return svc
}

// storedUser reloads the user row, including the columns hidden from JSON.
func storedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.Where("email = ?", email).Take(&user).Error)
	return &user
}
