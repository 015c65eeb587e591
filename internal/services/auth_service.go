package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/models"
	"github.com/freshmart/storefront/pkg/crypto"
	apperrors "github.com/freshmart/storefront/pkg/errors"
	"github.com/freshmart/storefront/pkg/logger"
	"github.com/freshmart/storefront/pkg/metrics"
)

// DefaultOTPTTL is the lifetime of a verification code.
const DefaultOTPTTL = 5 * time.Minute

// ErrUserNotFound is returned by the OTP operations when no account matches
// the supplied email. Login never returns it; bad email and bad password are
// both reported as invalid credentials there.
var ErrUserNotFound = apperrors.NewNotFound("USER_NOT_FOUND", "User not found")

// AuthOption customises the AuthService.
type AuthOption func(*AuthService)

// WithOTPTTL overrides the verification code lifetime.
func WithOTPTTL(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.otpTTL = d
		}
	}
}

// WithClock injects a custom time source, primarily for tests.
func WithClock(clock func() time.Time) AuthOption {
	return func(s *AuthService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// AuthService orchestrates registration, login, and OTP verification against
// the user store and the email service.
type AuthService struct {
	db     *gorm.DB
	jwt    *auth.JWTService
	email  *EmailService
	otpTTL time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// NewAuthService wires the auth flow with its collaborators. The email
// service may be nil, in which case OTP dispatch is skipped (useful in tests
// that only exercise the store side).
func NewAuthService(db *gorm.DB, jwtSvc *auth.JWTService, email *EmailService, opts ...AuthOption) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if jwtSvc == nil {
		return nil, errors.New("auth service: jwt service is required")
	}

	svc := &AuthService{
		db:     db,
		jwt:    jwtSvc,
		email:  email,
		otpTTL: DefaultOTPTTL,
		now:    time.Now,
		log:    logger.WithModule("auth"),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// RegisterInput captures the details required to register a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterResult is the confirmation payload for register and resend-otp.
// It never carries the password or the code itself.
type RegisterResult struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// UserProfile is the sanitised user view returned from login.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResult bundles the session token with the profile view.
type LoginResult struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// Register creates an account with a fresh OTP challenge and dispatches the
// code by email. The duplicate check here is a fast path; the unique index on
// email is the real guard against concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	ctx = ensureContext(ctx)

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.NewBadRequest("password is required")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&existing).Error
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("auth service: lookup email: %w", err)
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	code, expiry, err := s.newChallenge()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:           email,
		Password:        hashed,
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		IsEmailVerified: false,
		OTP:             &code,
		OTPExpiry:       &expiry,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("auth service: create user: %w", err)
	}

	// The account stands even if the mail bounces: resend-otp is the
	// recovery path for a missed code.
	s.dispatchOTP(ctx, email, code)

	return &RegisterResult{
		Message: "User registered successfully. OTP sent to email.",
		Email:   user.Email,
	}, nil
}

// LoginInput carries credentials plus the optional OTP for unverified users.
type LoginInput struct {
	Email    string
	Password string
	OTP      string
}

// Login authenticates the user and issues a session token. Unverified users
// must supply a valid OTP; the first valid code flips the verification flag.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(input.Email)).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth service: lookup user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, input.Password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		if strings.TrimSpace(input.OTP) == "" {
			return nil, apperrors.ErrOTPRequired
		}

		valid, err := s.checkChallenge(&user, input.OTP)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, apperrors.ErrOTPInvalid
		}

		if err := s.db.WithContext(ctx).
			Model(&user).
			Update("is_email_verified", true).Error; err != nil {
			return nil, fmt.Errorf("auth service: mark verified: %w", err)
		}
		user.IsEmailVerified = true
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: issue token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()

	return &LoginResult{
		Message: "Login successful",
		Token:   token,
		User: UserProfile{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

// VerifyOTP reports whether the supplied code matches the outstanding
// challenge. It is a pure check: the code is not consumed and remains valid
// until it expires or a resend overwrites it.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("auth service: lookup user: %w", err)
	}

	return s.checkChallenge(&user, code)
}

// ResendOTP replaces the outstanding challenge with a fresh code and emails
// it. The previous code is invalidated by the overwrite.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (*RegisterResult, error) {
	ctx = ensureContext(ctx)

	email = strings.TrimSpace(email)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("auth service: lookup user: %w", err)
	}

	code, expiry, err := s.newChallenge()
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"otp":        code,
		"otp_expiry": expiry,
	}).Error; err != nil {
		return nil, fmt.Errorf("auth service: store otp: %w", err)
	}

	if s.email != nil {
		if err := s.email.SendOTPEmail(ctx, user.Email, code); err != nil {
			metrics.OTPEmails.WithLabelValues("failed").Inc()
			return nil, apperrors.Wrap(err, "Failed to send OTP email")
		}
		metrics.OTPEmails.WithLabelValues("sent").Inc()
	}

	return &RegisterResult{
		Message: "OTP sent successfully",
		Email:   user.Email,
	}, nil
}

func (s *AuthService) newChallenge() (string, time.Time, error) {
	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth service: generate otp: %w", err)
	}
	return code, s.now().Add(s.otpTTL), nil
}

// checkChallenge applies the single verification rule shared by VerifyOTP and
// the login gate: the stored code must match and its expiry must be in the
// future at check time.
func (s *AuthService) checkChallenge(user *models.User, code string) (bool, error) {
	if !user.HasPendingOTP() {
		return false, nil
	}
	if *user.OTP != strings.TrimSpace(code) {
		return false, nil
	}
	if user.OTPExpiry.Before(s.now()) {
		return false, nil
	}
	return true, nil
}

// dispatchOTP sends the code best-effort during registration. Failures are
// logged, never propagated: the user record is already persisted and the
// resend endpoint recovers from a lost mail.
func (s *AuthService) dispatchOTP(ctx context.Context, email, code string) {
	if s.email == nil {
		return
	}
	if err := s.email.SendOTPEmail(ctx, email, code); err != nil {
		metrics.OTPEmails.WithLabelValues("failed").Inc()
		s.log.Warn("otp email dispatch failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return
	}
	metrics.OTPEmails.WithLabelValues("sent").Inc()
}
