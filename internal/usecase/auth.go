package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/email"
	"github.com/ErlanBelekov/storefront-api/internal/otp"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore tracks issued access tokens and the blacklist of revoked
// ones. A token authenticates iff it is stored and not blacklisted.
type SessionStore interface {
	Insert(ctx context.Context, token, userID string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthUsecase struct {
	users    repository.UserRepository
	txm      repository.TxManager
	sessions SessionStore
	email    email.Sender
	newCode  func() (string, error)
	jwtKey   []byte
	jwtTTL   time.Duration
	otpTTL   time.Duration
}

func NewAuthUsecase(
	users repository.UserRepository,
	txm repository.TxManager,
	sessions SessionStore,
	emailSender email.Sender,
	jwtKey []byte,
	jwtTTL, otpTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		txm:      txm,
		sessions: sessions,
		email:    emailSender,
		newCode:  otp.NewCode,
		jwtKey:   jwtKey,
		jwtTTL:   jwtTTL,
		otpTTL:   otpTTL,
	}
}

// Login verifies the credentials, signs an access token bound to
// {user id, role}, and inserts it into the session store.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", nil, fmt.Errorf("sign jwt: %w", err)
	}

	if err := u.sessions.Insert(ctx, signed, user.ID, u.jwtTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return signed, user, nil
}

// Logout blacklists the token for its remaining lifetime and drops the
// session. Revoking an unknown or already-revoked token fails.
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	blacklisted, err := u.sessions.IsBlacklisted(ctx, token)
	if err != nil {
		return fmt.Errorf("check blacklist: %w", err)
	}
	if blacklisted {
		return domain.ErrSessionInvalid
	}

	exists, err := u.sessions.Exists(ctx, token)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if !exists {
		return domain.ErrSessionInvalid
	}

	if err := u.sessions.Blacklist(ctx, token, u.remainingTTL(token)); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	if err := u.sessions.Remove(ctx, token); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether token is a live session: stored and not
// blacklisted. Signature and expiry checks happen in the HTTP middleware.
func (u *AuthUsecase) IsAuthenticated(ctx context.Context, token string) (bool, error) {
	blacklisted, err := u.sessions.IsBlacklisted(ctx, token)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	if blacklisted {
		return false, nil
	}
	return u.sessions.Exists(ctx, token)
}

// ChangePassword rehashes and persists a new password for userID.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID, password, confirm string) error {
	if password == "" || password != confirm {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.SetPassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// RequestOTP issues a reset code and emails it. A second request inside the
// OTP window is rejected; after the window the new code overwrites the old.
func (u *AuthUsecase) RequestOTP(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if user.Verification != nil && time.Since(user.Verification.CreatedAt) < u.otpTTL {
		return domain.ErrOTPRateLimited
	}

	code, err := u.newCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := u.users.SetVerificationCode(ctx, user.ID, code, time.Now()); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	subject := "Your password reset code"
	body := fmt.Sprintf(
		`<p>Use the code below to reset your password (expires in %d minutes):</p><p><strong>%s</strong></p>`,
		int(u.otpTTL.Minutes()), code,
	)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset code. The code is single-use: both the
// success path and the expiry path clear it, so it can never be replayed.
func (u *AuthUsecase) ResetPassword(ctx context.Context, code, password, confirm string) error {
	if code == "" {
		return domain.ErrCodeInvalid
	}
	if password == "" || password != confirm {
		return domain.ErrPasswordMismatch
	}

	user, err := u.users.FindByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrCodeInvalid
		}
		return fmt.Errorf("find user by code: %w", err)
	}

	if time.Since(user.Verification.CreatedAt) > u.otpTTL {
		if err := u.users.ClearVerificationCode(ctx, user.ID); err != nil {
			return fmt.Errorf("clear expired code: %w", err)
		}
		return domain.ErrCodeExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return u.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
			return fmt.Errorf("set password: %w", err)
		}
		if err := u.users.ClearVerificationCode(ctx, user.ID); err != nil {
			return fmt.Errorf("clear code: %w", err)
		}
		return nil
	})
}

// remainingTTL extracts how long the token is still cryptographically
// valid. Falls back to the full configured lifetime on any parse trouble.
func (u *AuthUsecase) remainingTTL(token string) time.Duration {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return u.jwtTTL
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return u.jwtTTL
	}
	return time.Until(exp.Time)
}
