package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"churchconnect/internal/domain"
	"churchconnect/internal/metrics"
)

type authService struct {
	admins         domain.AdminRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
	now            func() time.Time
	// dummyHash is compared against when no usable account matches, so a
	// failed login costs one hash comparison either way.
	dummyHash func() (string, error)
}

const dummyPassword = "churchconnect-login-placeholder"

// NewAuthService creates an AuthService. Tokens are issued for tokenExpiry.
func NewAuthService(admins domain.AdminRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, tokenExpiry, timeout time.Duration) domain.AuthService {
	return &authService{
		admins:         admins,
		hasher:         hasher,
		issuer:         issuer,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
		now:            time.Now,
		dummyHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash(dummyPassword)
		}),
	}
}

// Login verifies the credentials and issues a token. Unknown usernames, wrong
// passwords and inactive accounts all return domain.ErrUnauthorized.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError(domain.KindMissingField, "username", "username is required")
	}
	if password == "" {
		return nil, domain.NewValidationError(domain.KindMissingField, "password", "password is required")
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.compareDummy(password)
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if ok := admin.CheckPassword(password, s.hasher); !ok || !admin.IsActive() {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrUnauthorized
	}

	admin.RecordLogin(s.now())
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	token, err := s.issuer.Issue(domain.Claims{UserID: admin.ID(), Username: admin.Username()}, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &domain.LoginResult{Token: token, Admin: admin}, nil
}

func (s *authService) compareDummy(password string) {
	hash, err := s.dummyHash()
	if err != nil {
		return
	}
	_ = s.hasher.Compare(hash, password)
}

// Me returns the admin a verified token belongs to.
func (s *authService) Me(ctx context.Context, claims domain.Claims) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	admin, err := s.admins.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !admin.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	return admin, nil
}

func (s *authService) SeedDefaultAdmin(ctx context.Context, attrs domain.AdminAttrs) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	admin, err := domain.NewAdmin(attrs, s.hasher, s.now())
	if err != nil {
		return false, err
	}
	if _, err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}
	return true, nil
}
