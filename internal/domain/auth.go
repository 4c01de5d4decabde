package domain

import (
	"context"
	"time"
)

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Claims identify the admin a token was issued to.
type Claims struct {
	UserID   int64
	Username string
}

type claimsKey struct{}

// ContextWithClaims returns a context carrying the verified token claims.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the authenticated admin's claims, if present.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	return claims, ok
}

// TokenIssuer issues signed tokens for an authenticated admin.
type TokenIssuer interface {
	Issue(claims Claims, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	Admin *Admin
}

// AuthService defines authentication use cases.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Me(ctx context.Context, claims Claims) (*Admin, error)
	// SeedDefaultAdmin creates the given admin when no admin exists yet. It
	// reports whether an account was created.
	SeedDefaultAdmin(ctx context.Context, attrs AdminAttrs) (bool, error)
}
