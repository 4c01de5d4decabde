package domain

import (
	"context"
	"time"
)

const minPasswordLength = 8

// Admin is a back-office account. Only the password hash is ever stored.
type Admin struct {
	Timestamps
	id           int64
	username     string
	email        string
	passwordHash string
	isActive     bool
	lastLogin    *time.Time
}

// AdminAttrs holds the input for NewAdmin. IsActive defaults to true when nil.
type AdminAttrs struct {
	Username string
	Email    string
	Password string
	IsActive *bool
}

// AdminRecord is the flat storage shape of an Admin.
type AdminRecord struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdminProjection is the JSON view of an Admin. It never includes the hash.
type AdminProjection struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"isActive"`
	LastLogin *string `json:"lastLogin"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// NewAdmin builds an Admin and hashes its password with hasher.
func NewAdmin(attrs AdminAttrs, hasher PasswordHasher, now time.Time) (*Admin, error) {
	a := &Admin{Timestamps: newTimestamps(now), isActive: true}
	if err := a.setUsername(attrs.Username); err != nil {
		return nil, err
	}
	if err := a.setEmail(attrs.Email); err != nil {
		return nil, err
	}
	if err := a.SetPassword(attrs.Password, hasher); err != nil {
		return nil, err
	}
	if attrs.IsActive != nil {
		a.isActive = *attrs.IsActive
	}
	return a, nil
}

// RestoreAdmin rebuilds a stored Admin, re-checking every rule.
func RestoreAdmin(rec AdminRecord) (*Admin, error) {
	a := &Admin{
		Timestamps:   restoreTimestamps(rec.CreatedAt, rec.UpdatedAt),
		id:           rec.ID,
		username:     rec.Username,
		email:        rec.Email,
		passwordHash: rec.PasswordHash,
		isActive:     rec.IsActive,
	}
	if rec.LastLogin != nil {
		t := rec.LastLogin.UTC()
		a.lastLogin = &t
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// SetPassword checks the plaintext and stores its hash. The plaintext is not kept.
func (a *Admin) SetPassword(plain string, hasher PasswordHasher) error {
	if err := validatePassword(plain); err != nil {
		return err
	}
	hash, err := hasher.Hash(plain)
	if err != nil {
		return err
	}
	a.passwordHash = hash
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (a *Admin) CheckPassword(plain string, hasher PasswordHasher) bool {
	if a.passwordHash == "" || plain == "" {
		return false
	}
	return hasher.Compare(a.passwordHash, plain) == nil
}

// RecordLogin sets lastLogin to now.
func (a *Admin) RecordLogin(now time.Time) {
	t := now.UTC()
	a.lastLogin = &t
	a.touch(now)
}

// Deactivate blocks future logins.
func (a *Admin) Deactivate(now time.Time) {
	a.isActive = false
	a.touch(now)
}

// Validate implements Validatable.
func (a *Admin) Validate() error {
	return firstError(
		validateUsername(a.username),
		ValidateEmail(a.email),
		Check("passwordHash", a.passwordHash, Required("password")),
	)
}

// ID returns the store-assigned id.
func (a *Admin) ID() int64 { return a.id }

// Username returns the login name.
func (a *Admin) Username() string { return a.username }

// Email returns the contact address.
func (a *Admin) Email() string { return a.email }

// IsActive reports whether the account may log in.
func (a *Admin) IsActive() bool { return a.isActive }

// LastLogin returns the last successful login time, nil if never.
func (a *Admin) LastLogin() *time.Time { return a.lastLogin }

// Record flattens the Admin for storage.
func (a *Admin) Record() AdminRecord {
	return AdminRecord{
		ID:           a.id,
		Username:     a.username,
		Email:        a.email,
		PasswordHash: a.passwordHash,
		IsActive:     a.isActive,
		LastLogin:    a.lastLogin,
		CreatedAt:    a.createdAt,
		UpdatedAt:    a.updatedAt,
	}
}

// Projection returns the JSON view.
func (a *Admin) Projection() AdminProjection {
	return AdminProjection{
		ID:        a.id,
		Username:  a.username,
		Email:     a.email,
		IsActive:  a.isActive,
		LastLogin: isoTimePtr(a.lastLogin),
		CreatedAt: isoTime(a.createdAt),
		UpdatedAt: isoTime(a.updatedAt),
	}
}

func (a *Admin) setUsername(v string) error {
	if err := validateUsername(v); err != nil {
		return err
	}
	a.username = v
	return nil
}

func (a *Admin) setEmail(v string) error {
	if err := ValidateEmail(v); err != nil {
		return err
	}
	a.email = v
	return nil
}

func validateUsername(v string) error {
	return Check("username", v,
		Required("username"),
		Length("username", 3, 0),
		Matches("username", usernamePattern, "may only contain letters, numbers and underscores"),
	)
}

func validatePassword(v string) error {
	return Check("password", v, Required("password"), Length("password", minPasswordLength, 0))
}

// AdminRepository stores admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *Admin) (*Admin, error)
	GetByID(ctx context.Context, id int64) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	Update(ctx context.Context, a *Admin) error
	Count(ctx context.Context) (int, error)
}
