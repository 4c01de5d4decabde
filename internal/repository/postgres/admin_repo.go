package postgres

import (
	"context"
	"database/sql"
	"errors"

	"churchconnect/internal/domain"
)

const adminColumns = `id, username, email, password_hash, is_active, last_login, created_at, updated_at`

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	rec := a.Record()
	query := `
		INSERT INTO admins (username, email, password_hash, is_active, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rec.Username, rec.Email, rec.PasswordHash, rec.IsActive, rec.LastLogin, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return domain.RestoreAdmin(rec)
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username)
}

func (r *adminRepository) Update(ctx context.Context, a *domain.Admin) error {
	if err := a.Validate(); err != nil {
		return err
	}
	rec := a.Record()
	query := `
		UPDATE admins
		SET username = $1, email = $2, password_hash = $3, is_active = $4, last_login = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query,
		rec.Username, rec.Email, rec.PasswordHash, rec.IsActive, rec.LastLogin, rec.UpdatedAt, rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var (
		rec       domain.AdminRecord
		lastLogin sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&rec.ID, &rec.Username, &rec.Email,
		&rec.PasswordHash, &rec.IsActive, &lastLogin, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if lastLogin.Valid {
		rec.LastLogin = &lastLogin.Time
	}
	a, err := domain.RestoreAdmin(rec)
	if err != nil {
		return nil, invalidRow("admin", rec.ID, err)
	}
	return a, nil
}
