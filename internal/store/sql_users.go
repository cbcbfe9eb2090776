package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/google/uuid"
)

type sqlUsers struct {
	db *sql.DB
}

func (r *sqlUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u := *user
	u.ID = uuid.NewString()
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, name, email, password_hash, phone, is_active, email_verified, phone_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.IsActive, u.EmailVerified, u.PhoneVerified, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

func (r *sqlUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, is_active, email_verified, phone_verified, created_at
		FROM users WHERE email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *sqlUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, is_active, email_verified, phone_verified, created_at
		FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqlUsers) UpdatePassword(ctx context.Context, email, newHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE email = $2`, newHash, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sqlUsers) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sqlUsers) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
		&user.IsActive, &user.EmailVerified, &user.PhoneVerified, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

type sqlSessions struct {
	db *sql.DB
}

func (r *sqlSessions) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, token, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *sqlSessions) Get(ctx context.Context, token string) (*model.Session, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions WHERE token = $1`

	s := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *sqlSessions) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *sqlSessions) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

type sqlResets struct {
	db *sql.DB
}

func (r *sqlResets) Create(ctx context.Context, code, email string, expiresAt time.Time) error {
	query := `
		INSERT INTO password_resets (code, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, code, email, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *sqlResets) Get(ctx context.Context, code string) (*model.PasswordReset, error) {
	query := `
		SELECT code, email, expires_at, created_at
		FROM password_resets WHERE code = $1`

	reset := &model.PasswordReset{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&reset.Code, &reset.Email, &reset.ExpiresAt, &reset.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reset, nil
}

// Claim deletes the code in one statement; the row acts as the claim, so
// concurrent attempts with the same code resolve to a single winner.
func (r *sqlResets) Claim(ctx context.Context, code string) (bool, error) {
	query := `DELETE FROM password_resets WHERE code = $1 AND expires_at > $2`

	res, err := r.db.ExecContext(ctx, query, code, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *sqlResets) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE expires_at <= $1`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
