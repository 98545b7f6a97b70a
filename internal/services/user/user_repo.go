package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user email already taken")
)

const userColumns = `
    id, subscriber_id, email, first_name, last_name, phone, password_hash, role, status,
    failed_login_attempts, locked_until, hashed_refresh_token, reset_token,
    reset_token_expires_at, google_id, last_login_at, last_login_ip, is_active,
    deleted_at, created_at, updated_at
`

// UserRepo handles database operations for subscriber users. Soft-deleted rows
// are excluded from every query.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new subscriber user
func (r *UserRepo) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	query := `
        INSERT INTO subscriber_users (subscriber_id, email, first_name, last_name, phone, password_hash, role, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns

	var u User
	err := r.db.GetContext(ctx, &u, query, req.SubscriberID, req.Email, req.FirstName, req.LastName, req.Phone, req.PasswordHash, req.Role, req.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "subscriber_users_email_key" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by its lower-cased email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM subscriber_users
        WHERE email = $1 AND deleted_at IS NULL
    `

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM subscriber_users
        WHERE id = $1 AND deleted_at IS NULL
    `

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// GetByResetToken retrieves a user by an unexpired password-reset token. The
// expiry check lives in the query so a match means both "token exists" and
// "not expired".
func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (*User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM subscriber_users
        WHERE reset_token = $1 AND reset_token_expires_at > NOW() AND deleted_at IS NULL
    `

	var u User
	err := r.db.GetContext(ctx, &u, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return &u, nil
}

// RecordLoginFailure stores the incremented failed-attempt counter and, once
// the lockout threshold is reached, the lockout deadline.
func (r *UserRepo) RecordLoginFailure(ctx context.Context, id uuid.UUID, attempts int, lockedUntil *time.Time) error {
	query := `
        UPDATE subscriber_users
        SET failed_login_attempts = $2, locked_until = $3, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, attempts, lockedUntil); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}

	return nil
}

// RecordLoginSuccess clears lockout bookkeeping, stamps the login and replaces
// the stored refresh-token hash in one write.
func (r *UserRepo) RecordLoginSuccess(ctx context.Context, id uuid.UUID, refreshTokenHash string, ip string) error {
	query := `
        UPDATE subscriber_users
        SET failed_login_attempts = 0,
            locked_until = NULL,
            hashed_refresh_token = $2,
            last_login_at = NOW(),
            last_login_ip = NULLIF($3, ''),
            updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, refreshTokenHash, ip); err != nil {
		return fmt.Errorf("failed to record login success: %w", err)
	}

	return nil
}

// SetRefreshTokenHash replaces the stored refresh-token hash
func (r *UserRepo) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `
        UPDATE subscriber_users
        SET hashed_refresh_token = $2, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, hash); err != nil {
		return fmt.Errorf("failed to set refresh token hash: %w", err)
	}

	return nil
}

// ClearRefreshToken removes the stored refresh-token hash, ending the session
func (r *UserRepo) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE subscriber_users
        SET hashed_refresh_token = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// SetResetToken overwrites any prior reset token with a new one and its expiry
func (r *UserRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	query := `
        UPDATE subscriber_users
        SET reset_token = $2, reset_token_expires_at = $3, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, token, expiresAt); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	return nil
}

// ResetCredentials sets a new password hash and clears the reset token and the
// refresh-token hash, forcing re-login on all devices.
func (r *UserRepo) ResetCredentials(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
        UPDATE subscriber_users
        SET password_hash = $2,
            reset_token = NULL,
            reset_token_expires_at = NULL,
            hashed_refresh_token = NULL,
            updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("failed to reset credentials: %w", err)
	}

	return nil
}

// LinkGoogleID stores the OAuth provider subject id on first OAuth login
func (r *UserRepo) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	query := `
        UPDATE subscriber_users
        SET google_id = $2, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	if _, err := r.db.ExecContext(ctx, query, id, googleID); err != nil {
		return fmt.Errorf("failed to link google id: %w", err)
	}

	return nil
}
