package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserService contains business logic for subscriber users
type UserService struct {
	repo *UserRepo
}

// NewUserService constructs a new UserService
func NewUserService(repo *UserRepo) *UserService {
	return &UserService{repo: repo}
}

// GetByID fetches a user by its identifier
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail fetches a user by email, case-insensitively
func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// Create inserts a new subscriber user
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	u, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByResetToken fetches a user by an unexpired password-reset token
func (s *UserService) GetByResetToken(ctx context.Context, token string) (*User, error) {
	u, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return u, nil
}

// RecordLoginFailure stores failed-attempt bookkeeping and any lockout deadline
func (s *UserService) RecordLoginFailure(ctx context.Context, id uuid.UUID, attempts int, lockedUntil *time.Time) error {
	return s.repo.RecordLoginFailure(ctx, id, attempts, lockedUntil)
}

// RecordLoginSuccess clears lockout state and stores the new session record
func (s *UserService) RecordLoginSuccess(ctx context.Context, id uuid.UUID, refreshTokenHash string, ip string) error {
	return s.repo.RecordLoginSuccess(ctx, id, refreshTokenHash, ip)
}

// SetRefreshTokenHash replaces the stored refresh-token hash
func (s *UserService) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error {
	return s.repo.SetRefreshTokenHash(ctx, id, hash)
}

// ClearRefreshToken ends the user's session
func (s *UserService) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	return s.repo.ClearRefreshToken(ctx, id)
}

// SetResetToken stores a password-reset token and its expiry
func (s *UserService) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	return s.repo.SetResetToken(ctx, id, token, expiresAt)
}

// ResetCredentials sets a new password hash and invalidates reset and session state
func (s *UserService) ResetCredentials(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.repo.ResetCredentials(ctx, id, passwordHash)
}

// LinkGoogleID stores the OAuth provider subject id
func (s *UserService) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	return s.repo.LinkGoogleID(ctx, id, googleID)
}
