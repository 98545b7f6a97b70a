package user

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
)

// User is a staff member of a subscriber organization. Email is stored
// lower-cased and unique across all tenants.
type User struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	SubscriberID        uuid.UUID  `db:"subscriber_id" json:"subscriber_id"`
	Email               string     `db:"email" json:"email"`
	FirstName           string     `db:"first_name" json:"first_name"`
	LastName            string     `db:"last_name" json:"last_name"`
	Phone               *string    `db:"phone" json:"phone,omitempty"`
	PasswordHash        *string    `db:"password_hash" json:"-"`
	Role                UserRole   `db:"role" json:"role"`
	Status              UserStatus `db:"status" json:"status"`
	FailedLoginAttempts int        `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `db:"locked_until" json:"-"`
	HashedRefreshToken  *string    `db:"hashed_refresh_token" json:"-"`
	ResetToken          *string    `db:"reset_token" json:"-"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at" json:"-"`
	GoogleID            *string    `db:"google_id" json:"-"`
	LastLoginAt         *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	LastLoginIP         *string    `db:"last_login_ip" json:"-"`
	IsActive            bool       `db:"is_active" json:"is_active"`
	DeletedAt           *time.Time `db:"deleted_at" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// Locked reports whether the account is currently in a lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

type CreateUserRequest struct {
	SubscriberID uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	Phone        *string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
}
