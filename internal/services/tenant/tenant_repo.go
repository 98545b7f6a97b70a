package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrUsernameTaken    = errors.New("tenant username already taken")
	ErrTenantEmailTaken = errors.New("tenant email already taken")
)

// TenantRepo handles database operations for subscriber organizations
type TenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a new tenant repository
func NewTenantRepo(db *sqlx.DB) *TenantRepo {
	return &TenantRepo{db: db}
}

// Create inserts a new subscriber organization
func (r *TenantRepo) Create(ctx context.Context, req *CreateTenantRequest) (*Tenant, error) {
	query := `
        INSERT INTO subscribers (username, email, password_hash, company_type, jurisdiction, contact_phone)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, username, email, password_hash, company_type, jurisdiction, contact_phone, created_at, updated_at
    `

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, req.Username, req.Email, req.PasswordHash, req.CompanyType, req.Jurisdiction, req.ContactPhone)
	if err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return &t, nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	query := `
        SELECT id, username, email, password_hash, company_type, jurisdiction, contact_phone, created_at, updated_at
        FROM subscribers
        WHERE id = $1
    `

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

// GetByUsername retrieves a tenant by its unique company name
func (r *TenantRepo) GetByUsername(ctx context.Context, username string) (*Tenant, error) {
	query := `
        SELECT id, username, email, password_hash, company_type, jurisdiction, contact_phone, created_at, updated_at
        FROM subscribers
        WHERE username = $1
    `

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

// GetByEmail retrieves a tenant by its unique contact email
func (r *TenantRepo) GetByEmail(ctx context.Context, email string) (*Tenant, error) {
	query := `
        SELECT id, username, email, password_hash, company_type, jurisdiction, contact_phone, created_at, updated_at
        FROM subscribers
        WHERE email = $1
    `

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

// translateUniqueViolation maps a postgres unique-constraint violation to the
// column-specific sentinel, so concurrent registrations that slip past the
// pre-checks still surface as conflicts.
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}

	switch pqErr.Constraint {
	case "subscribers_username_key":
		return ErrUsernameTaken
	case "subscribers_email_key":
		return ErrTenantEmailTaken
	default:
		return fmt.Errorf("unique constraint violated: %s", pqErr.Constraint)
	}
}
