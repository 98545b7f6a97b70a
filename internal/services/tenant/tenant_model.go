package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a registered subscriber organization. It owns users and all
// onboarded entities.
type Tenant struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	CompanyType  *string   `db:"company_type" json:"company_type,omitempty"`
	Jurisdiction *string   `db:"jurisdiction" json:"jurisdiction,omitempty"`
	ContactPhone *string   `db:"contact_phone" json:"contact_phone,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type CreateTenantRequest struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	CompanyType  *string `json:"company_type,omitempty"`
	Jurisdiction *string `json:"jurisdiction,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}
