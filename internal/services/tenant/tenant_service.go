package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TenantService contains business logic for subscriber organizations
type TenantService struct {
	repo *TenantRepo
}

// NewTenantService constructs a new TenantService
func NewTenantService(repo *TenantRepo) *TenantService {
	return &TenantService{repo: repo}
}

// Create registers a new subscriber organization
func (s *TenantService) Create(ctx context.Context, req *CreateTenantRequest) (*Tenant, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("tenant username is required")
	}

	t, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrTenantEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return t, nil
}

// GetByID fetches a tenant by its identifier
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

// GetByUsername fetches a tenant by its unique company name
func (s *TenantService) GetByUsername(ctx context.Context, username string) (*Tenant, error) {
	t, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

// GetByEmail fetches a tenant by its unique contact email
func (s *TenantService) GetByEmail(ctx context.Context, email string) (*Tenant, error) {
	t, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}
