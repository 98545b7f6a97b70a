package auth

import "github.com/google/uuid"

type RegisterRequest struct {
	CompanyName   string  `json:"company_name"`
	CompanyType   *string `json:"company_type,omitempty"`
	Jurisdiction  *string `json:"jurisdiction,omitempty"`
	ContactPhone  *string `json:"contact_phone,omitempty"`
	AdminFullName string  `json:"admin_full_name"`
	AdminEmail    string  `json:"admin_email"`
	AdminPassword string  `json:"admin_password"`
	AdminPhone    *string `json:"admin_phone,omitempty"`
}

type RegisterResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	UserID   uuid.UUID `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// OAuthProfile is a verified identity from the OAuth provider. Signature and
// consent verification happen before this is constructed.
type OAuthProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Subject   string `json:"subject"`
}

type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
}

// TokenResponse is returned by login, refresh and OAuth login. Refresh omits
// the rotated refresh token and the user summary.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *UserSummary `json:"user,omitempty"`
}
