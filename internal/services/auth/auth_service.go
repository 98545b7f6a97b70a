package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustdesk/trustdesk/internal/perrors"
	"github.com/trustdesk/trustdesk/internal/services/tenant"
	"github.com/trustdesk/trustdesk/internal/services/user"
)

// GenericResetMessage is returned by forgot-password regardless of whether
// the email is known, so callers cannot enumerate accounts.
const GenericResetMessage = "If an account with that email exists, a password reset link has been sent"

// UserStore is the credential store for subscriber users.
type UserStore interface {
	Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByResetToken(ctx context.Context, token string) (*user.User, error)
	RecordLoginFailure(ctx context.Context, id uuid.UUID, attempts int, lockedUntil *time.Time) error
	RecordLoginSuccess(ctx context.Context, id uuid.UUID, refreshTokenHash string, ip string) error
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	ResetCredentials(ctx context.Context, id uuid.UUID, passwordHash string) error
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error
}

// TenantStore is the credential store for subscriber organizations.
type TenantStore interface {
	Create(ctx context.Context, req *tenant.CreateTenantRequest) (*tenant.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	GetByUsername(ctx context.Context, username string) (*tenant.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error)
}

// Mailer delivers notification emails. Send failures are logged and never fail
// the calling operation.
type Mailer interface {
	Send(to, subject, body string) error
}

// Options tune the orchestrator. Zero values are replaced with defaults in
// NewAuthService.
type Options struct {
	BcryptCost       int
	LockoutThreshold int
	LockoutDuration  time.Duration
	ResetTokenTTL    time.Duration
	ResetBaseURL     string
}

// AuthService orchestrates registration, login, refresh-token rotation,
// logout, the password-reset flow and OAuth login.
type AuthService struct {
	users   UserStore
	tenants TenantStore
	issuer  *JWTIssuer
	mailer  Mailer
	opts    Options
}

// NewAuthService constructs a new AuthService
func NewAuthService(users UserStore, tenants TenantStore, issuer *JWTIssuer, mailer Mailer, opts Options) *AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = 12
	}
	if opts.LockoutThreshold == 0 {
		opts.LockoutThreshold = 5
	}
	if opts.LockoutDuration == 0 {
		opts.LockoutDuration = 30 * time.Minute
	}
	if opts.ResetTokenTTL == 0 {
		opts.ResetTokenTTL = time.Hour
	}

	return &AuthService{
		users:   users,
		tenants: tenants,
		issuer:  issuer,
		mailer:  mailer,
		opts:    opts,
	}
}

// Register creates a subscriber organization together with its bootstrap admin
// user. Uniqueness pre-checks run before any write; the repositories translate
// constraint violations for the concurrent-registration race.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.AdminEmail)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, perrors.NewErrConflict("Email is already registered", user.ErrEmailTaken)
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, perrors.NewErrInternalServerError("Failed to check existing users", err)
	}

	if _, err := s.tenants.GetByUsername(ctx, req.CompanyName); err == nil {
		return nil, perrors.NewErrConflict("Company name is already registered", tenant.ErrUsernameTaken)
	} else if !errors.Is(err, tenant.ErrTenantNotFound) {
		return nil, perrors.NewErrInternalServerError("Failed to check existing tenants", err)
	}

	if _, err := s.tenants.GetByEmail(ctx, email); err == nil {
		return nil, perrors.NewErrConflict("Email is already registered", tenant.ErrTenantEmailTaken)
	} else if !errors.Is(err, tenant.ErrTenantNotFound) {
		return nil, perrors.NewErrInternalServerError("Failed to check existing tenants", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), s.opts.BcryptCost)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to hash password", err)
	}

	t, err := s.tenants.Create(ctx, &tenant.CreateTenantRequest{
		Username:     req.CompanyName,
		Email:        email,
		PasswordHash: string(hash),
		CompanyType:  req.CompanyType,
		Jurisdiction: req.Jurisdiction,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		if errors.Is(err, tenant.ErrUsernameTaken) {
			return nil, perrors.NewErrConflict("Company name is already registered", err)
		}
		if errors.Is(err, tenant.ErrTenantEmailTaken) {
			return nil, perrors.NewErrConflict("Email is already registered", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to create tenant", err)
	}

	firstName, lastName := splitFullName(req.AdminFullName)

	u, err := s.users.Create(ctx, &user.CreateUserRequest{
		SubscriberID: t.ID,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        req.AdminPhone,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, perrors.NewErrConflict("Email is already registered", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to create admin user", err)
	}

	if err := s.mailer.Send(email, "Welcome aboard", welcomeBody(firstName, t.Username)); err != nil {
		slog.WarnContext(ctx, "Failed to send welcome email", slog.Any("error", err))
	}

	return &RegisterResponse{TenantID: t.ID, UserID: u.ID}, nil
}

// Login authenticates email/password credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest, ip string) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, perrors.NewErrNotFound("User not found", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to look up user", err)
	}

	now := time.Now()
	if u.Status != user.StatusActive {
		return nil, perrors.NewErrForbidden("Account is not active", fmt.Errorf("status is %s", u.Status))
	}
	if u.Locked(now) {
		return nil, perrors.NewErrForbidden("Account is temporarily locked", errors.New("account locked"))
	}

	if u.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)) != nil {
		attempts := u.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= s.opts.LockoutThreshold {
			deadline := now.Add(s.opts.LockoutDuration)
			lockedUntil = &deadline
		}
		if err := s.users.RecordLoginFailure(ctx, u.ID, attempts, lockedUntil); err != nil {
			slog.ErrorContext(ctx, "Failed to record login failure", slog.Any("error", err))
		}
		return nil, perrors.NewErrUnauthorized("Invalid credentials", errors.New("password mismatch"))
	}

	return s.openSession(ctx, u, ip)
}

// Refresh redeems a refresh token for a new token pair. The presented token is
// invalidated before replacements are minted, so a partial failure can never
// leave it replayable. The rotated refresh token is persisted server-side but
// deliberately omitted from the response payload.
func (s *AuthService) Refresh(ctx context.Context, token string) (*TokenResponse, error) {
	claims, err := s.issuer.VerifyRefreshToken(token)
	if err != nil {
		return nil, perrors.NewErrUnauthorized("Invalid refresh token", err)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, perrors.NewErrUnauthorized("Invalid refresh token", err)
	}

	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, perrors.NewErrUnauthorized("Invalid refresh token", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to look up user", err)
	}

	if u.HashedRefreshToken == nil || !compareToken(*u.HashedRefreshToken, token) {
		return nil, perrors.NewErrUnauthorized("Invalid refresh token", errors.New("refresh token mismatch"))
	}

	now := time.Now()
	if u.Status != user.StatusActive {
		return nil, perrors.NewErrForbidden("Account is not active", fmt.Errorf("status is %s", u.Status))
	}
	if u.Locked(now) {
		return nil, perrors.NewErrForbidden("Account is temporarily locked", errors.New("account locked"))
	}

	if err := s.users.ClearRefreshToken(ctx, u.ID); err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to rotate refresh token", err)
	}

	tokenClaims := TokenClaims{UserID: u.ID.String(), Email: u.Email, Role: string(u.Role), TenantID: u.SubscriberID.String()}

	access, err := s.issuer.IssueAccessToken(tokenClaims)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	refresh, err := s.issuer.IssueRefreshToken(tokenClaims)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	refreshHash, err := hashToken(refresh, s.opts.BcryptCost)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	if err := s.users.SetRefreshTokenHash(ctx, u.ID, refreshHash); err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to persist refresh token", err)
	}

	return &TokenResponse{
		AccessToken: access,
		ExpiresIn:   s.issuer.AccessTokenTTLSeconds(),
		TokenType:   "Bearer",
	}, nil
}

// Logout ends the user's session. Logging out with no active session is not an
// error, so repeated calls succeed.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) (string, error) {
	if refreshToken != "" {
		claims, err := s.issuer.VerifyRefreshToken(refreshToken)
		if err != nil {
			return "", perrors.NewErrUnauthorized("Invalid refresh token", err)
		}
		if claims.UserID != userID.String() {
			return "", perrors.NewErrUnauthorized("Invalid refresh token", errors.New("token subject mismatch"))
		}

		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return "", perrors.NewErrUnauthorized("Invalid refresh token", err)
			}
			return "", perrors.NewErrInternalServerError("Failed to look up user", err)
		}

		if u.HashedRefreshToken == nil || !compareToken(*u.HashedRefreshToken, refreshToken) {
			return "", perrors.NewErrUnauthorized("Invalid refresh token", errors.New("refresh token mismatch"))
		}
	}

	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return "", perrors.NewErrInternalServerError("Failed to clear session", err)
	}

	return "Logged out successfully", nil
}

// ForgotPassword starts the password-reset flow. The returned message is the
// same whether or not the account exists, and internal failures degrade to it
// as well.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) string {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			slog.ErrorContext(ctx, "Failed to look up user for password reset", slog.Any("error", err))
		}
		return GenericResetMessage
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		slog.ErrorContext(ctx, "Failed to generate reset token", slog.Any("error", err))
		return GenericResetMessage
	}
	token := hex.EncodeToString(buf)

	if err := s.users.SetResetToken(ctx, u.ID, token, time.Now().Add(s.opts.ResetTokenTTL)); err != nil {
		slog.ErrorContext(ctx, "Failed to store reset token", slog.Any("error", err))
		return GenericResetMessage
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.opts.ResetBaseURL, token)
	if err := s.mailer.Send(u.Email, "Reset your password", resetBody(u.FirstName, link)); err != nil {
		slog.WarnContext(ctx, "Failed to send password reset email", slog.Any("error", err))
	}

	return GenericResetMessage
}

// ResetPassword redeems a reset token for a new password. All sessions are
// invalidated alongside.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return perrors.NewErrBadRequest("Invalid or expired token", err)
		}
		return perrors.NewErrInternalServerError("Failed to look up reset token", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.opts.BcryptCost)
	if err != nil {
		return perrors.NewErrInternalServerError("Failed to hash password", err)
	}

	if err := s.users.ResetCredentials(ctx, u.ID, string(hash)); err != nil {
		return perrors.NewErrInternalServerError("Failed to reset password", err)
	}

	return nil
}

// OAuthLogin opens a session for an already-verified OAuth profile. Unknown
// emails are rejected, registration stays an explicit separate flow.
func (s *AuthService) OAuthLogin(ctx context.Context, profile *OAuthProfile, ip string) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(profile.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, perrors.NewErrNotFound("User not found", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to look up user", err)
	}

	now := time.Now()
	if u.Status != user.StatusActive {
		return nil, perrors.NewErrForbidden("Account is not active", fmt.Errorf("status is %s", u.Status))
	}
	if u.Locked(now) {
		return nil, perrors.NewErrForbidden("Account is temporarily locked", errors.New("account locked"))
	}

	if u.GoogleID == nil || *u.GoogleID == "" {
		if err := s.users.LinkGoogleID(ctx, u.ID, profile.Subject); err != nil {
			return nil, perrors.NewErrInternalServerError("Failed to link provider identity", err)
		}
	}

	return s.openSession(ctx, u, ip)
}

// Profile returns the authenticated user's summary.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, perrors.NewErrNotFound("User not found", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to look up user", err)
	}

	t, err := s.tenants.GetByID(ctx, u.SubscriberID)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to look up tenant", err)
	}

	return summary(u, t), nil
}

// VerifyAccessToken validates a bearer token for the HTTP middleware.
func (s *AuthService) VerifyAccessToken(token string) (TokenClaims, error) {
	return s.issuer.VerifyAccessToken(token)
}

// openSession issues a token pair, persists the refresh-token hash and resets
// the lockout bookkeeping in one write.
func (s *AuthService) openSession(ctx context.Context, u *user.User, ip string) (*TokenResponse, error) {
	t, err := s.tenants.GetByID(ctx, u.SubscriberID)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to look up tenant", err)
	}

	claims := TokenClaims{UserID: u.ID.String(), Email: u.Email, Role: string(u.Role), TenantID: u.SubscriberID.String()}

	access, err := s.issuer.IssueAccessToken(claims)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	refresh, err := s.issuer.IssueRefreshToken(claims)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	refreshHash, err := hashToken(refresh, s.opts.BcryptCost)
	if err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to issue tokens", err)
	}

	if err := s.users.RecordLoginSuccess(ctx, u.ID, refreshHash, ip); err != nil {
		return nil, perrors.NewErrInternalServerError("Failed to persist session", err)
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.issuer.AccessTokenTTLSeconds(),
		TokenType:    "Bearer",
		User:         summary(u, t),
	}, nil
}

func summary(u *user.User, t *tenant.Tenant) *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       string(u.Role),
		Status:     string(u.Status),
		TenantID:   t.ID,
		TenantName: t.Username,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// splitFullName takes the first token as the first name and joins the rest as
// the last name.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}

// hashToken digests the token before bcrypt because bcrypt only considers the
// first 72 bytes of its input, far shorter than a signed token.
func hashToken(token string, cost int) (string, error) {
	sum := sha256.Sum256([]byte(token))
	hash, err := bcrypt.GenerateFromPassword(sum[:], cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func compareToken(hash, token string) bool {
	sum := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hash), sum[:]) == nil
}

func welcomeBody(firstName, company string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your organization <b>%s</b> has been registered. You can now sign in and start onboarding entities.</p>", firstName, company)
}

func resetBody(firstName, link string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>We received a request to reset your password. The link below is valid for one hour.</p><p><a href=\"%s\">Reset password</a></p>", firstName, link)
}
