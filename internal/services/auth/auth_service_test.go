package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustdesk/trustdesk/internal/perrors"
	"github.com/trustdesk/trustdesk/internal/services/tenant"
	"github.com/trustdesk/trustdesk/internal/services/user"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, req *user.CreateUserRequest) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == req.Email {
			return nil, user.ErrEmailTaken
		}
	}

	hash := req.PasswordHash
	u := &user.User{
		ID:           uuid.New(),
		SubscriberID: req.SubscriberID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		PasswordHash: &hash,
		Role:         req.Role,
		Status:       req.Status,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u

	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, user.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByResetToken(_ context.Context, token string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}

	return nil, user.ErrUserNotFound
}

func (f *fakeUserStore) RecordLoginFailure(_ context.Context, id uuid.UUID, attempts int, lockedUntil *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.FailedLoginAttempts = attempts
	u.LockedUntil = lockedUntil
	return nil
}

func (f *fakeUserStore) RecordLoginSuccess(_ context.Context, id uuid.UUID, refreshTokenHash string, ip string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	now := time.Now()
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.HashedRefreshToken = &refreshTokenHash
	u.LastLoginAt = &now
	if ip != "" {
		u.LastLoginIP = &ip
	}
	return nil
}

func (f *fakeUserStore) SetRefreshTokenHash(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.HashedRefreshToken = &hash
	return nil
}

func (f *fakeUserStore) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.HashedRefreshToken = nil
	return nil
}

func (f *fakeUserStore) SetResetToken(_ context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserStore) ResetCredentials(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.PasswordHash = &passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	u.HashedRefreshToken = nil
	return nil
}

func (f *fakeUserStore) LinkGoogleID(_ context.Context, id uuid.UUID, googleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	u.GoogleID = &googleID
	return nil
}

func (f *fakeUserStore) get(t *testing.T, id uuid.UUID) *user.User {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	require.True(t, ok)

	cp := *u
	return &cp
}

type fakeTenantStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*tenant.Tenant
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{tenants: map[uuid.UUID]*tenant.Tenant{}}
}

func (f *fakeTenantStore) Create(_ context.Context, req *tenant.CreateTenantRequest) (*tenant.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tenants {
		if t.Username == req.Username {
			return nil, tenant.ErrUsernameTaken
		}
		if t.Email == req.Email {
			return nil, tenant.ErrTenantEmailTaken
		}
	}

	hash := req.PasswordHash
	t := &tenant.Tenant{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hash,
		CompanyType:  req.CompanyType,
		Jurisdiction: req.Jurisdiction,
		ContactPhone: req.ContactPhone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.tenants[t.ID] = t

	cp := *t
	return &cp, nil
}

func (f *fakeTenantStore) GetByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}

	cp := *t
	return &cp, nil
}

func (f *fakeTenantStore) GetByUsername(_ context.Context, username string) (*tenant.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tenants {
		if t.Username == username {
			cp := *t
			return &cp, nil
		}
	}

	return nil, tenant.ErrTenantNotFound
}

func (f *fakeTenantStore) GetByEmail(_ context.Context, email string) (*tenant.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tenants {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}

	return nil, tenant.ErrTenantNotFound
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sent)
}

func newTestService(t *testing.T) (*AuthService, *fakeUserStore, *fakeTenantStore, *fakeMailer) {
	t.Helper()

	users := newFakeUserStore()
	tenants := newFakeTenantStore()
	mails := &fakeMailer{}
	issuer := NewJWTIssuer("access-secret", "refresh-secret", "1h", "7d")

	svc := NewAuthService(users, tenants, issuer, mails, Options{
		BcryptCost:   bcrypt.MinCost,
		ResetBaseURL: "http://localhost:3000",
	})

	return svc, users, tenants, mails
}

func register(t *testing.T, svc *AuthService) *RegisterResponse {
	t.Helper()

	phone := "+31-20-555-0100"
	created, err := svc.Register(context.Background(), &RegisterRequest{
		CompanyName:   "Acme Compliance",
		AdminFullName: "Jane Van Der Berg",
		AdminEmail:    "jane@acme.test",
		AdminPassword: "s3cret-pass",
		AdminPhone:    &phone,
	})
	require.NoError(t, err)

	return created
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var perr perrors.Err
	require.ErrorAs(t, err, &perr)
	require.Equal(t, status, perr.HttpStatus())
}

func TestRegisterCreatesTenantAndAdmin(t *testing.T) {
	svc, users, tenants, mails := newTestService(t)

	created := register(t, svc)
	require.NotEqual(t, uuid.Nil, created.TenantID)
	require.NotEqual(t, uuid.Nil, created.UserID)

	tn, err := tenants.GetByID(context.Background(), created.TenantID)
	require.NoError(t, err)
	require.Equal(t, "Acme Compliance", tn.Username)
	require.Equal(t, "jane@acme.test", tn.Email)

	u := users.get(t, created.UserID)
	require.Equal(t, created.TenantID, u.SubscriberID)
	require.Equal(t, user.RoleAdmin, u.Role)
	require.Equal(t, user.StatusActive, u.Status)
	require.Equal(t, "Jane", u.FirstName)
	require.Equal(t, "Van Der Berg", u.LastName)
	require.NotNil(t, u.Phone)
	require.Equal(t, "+31-20-555-0100", *u.Phone)
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("wrong")))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("s3cret-pass")))

	require.Equal(t, 1, mails.count())
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, users, _, _ := newTestService(t)

	created, err := svc.Register(context.Background(), &RegisterRequest{
		CompanyName:   "Acme Compliance",
		AdminFullName: "Jane Doe",
		AdminEmail:    "  Jane@ACME.Test  ",
		AdminPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, "jane@acme.test", users.get(t, created.UserID).Email)

	// Login with a differently-cased variant of the same address
	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "JANE@acme.test", Password: "s3cret-pass"}, "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		CompanyName:   "Other Corp",
		AdminFullName: "John Doe",
		AdminEmail:    "jane@acme.test",
		AdminPassword: "another-pass",
	})
	requireStatus(t, err, 409)
}

func TestRegisterDuplicateCompanyNameConflicts(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		CompanyName:   "Acme Compliance",
		AdminFullName: "John Doe",
		AdminEmail:    "john@other.test",
		AdminPassword: "another-pass",
	})
	requireStatus(t, err, 409)
}

func TestLoginReturnsSession(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "10.0.0.1")
	require.NoError(t, err)

	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.Equal(t, int64(3600), tokens.ExpiresIn)
	require.NotNil(t, tokens.User)
	require.Equal(t, created.UserID, tokens.User.ID)
	require.Equal(t, created.TenantID, tokens.User.TenantID)
	require.Equal(t, "Acme Compliance", tokens.User.TenantName)

	claims, err := svc.VerifyAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.UserID.String(), claims.UserID)
	require.Equal(t, created.TenantID.String(), claims.TenantID)
	require.Equal(t, "admin", claims.Role)

	u := users.get(t, created.UserID)
	require.NotNil(t, u.HashedRefreshToken)
	require.NotNil(t, u.LastLoginAt)
	require.Equal(t, "10.0.0.1", *u.LastLoginIP)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "nobody@acme.test", Password: "whatever"}, "")
	requireStatus(t, err, 404)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "wrong-pass"}, "")
		requireStatus(t, err, 401)
	}

	u := users.get(t, created.UserID)
	require.Equal(t, 5, u.FailedLoginAttempts)
	require.NotNil(t, u.LockedUntil)
	require.True(t, u.LockedUntil.After(time.Now()))

	// Correct password is rejected while the lockout window is open
	_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	requireStatus(t, err, 403)
}

func TestLoginSuccessResetsFailureCount(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "wrong-pass"}, "")
		require.Error(t, err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	u := users.get(t, created.UserID)
	require.Equal(t, 0, u.FailedLoginAttempts)
	require.Nil(t, u.LockedUntil)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	users.mu.Lock()
	users.users[created.UserID].Status = user.StatusSuspended
	users.mu.Unlock()

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	requireStatus(t, err, 403)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	register(t, svc)

	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.Equal(t, "Bearer", refreshed.TokenType)
	require.Equal(t, int64(3600), refreshed.ExpiresIn)

	// The rotated refresh token stays server-side only
	require.Empty(t, refreshed.RefreshToken)
	require.Nil(t, refreshed.User)

	// The presented token was invalidated by the rotation
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	requireStatus(t, err, 401)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	requireStatus(t, err, 401)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	register(t, svc)

	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	requireStatus(t, err, 401)
}

func TestLoginSupersedesPreviousSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	register(t, svc)

	first, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	// Only the latest refresh token is redeemable
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	requireStatus(t, err, 401)

	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := register(t, svc)

	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	msg, err := svc.Logout(context.Background(), created.UserID, tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "Logged out successfully", msg)

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	requireStatus(t, err, 401)

	// Logging out without an active session still succeeds
	msg, err = svc.Logout(context.Background(), created.UserID, "")
	require.NoError(t, err)
	require.Equal(t, "Logged out successfully", msg)
}

func TestLogoutRejectsForeignRefreshToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		CompanyName:   "Other Corp",
		AdminFullName: "John Doe",
		AdminEmail:    "john@other.test",
		AdminPassword: "another-pass",
	})
	require.NoError(t, err)

	otherTokens, err := svc.Login(context.Background(), &LoginRequest{Email: "john@other.test", Password: "another-pass"}, "")
	require.NoError(t, err)

	_, err = svc.Logout(context.Background(), created.UserID, otherTokens.RefreshToken)
	requireStatus(t, err, 401)
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	svc, users, _, mails := newTestService(t)
	created := register(t, svc)

	known := svc.ForgotPassword(context.Background(), "jane@acme.test")
	unknown := svc.ForgotPassword(context.Background(), "nobody@acme.test")
	require.Equal(t, known, unknown)
	require.Equal(t, GenericResetMessage, known)

	// Only the known account received mail and a stored token
	require.Equal(t, 2, mails.count()) // welcome + reset
	u := users.get(t, created.UserID)
	require.NotNil(t, u.ResetToken)
	require.NotNil(t, u.ResetTokenExpiresAt)
	require.True(t, u.ResetTokenExpiresAt.After(time.Now()))
}

func TestForgotPasswordMailCarriesResetLink(t *testing.T) {
	svc, users, _, mails := newTestService(t)
	created := register(t, svc)

	svc.ForgotPassword(context.Background(), "jane@acme.test")

	u := users.get(t, created.UserID)
	require.NotNil(t, u.ResetToken)

	last := mails.sent[len(mails.sent)-1]
	require.Equal(t, "jane@acme.test", last.To)
	require.Contains(t, last.Body, "http://localhost:3000/reset-password?token="+*u.ResetToken)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	tokens, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)

	svc.ForgotPassword(context.Background(), "jane@acme.test")
	resetToken := *users.get(t, created.UserID).ResetToken

	require.NoError(t, svc.ResetPassword(context.Background(), resetToken, "brand-new-pass"))

	// Old password no longer works, the new one does
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"}, "")
	requireStatus(t, err, 401)
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "jane@acme.test", Password: "brand-new-pass"}, "")
	require.NoError(t, err)

	// Existing sessions were invalidated
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	requireStatus(t, err, 401)

	// The token is single-use
	err = svc.ResetPassword(context.Background(), resetToken, "yet-another-pass")
	requireStatus(t, err, 400)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.ResetPassword(context.Background(), "bogus-token", "brand-new-pass")
	requireStatus(t, err, 400)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, users.SetResetToken(context.Background(), created.UserID, "stale-token", expired))

	err := svc.ResetPassword(context.Background(), "stale-token", "brand-new-pass")
	requireStatus(t, err, 400)
}

func TestOAuthLoginLinksGoogleIdentity(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	tokens, err := svc.OAuthLogin(context.Background(), &OAuthProfile{
		Email:   "Jane@ACME.test",
		Subject: "google-sub-123",
	}, "10.0.0.2")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, tokens.User)

	u := users.get(t, created.UserID)
	require.NotNil(t, u.GoogleID)
	require.Equal(t, "google-sub-123", *u.GoogleID)

	// A second login keeps the original link
	_, err = svc.OAuthLogin(context.Background(), &OAuthProfile{Email: "jane@acme.test", Subject: "google-sub-999"}, "")
	require.NoError(t, err)
	require.Equal(t, "google-sub-123", *users.get(t, created.UserID).GoogleID)
}

func TestOAuthLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.OAuthLogin(context.Background(), &OAuthProfile{Email: "nobody@acme.test", Subject: "sub"}, "")
	requireStatus(t, err, 404)
}

func TestOAuthLoginInactiveAccount(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	created := register(t, svc)

	users.mu.Lock()
	users.users[created.UserID].Status = user.StatusInactive
	users.mu.Unlock()

	_, err := svc.OAuthLogin(context.Background(), &OAuthProfile{Email: "jane@acme.test", Subject: "sub"}, "")
	requireStatus(t, err, 403)
}

func TestProfile(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := register(t, svc)

	profile, err := svc.Profile(context.Background(), created.UserID)
	require.NoError(t, err)
	require.Equal(t, created.UserID, profile.ID)
	require.Equal(t, "jane@acme.test", profile.Email)
	require.Equal(t, "Acme Compliance", profile.TenantName)

	_, err = svc.Profile(context.Background(), uuid.New())
	requireStatus(t, err, 404)
}

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		full  string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Jane Van Der Berg", "Jane", "Van Der Berg"},
		{"  Jane   Doe  ", "Jane", "Doe"},
		{"", "", ""},
	}

	for _, c := range cases {
		first, last := splitFullName(c.full)
		require.Equal(t, c.first, first, c.full)
		require.Equal(t, c.last, last, c.full)
	}
}
