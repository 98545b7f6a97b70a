package authenticator

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/trustdesk/trustdesk/internal/config"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

// Authenticator handles the Google OAuth code flow. Token issuing and
// verification for first-party credentials live in the auth service.
type Authenticator struct {
	*oidc.Provider
	oauth2.Config

	stateSecret  string
	oauthEnabled bool
}

func New(conf *config.Config) (*Authenticator, error) {
	if conf.GOOGLE_CLIENT_ID == "" {
		return &Authenticator{
			oauthEnabled: false,
		}, nil
	}

	provider, err := oidc.NewProvider(context.Background(), googleIssuer)
	if err != nil {
		return nil, err
	}

	return &Authenticator{
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     conf.GOOGLE_CLIENT_ID,
			ClientSecret: conf.GOOGLE_CLIENT_SECRET,
			RedirectURL:  conf.GOOGLE_CALLBACK_URL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		stateSecret:  conf.STATE_SECRET,
		oauthEnabled: true,
	}, nil
}

func (a *Authenticator) OAuthEnabled() bool {
	return a.oauthEnabled
}

// GoogleProfile is the subset of ID-token claims the login flow consumes.
type GoogleProfile struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Subject    string `json:"sub"`
}

// VerifyIDToken verifies that an *oauth2.Token is a valid *oidc.IDToken.
func (a *Authenticator) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*oidc.IDToken, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	oidcConfig := &oidc.Config{
		ClientID: a.ClientID,
	}

	return a.Verifier(oidcConfig).Verify(ctx, rawIDToken)
}

// ProfileFromIDToken extracts the claims needed for OAuth login.
func (a *Authenticator) ProfileFromIDToken(idToken *oidc.IDToken) (*GoogleProfile, error) {
	var profile GoogleProfile
	if err := idToken.Claims(&profile); err != nil {
		return nil, err
	}

	if profile.Email == "" {
		return nil, errors.New("id token carries no email claim")
	}

	return &profile, nil
}

type OAuthState struct {
	CSRF      string `json:"csrf"`
	Redirect  string `json:"redirect"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func (a *Authenticator) GetSignedState(state OAuthState) (string, error) {
	payload, err := sonic.Marshal(state)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(a.stateSecret))
	mac.Write(payload)
	sig := mac.Sum(nil)

	combined := append(payload, sig...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

func (a *Authenticator) VerifySignedState(encodedState string) (*OAuthState, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedState)
	if err != nil {
		return nil, errors.New("invalid base64")
	}

	if len(raw) < sha256.Size {
		return nil, errors.New("state too short")
	}

	payload := raw[:len(raw)-sha256.Size]
	sig := raw[len(raw)-sha256.Size:]

	mac := hmac.New(sha256.New, []byte(a.stateSecret))
	mac.Write(payload)
	expectedSig := mac.Sum(nil)
	if !hmac.Equal(sig, expectedSig) {
		return nil, errors.New("invalid state signature")
	}

	var state OAuthState
	if err := sonic.Unmarshal(payload, &state); err != nil {
		return nil, errors.New("invalid state payload")
	}

	if time.Now().Unix() > state.ExpiresAt {
		return nil, errors.New("state expired")
	}

	return &state, nil
}
