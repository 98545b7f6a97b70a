package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/trustdesk/trustdesk/internal/api/authenticator"
	"github.com/trustdesk/trustdesk/internal/perrors"
	"github.com/trustdesk/trustdesk/internal/services"
	auth2 "github.com/trustdesk/trustdesk/internal/services/auth"
	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"
)

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Register a subscriber organization with its bootstrap admin
	r.POST("/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.Register")
		defer span.End()

		var req auth2.RegisterRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.CompanyName == "" || req.AdminFullName == "" || req.AdminEmail == "" {
			writeError(ctx, stdCtx, "Company name, admin name and admin email are required", perrors.NewErrInvalidRequest("Company name, admin name and admin email are required", errors.New("missing required fields")))
			return
		}
		if len(req.AdminPassword) < 8 {
			writeError(ctx, stdCtx, "Password must be at least 8 characters", perrors.NewErrInvalidRequest("Password must be at least 8 characters", errors.New("password too short")))
			return
		}

		created, err := svc.Auth.Register(stdCtx, &req)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to register", err)
			return
		}

		writeCreated(ctx, stdCtx, "Registered successfully", created)
	})

	// Login with email/password
	r.POST("/auth/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.Login")
		defer span.End()

		var req auth2.LoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Email == "" || req.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		tokens, err := svc.Auth.Login(stdCtx, &req, ctx.RemoteIP().String())
		if err != nil {
			writeError(ctx, stdCtx, "Failed to login", err)
			return
		}

		writeOK(ctx, stdCtx, "Logged in successfully", tokens)
	})

	// Redeem a refresh token for a new token pair
	r.POST("/auth/refresh", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.Refresh")
		defer span.End()

		var req auth2.RefreshRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.RefreshToken == "" {
			writeError(ctx, stdCtx, "Refresh token is required", perrors.NewErrInvalidRequest("Refresh token is required", errors.New("missing refresh token")))
			return
		}

		tokens, err := svc.Auth.Refresh(stdCtx, req.RefreshToken)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to refresh", err)
			return
		}

		writeOK(ctx, stdCtx, "Token refreshed successfully", tokens)
	})

	// Logout, clearing the server-side session record
	r.POST("/auth/logout", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.Logout")
		defer span.End()

		userID, err := authenticatedUserID(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		var req auth2.LogoutRequest
		if len(ctx.PostBody()) > 0 {
			if err := parseBody(ctx, &req); err != nil {
				writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
				return
			}
		}

		msg, err := svc.Auth.Logout(stdCtx, userID, req.RefreshToken)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to logout", err)
			return
		}

		writeOK(ctx, stdCtx, msg, map[string]any{"message": msg})
	})

	// Start the password-reset flow. The response never reveals whether the
	// email is known.
	r.POST("/auth/forgot-password", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.ForgotPassword")
		defer span.End()

		var req auth2.ForgotPasswordRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Email == "" {
			writeError(ctx, stdCtx, "Email is required", perrors.NewErrInvalidRequest("Email is required", errors.New("missing email")))
			return
		}

		msg := svc.Auth.ForgotPassword(stdCtx, req.Email)
		writeOK(ctx, stdCtx, msg, map[string]any{"message": msg})
	})

	// Redeem a reset token for a new password
	r.POST("/auth/reset-password", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.ResetPassword")
		defer span.End()

		var req auth2.ResetPasswordRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Token == "" {
			writeError(ctx, stdCtx, "Token is required", perrors.NewErrInvalidRequest("Token is required", errors.New("missing token")))
			return
		}
		if len(req.NewPassword) < 8 {
			writeError(ctx, stdCtx, "Password must be at least 8 characters", perrors.NewErrInvalidRequest("Password must be at least 8 characters", errors.New("password too short")))
			return
		}

		if err := svc.Auth.ResetPassword(stdCtx, req.Token, req.NewPassword); err != nil {
			writeError(ctx, stdCtx, "Failed to reset password", err)
			return
		}

		writeOK(ctx, stdCtx, "Password has been reset", map[string]any{"message": "Password has been reset"})
	})

	// Get current user info
	r.GET("/auth/profile", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.Profile")
		defer span.End()

		userID, err := authenticatedUserID(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		profile, err := svc.Auth.Profile(stdCtx, userID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get profile", err)
			return
		}

		writeOK(ctx, stdCtx, "success", profile)
	})

	r.GET("/auth/google", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.GoogleLogin")
		defer span.End()

		if !auth.OAuthEnabled() {
			writeError(ctx, stdCtx, "OAuth login is not configured", perrors.NewErrBadRequest("OAuth login is not configured", errors.New("google oauth disabled")))
			return
		}

		csrf := make([]byte, 16)
		rand.Read(csrf)

		state := authenticator.OAuthState{
			CSRF:      base64.RawURLEncoding.EncodeToString(csrf),
			Redirect:  string(ctx.QueryArgs().Peek("redirect")),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
		}

		encodedState, err := auth.GetSignedState(state)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create signed state", err)
			return
		}

		url := auth.AuthCodeURL(encodedState, oauth2.AccessTypeOnline)
		ctx.Redirect(url, fasthttp.StatusFound)
	})

	r.GET("/auth/google/callback", func(ctx *fasthttp.RequestCtx) {
		stdCtx, span := tracer.Start(requestContext(ctx), "Controller.Auth.GoogleCallback")
		defer span.End()

		if !auth.OAuthEnabled() {
			writeError(ctx, stdCtx, "OAuth login is not configured", perrors.NewErrBadRequest("OAuth login is not configured", errors.New("google oauth disabled")))
			return
		}

		encodedState := ctx.URI().QueryArgs().Peek("state")
		code := ctx.URI().QueryArgs().Peek("code")

		if encodedState == nil || code == nil {
			writeError(ctx, stdCtx, "missing parameters", perrors.NewErrInvalidRequest("missing parameters", errors.New("missing parameters")))
			return
		}

		if _, err := auth.VerifySignedState(string(encodedState)); err != nil {
			writeError(ctx, stdCtx, "Failed to verify state", perrors.NewErrUnauthorized("Failed to verify state", err))
			return
		}

		token, err := auth.Exchange(stdCtx, string(code))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to exchange token", perrors.NewErrUnauthorized("Failed to exchange token", err))
			return
		}

		idToken, err := auth.VerifyIDToken(stdCtx, token)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to verify ID token", perrors.NewErrUnauthorized("Failed to verify ID token", err))
			return
		}

		googleProfile, err := auth.ProfileFromIDToken(idToken)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get claims", perrors.NewErrUnauthorized("Failed to get claims", err))
			return
		}

		tokens, err := svc.Auth.OAuthLogin(stdCtx, &auth2.OAuthProfile{
			Email:     googleProfile.Email,
			FirstName: googleProfile.GivenName,
			LastName:  googleProfile.FamilyName,
			Subject:   googleProfile.Subject,
		}, ctx.RemoteIP().String())
		if err != nil {
			writeError(ctx, stdCtx, "Failed to login", err)
			return
		}

		writeOK(ctx, stdCtx, "Logged in successfully", tokens)
	})
}
