package api

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/trustdesk/trustdesk/internal/api/authenticator"
	"github.com/trustdesk/trustdesk/internal/api/controllers"
	"github.com/trustdesk/trustdesk/internal/config"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/propagation"
)

var tracePropagator = propagation.TraceContext{}

func (s *Server) initNewRoutes() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/auth/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	conf := config.ReadConfig()
	auth, err := authenticator.New(conf)
	if err != nil {
		log.Fatal(err)
	}

	controllers.RegisterAuthRoutes(r, s.services, auth)

	return s.withMiddlewares(r.Handler)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		uri := ctx.URI()
		requestURI := string(uri.FullURI())
		slog.Info("Started processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		ctx.SetUserValue("traceCtx", traceCtx)

		// Rate-limit check
		path := string(ctx.Path())
		allowed, err := s.services.RateLimiter.Allow(ctx, path, ctx.RemoteIP().String())
		if err != nil {
			slog.ErrorContext(traceCtx, "Rate limiter failure", slog.Any("error", err))
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			return
		}
		if !allowed {
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			ctx.Response.Header.Set("content-type", "application/json")
			ctx.SetBodyString(`{"error":true,"message":"Too many requests, please try again later"}`)
			return
		}

		// Auth check
		if !isPublicRoute(ctx) {
			accessToken := strings.TrimPrefix(string(ctx.Request.Header.Peek("Authorization")), "Bearer ")
			if accessToken == "" {
				accessToken = string(ctx.Request.Header.Cookie("access_token"))
			}

			if accessToken == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, err := s.services.Auth.VerifyAccessToken(accessToken)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			// Store user identity in context for downstream handlers
			ctx.SetUserValue("userID", claims.UserID)
			ctx.SetUserValue("tenantID", claims.TenantID)
			ctx.SetUserValue("userRole", claims.Role)
		}

		next(ctx)

		slog.Info("Finished processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI), slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	path := string(ctx.Path())

	publicAuthRoutes := []string{
		"/auth/health",
		"/auth/register",
		"/auth/login",
		"/auth/refresh",
		"/auth/forgot-password",
		"/auth/reset-password",
		"/auth/google",
		"/auth/google/callback",
	}

	for _, route := range publicAuthRoutes {
		if path == route {
			return true
		}
	}

	return false
}
