package services

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/trustdesk/trustdesk/internal/config"
	"github.com/trustdesk/trustdesk/internal/db"
	"github.com/trustdesk/trustdesk/internal/mailer"
	"github.com/trustdesk/trustdesk/internal/ratelimit"
	auth2 "github.com/trustdesk/trustdesk/internal/services/auth"
	tenant2 "github.com/trustdesk/trustdesk/internal/services/tenant"
	user2 "github.com/trustdesk/trustdesk/internal/services/user"
)

type Services struct {
	Auth   *auth2.AuthService
	Tenant *tenant2.TenantService
	User   *user2.UserService

	RateLimiter *ratelimit.Limiter
}

// The user and tenant services double as the auth orchestrator's stores.
var (
	_ auth2.UserStore   = (*user2.UserService)(nil)
	_ auth2.TenantStore = (*tenant2.TenantService)(nil)
)

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	userSvc := user2.NewUserService(user2.NewUserRepo(dbconn))
	tenantSvc := tenant2.NewTenantService(tenant2.NewTenantRepo(dbconn))

	issuer := auth2.NewJWTIssuer(
		conf.ACCESS_TOKEN_SECRET,
		conf.REFRESH_TOKEN_SECRET,
		conf.ACCESS_TOKEN_TTL,
		conf.REFRESH_TOKEN_TTL,
	)

	return &Services{
		Auth: auth2.NewAuthService(userSvc, tenantSvc, issuer, mailer.New(conf), auth2.Options{
			ResetBaseURL: conf.APP_BASE_URL,
		}),
		Tenant:      tenantSvc,
		User:        userSvc,
		RateLimiter: ratelimit.NewLimiter(ratelimit.DefaultPolicy(), newRateLimitStorage(conf)),
	}
}

// newRateLimitStorage picks Redis when configured so the tiered caps hold
// across replicas, otherwise falls back to per-process buckets.
func newRateLimitStorage(conf *config.Config) ratelimit.Storage {
	if conf.REDIS_ADDR == "" {
		return ratelimit.NewInMemoryStorage()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.REDIS_ADDR,
		Password: conf.REDIS_PASSWORD,
	})

	slog.Info("Using Redis-backed rate limiting", slog.String("addr", conf.REDIS_ADDR))

	return ratelimit.NewRedisStorage(client, "")
}
