package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/metrics"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is an optional dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService *service.AuthService
	Stamps      *service.StampValidator // optional: rejects tokens with a stale security stamp
	Cache       Pinger                  // optional: reported by /readyz
	Metrics     *metrics.Metrics        // optional
	MetricsPage http.Handler            // optional: served at /metrics

	// SecureCookies sets the Secure flag on the browser refresh cookie.
	SecureCookies bool
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		SecureCookies: true,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. Optional fields must be set before.
func (r *Router) ApplyRoutes() {
	// Metrics wrap the mux directly so the matched pattern is visible.
	r.middlewares = append(r.middlewares, r.Metrics.Middleware)

	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Authentication Service API
//	@version		0.1.0
//	@description	Account registration, email verification, password sign-in and refresh token rotation.
//	@description
//	@description				Access tokens are HS256 signed JWTs. Browser clients send "X-Client-Type: web" and receive the refresh token as an httpOnly cookie.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	if r.Stamps == nil {
		return httpx.AuthnMiddleware(r.verifier)
	}
	return httpx.AuthnMiddleware(r.verifier, r.Stamps.Check)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService, SecureCookies: r.SecureCookies}

	// Password and code entry: strict, keyed by IP and the submitted email so
	// one address cannot be brute forced from many requests.
	strictByEmail := httpx.RateLimitByIPAndField(httpx.StrictLimit, "email")

	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister), httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle("POST /auth/verify-email",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail), strictByEmail))
	r.Mux.Handle("POST /auth/resend-verification-email",
		httpx.Chain(http.HandlerFunc(h.HandleResendVerificationEmail), httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIPAndField(httpx.StrictLimit, "email")))
	r.Mux.Handle("POST /auth/refresh-token",
		httpx.Chain(http.HandlerFunc(h.HandleRefreshToken), httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle("POST /auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword), httpx.RateLimitByIPAndField(httpx.StrictLimit, "email")))
	r.Mux.Handle("POST /auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword), httpx.RateLimitByIPAndField(httpx.StrictLimit, "email")))

	// Authenticated: limited per account once the token is verified.
	r.Mux.Handle("POST /auth/logout-all",
		httpx.Chain(http.HandlerFunc(h.HandleLogoutAll),
			r.authn(),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /auth/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			r.authn(),
			httpx.RateLimitBySubject(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Cache),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	if r.MetricsPage != nil {
		r.Mux.Handle("GET /metrics", httpx.Chain(r.MetricsPage, httpx.RateLimitByIP(httpx.PublicLimit)))
	}
}
