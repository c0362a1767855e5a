package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// ClaimsCheck is an extra check run on verified claims, for example a
// security stamp comparison. A non-nil error rejects the request.
type ClaimsCheck func(ctx context.Context, c jwtx.Claims) error

// AuthnMiddleware requires a valid bearer access token and stores its claims
// on the request context.
func AuthnMiddleware(v jwtx.Verifier, checks ...ClaimsCheck) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("access token rejected", "err", err)
				writeBearerError(w, "invalid token")
				return
			}

			for _, check := range checks {
				if err := check(ctx, claims); err != nil {
					log.Debug("access token failed check", "err", err, "sub", claims.Subject)
					writeBearerError(w, "invalid token")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750 error response. Every failure reason shares one description so
// callers cannot tell why a token was refused.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, Envelope{
		Errors:    []string{"Authentication is required."},
		ErrorCode: "UNAUTHORIZED",
	})
}
