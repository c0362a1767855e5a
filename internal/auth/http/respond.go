package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// statusFor maps a workflow error code to its HTTP status.
func statusFor(code service.ErrorCode) int {
	switch code {
	case service.CodeValidation,
		service.CodeInvalidOTPCode,
		service.CodeRegistrationFailed,
		service.CodePasswordChangeFailed,
		service.CodePasswordResetFailed,
		service.CodeEmailVerificationFailed:
		return http.StatusBadRequest
	case service.CodeUnauthorized,
		service.CodeInvalidCredentials,
		service.CodeInvalidRefreshToken,
		service.CodeRefreshTokenExpired:
		return http.StatusUnauthorized
	case service.CodeAccountDisabled, service.CodeEmailNotVerified:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeEmailAlreadyVerified:
		return http.StatusConflict
	case service.CodeAccountLocked:
		return http.StatusLocked
	case service.CodeOTPRateLimitExceeded:
		return http.StatusTooManyRequests
	case service.CodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeResult[T any](w http.ResponseWriter, res service.Result[T]) {
	if !res.Succeeded {
		httpx.WriteError(w, statusFor(res.ErrorCode), string(res.ErrorCode), res.Errors...)
		return
	}

	var data any = res.Data
	if _, empty := data.(service.None); empty {
		data = nil
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{Succeeded: true, Data: data, Errors: []string{}})
}

// decode reads the JSON body into dst and answers 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, string(service.CodeValidation), err.Error())
		return false
	}
	return true
}

// decodeOptional is decode for endpoints whose body may be absent because the
// refresh token travels in a cookie.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := httpx.DecodeJSON(w, r, dst)
	if err == nil || errors.Is(err, httpx.ErrEmptyBody) {
		return true
	}
	httpx.WriteError(w, http.StatusBadRequest, string(service.CodeValidation), err.Error())
	return false
}

func isWebClient(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(authsdk.ClientTypeHeader)), authsdk.ClientTypeWeb)
}

func refreshCookieValue(r *http.Request) string {
	c, err := r.Cookie(authsdk.RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func refreshCookie(value string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     authsdk.RefreshCookieName,
		Value:    value,
		Path:     authsdk.RefreshCookiePath,
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func clearRefreshCookie(w http.ResponseWriter, secure bool) {
	c := refreshCookie("", time.Unix(0, 0), secure)
	c.MaxAge = -1
	http.SetCookie(w, c)
}
