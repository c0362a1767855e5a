package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// AuthHandler serves the /auth endpoints. Handlers decode the body, run one
// workflow and write its result envelope.
type AuthHandler struct {
	Auth          *service.AuthService
	SecureCookies bool
}

// writeSession moves the refresh token into a cookie for browser clients.
func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, res service.Result[domain.AuthSession]) {
	if res.Succeeded && isWebClient(r) {
		tokens := res.Data.Tokens
		http.SetCookie(w, refreshCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresAt, h.SecureCookies))
		res.Data.Tokens.RefreshToken = ""
	}
	writeResult(w, res)
}

func caller(r *http.Request) service.Caller {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return service.Caller{}
	}
	return service.CallerFromClaims(&claims)
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an unverified account and emails a 6 digit verification code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest					true	"New account"
//	@Success		200		{object}	authsdk.Response[authsdk.User]			"created account"
//	@Failure		400		{object}	authsdk.ErrorResponse					"VALIDATION, REGISTRATION_FAILED"
//	@Failure		429		{object}	authsdk.ErrorResponse					"RATE_LIMIT_EXCEEDED"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.Auth.Register(r.Context(), req))
}

// HandleVerifyEmail godoc
//
//	@Summary		Verify email
//	@Description	Consumes a verification code, confirms the address and signs the user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			X-Client-Type	header		string								false	"web to receive the refresh token as a cookie"
//	@Param			request			body		authsdk.VerifyEmailRequest			true	"Email and code"
//	@Success		200				{object}	authsdk.Response[authsdk.AuthSession]	"tokens and user"
//	@Failure		400				{object}	authsdk.ErrorResponse				"VALIDATION, INVALID_OTP_CODE"
//	@Failure		404				{object}	authsdk.ErrorResponse				"NOT_FOUND"
//	@Failure		409				{object}	authsdk.ErrorResponse				"EMAIL_ALREADY_VERIFIED"
//	@Router			/auth/verify-email [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req service.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}
	h.writeSession(w, r, h.Auth.VerifyEmail(r.Context(), req))
}

// HandleResendVerificationEmail godoc
//
//	@Summary		Resend verification email
//	@Description	Issues a new verification code. Limited to 5 codes per 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.EmailRequest	true	"Account email"
//	@Success		200		{object}	authsdk.Response[any]	"code sent"
//	@Failure		404		{object}	authsdk.ErrorResponse	"NOT_FOUND"
//	@Failure		409		{object}	authsdk.ErrorResponse	"EMAIL_ALREADY_VERIFIED"
//	@Failure		429		{object}	authsdk.ErrorResponse	"OTP_RATE_LIMIT_EXCEEDED"
//	@Failure		502		{object}	authsdk.ErrorResponse	"EMAIL_SEND_FAILED"
//	@Router			/auth/resend-verification-email [post].
func (h *AuthHandler) HandleResendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req service.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.Auth.ResendVerificationEmail(r.Context(), req))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Password sign-in. Five consecutive failures lock the account for 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			X-Client-Type	header		string								false	"web to receive the refresh token as a cookie"
//	@Param			request			body		authsdk.LoginRequest				true	"Credentials"
//	@Success		200				{object}	authsdk.Response[authsdk.AuthSession]	"tokens and user"
//	@Failure		401				{object}	authsdk.ErrorResponse				"INVALID_CREDENTIALS"
//	@Failure		403				{object}	authsdk.ErrorResponse				"EMAIL_NOT_VERIFIED, ACCOUNT_DISABLED"
//	@Failure		423				{object}	authsdk.ErrorResponse				"ACCOUNT_LOCKED"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	h.writeSession(w, r, h.Auth.Login(r.Context(), req))
}

// HandleRefreshToken godoc
//
//	@Summary		Refresh token
//	@Description	Rotates a refresh token. Browser clients may omit the body and rely on the cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			X-Client-Type	header		string								false	"web to read and write the refresh token cookie"
//	@Param			request			body		authsdk.RefreshTokenRequest			false	"Refresh token and optional expired access token"
//	@Success		200				{object}	authsdk.Response[authsdk.AuthSession]	"new tokens"
//	@Failure		401				{object}	authsdk.ErrorResponse				"INVALID_REFRESH_TOKEN, REFRESH_TOKEN_EXPIRED"
//	@Router			/auth/refresh-token [post].
func (h *AuthHandler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshTokenRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken = refreshCookieValue(r)
	}
	h.writeSession(w, r, h.Auth.RefreshToken(r.Context(), req))
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Revokes one refresh token. Always succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogoutRequest	false	"Refresh token"
//	@Success		200		{object}	authsdk.Response[any]	"signed out"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LogoutRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken = refreshCookieValue(r)
	}

	res := h.Auth.Logout(r.Context(), req.RefreshToken)
	if isWebClient(r) {
		clearRefreshCookie(w, h.SecureCookies)
	}
	writeResult(w, res)
}

// HandleLogoutAll godoc
//
//	@Summary		Logout everywhere
//	@Description	Revokes every refresh token of the caller and invalidates outstanding access tokens.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.Response[any]	"signed out"
//	@Failure		401	{object}	authsdk.ErrorResponse	"UNAUTHORIZED"
//	@Router			/auth/logout-all [post].
func (h *AuthHandler) HandleLogoutAll(w http.ResponseWriter, r *http.Request) {
	res := h.Auth.LogoutAll(r.Context(), caller(r))
	if isWebClient(r) {
		clearRefreshCookie(w, h.SecureCookies)
	}
	writeResult(w, res)
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password and signs the caller out of every session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	authsdk.Response[any]			"password changed"
//	@Failure		400		{object}	authsdk.ErrorResponse			"PASSWORD_CHANGE_FAILED"
//	@Failure		401		{object}	authsdk.ErrorResponse			"UNAUTHORIZED"
//	@Router			/auth/change-password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.Auth.ChangePassword(r.Context(), caller(r), req))
}

// HandleForgotPassword godoc
//
//	@Summary		Forgot password
//	@Description	Emails a password reset code. Unknown addresses also succeed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.EmailRequest	true	"Account email"
//	@Success		200		{object}	authsdk.Response[any]	"code sent if the account exists"
//	@Failure		429		{object}	authsdk.ErrorResponse	"OTP_RATE_LIMIT_EXCEEDED"
//	@Failure		502		{object}	authsdk.ErrorResponse	"EMAIL_SEND_FAILED"
//	@Router			/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req service.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.Auth.ForgotPassword(r.Context(), req))
}

// HandleResetPassword godoc
//
//	@Summary		Reset password
//	@Description	Sets a new password using a reset code and revokes every session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Email, code and new password"
//	@Success		200		{object}	authsdk.Response[any]			"password reset"
//	@Failure		400		{object}	authsdk.ErrorResponse			"INVALID_OTP_CODE, PASSWORD_RESET_FAILED"
//	@Router			/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.Auth.ResetPassword(r.Context(), req))
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.Response[authsdk.User]	"caller"
//	@Failure		401	{object}	authsdk.ErrorResponse			"UNAUTHORIZED"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Auth.Me(r.Context(), caller(r)))
}
