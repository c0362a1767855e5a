package authsdk

import "time"

// Error codes returned in the errorCode field of a failed response.
const (
	CodeValidation              = "VALIDATION"
	CodeNotFound                = "NOT_FOUND"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeAccountLocked           = "ACCOUNT_LOCKED"
	CodeAccountDisabled         = "ACCOUNT_DISABLED"
	CodeEmailNotVerified        = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyVerified    = "EMAIL_ALREADY_VERIFIED"
	CodeInvalidOTPCode          = "INVALID_OTP_CODE"
	CodeOTPRateLimitExceeded    = "OTP_RATE_LIMIT_EXCEEDED"
	CodeInvalidRefreshToken     = "INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired     = "REFRESH_TOKEN_EXPIRED"
	CodeRegistrationFailed      = "REGISTRATION_FAILED"
	CodePasswordChangeFailed    = "PASSWORD_CHANGE_FAILED"
	CodePasswordResetFailed     = "PASSWORD_RESET_FAILED"
	CodeEmailVerificationFailed = "EMAIL_VERIFICATION_FAILED"
	CodeEmailSendFailed         = "EMAIL_SEND_FAILED"
	CodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
	CodeInternal                = "INTERNAL"
)

// ClientTypeHeader selects refresh token delivery. Browsers send
// ClientTypeWeb and receive the refresh token as an httpOnly cookie instead of
// in the body.
const (
	ClientTypeHeader  = "X-Client-Type"
	ClientTypeWeb     = "web"
	RefreshCookieName = "refresh_token"
	RefreshCookiePath = "/auth/refresh-token"
)

// Response is the envelope every /auth endpoint answers with.
type Response[T any] struct {
	Succeeded bool     `json:"succeeded"`
	Data      T        `json:"data,omitempty"`
	Errors    []string `json:"errors"`
	ErrorCode string   `json:"errorCode,omitempty"`
}

// ErrorResponse is the envelope of a failed call.
type ErrorResponse struct {
	Succeeded bool     `json:"succeeded" example:"false"`
	Errors    []string `json:"errors" example:"Invalid email or password."`
	ErrorCode string   `json:"errorCode" example:"INVALID_CREDENTIALS"`
}

type RegisterRequest struct {
	Email     string `json:"email" example:"ada@example.com"`
	Password  string `json:"password" example:"P@ssw0rd1"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" example:"ada@example.com"`
	Code  string `json:"code" example:"492017"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"P@ssw0rd1"`
}

// RefreshTokenRequest may omit RefreshToken when it travels in the cookie.
// AccessToken is optional and may be expired.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type EmailRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" example:"ada@example.com"`
	Code        string `json:"code" example:"492017"`
	NewPassword string `json:"newPassword"`
}

type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType" example:"Bearer"`
}

// User is the public view of an account. ID is the external identifier.
type User struct {
	ID             string   `json:"id" example:"usr_Xk3mPq9RtVw2Yz4A"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	EmailConfirmed bool     `json:"emailConfirmed"`
	Roles          []string `json:"roles"`
}

type AuthSession struct {
	Tokens TokenPair `json:"tokens"`
	User   User      `json:"user"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per dependency status. Cache is empty when no
// stamp cache is configured.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}
