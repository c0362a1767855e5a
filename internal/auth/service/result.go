package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// ErrorCode is the machine readable failure kind of a workflow.
type ErrorCode string

const (
	CodeValidation              ErrorCode = "VALIDATION"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeUnauthorized            ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountLocked           ErrorCode = "ACCOUNT_LOCKED"
	CodeAccountDisabled         ErrorCode = "ACCOUNT_DISABLED"
	CodeEmailNotVerified        ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyVerified    ErrorCode = "EMAIL_ALREADY_VERIFIED"
	CodeInvalidOTPCode          ErrorCode = "INVALID_OTP_CODE"
	CodeOTPRateLimitExceeded    ErrorCode = "OTP_RATE_LIMIT_EXCEEDED"
	CodeInvalidRefreshToken     ErrorCode = "INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired     ErrorCode = "REFRESH_TOKEN_EXPIRED"
	CodeRegistrationFailed      ErrorCode = "REGISTRATION_FAILED"
	CodePasswordChangeFailed    ErrorCode = "PASSWORD_CHANGE_FAILED"
	CodePasswordResetFailed     ErrorCode = "PASSWORD_RESET_FAILED"
	CodeEmailVerificationFailed ErrorCode = "EMAIL_VERIFICATION_FAILED"
	CodeEmailSendFailed         ErrorCode = "EMAIL_SEND_FAILED"
	CodeInternal                ErrorCode = "INTERNAL"
)

// Result is what every workflow returns. Workflows never return Go errors;
// a failure is Succeeded=false with exactly one ErrorCode.
type Result[T any] struct {
	Succeeded bool
	Data      T
	Errors    []string
	ErrorCode ErrorCode
}

// None is the payload of workflows that return no data.
type None struct{}

func ok[T any](data T) Result[T] {
	return Result[T]{Succeeded: true, Data: data, Errors: []string{}}
}

func fail[T any](code ErrorCode, msgs ...string) Result[T] {
	if len(msgs) == 0 {
		msgs = []string{defaultMessage(code)}
	}
	return Result[T]{Errors: msgs, ErrorCode: code}
}

// internalError logs err with the request logger and returns a generic
// INTERNAL result. Nothing from err reaches the caller.
func internalError[T any](ctx context.Context, op string, err error) Result[T] {
	slogx.FromContext(ctx).Error("auth workflow failed", slog.String("op", op), slog.Any("err", err))
	return fail[T](CodeInternal)
}

// rejection is a classified failure raised inside a transaction so the
// surrounding WithTx rolls back before the workflow reports it.
type rejection struct {
	code ErrorCode
	msgs []string
}

func (r *rejection) Error() string {
	return string(r.code) + ": " + strings.Join(r.msgs, "; ")
}

func reject(code ErrorCode, msgs ...string) error {
	return &rejection{code: code, msgs: msgs}
}

// fromError turns a rejection into its failure result and anything else into
// INTERNAL.
func fromError[T any](ctx context.Context, op string, err error) Result[T] {
	var r *rejection
	if errors.As(err, &r) {
		return fail[T](r.code, r.msgs...)
	}
	return internalError[T](ctx, op, err)
}

func defaultMessage(code ErrorCode) string {
	switch code {
	case CodeNotFound:
		return "Account not found."
	case CodeUnauthorized:
		return "Authentication is required."
	case CodeInvalidCredentials:
		return "Invalid email or password."
	case CodeAccountLocked:
		return "Account is locked. Try again later."
	case CodeAccountDisabled:
		return "Account is disabled."
	case CodeEmailNotVerified:
		return "Email address has not been verified."
	case CodeEmailAlreadyVerified:
		return "Email address is already verified."
	case CodeInvalidOTPCode:
		return "Invalid or expired code."
	case CodeOTPRateLimitExceeded:
		return "Too many codes requested. Try again later."
	case CodeInvalidRefreshToken:
		return "Invalid refresh token."
	case CodeRefreshTokenExpired:
		return "Refresh token has expired or was revoked."
	case CodeEmailVerificationFailed:
		return "Email verification failed."
	case CodeEmailSendFailed:
		return "Failed to send email."
	case CodeInternal:
		return "An unexpected error occurred."
	default:
		return string(code)
	}
}
