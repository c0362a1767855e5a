package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const TokenTypeBearer = "Bearer"

// AuthService runs the account workflows. Each workflow returns a Result and
// never a Go error. State changes of one workflow commit in a single store
// transaction; notifications and hooks run after the commit.
type AuthService struct {
	Store    store.Store
	Accounts *AccountDirectory
	OTP      *OTPManager
	Tokens   *TokenIssuer
	Refresh  *RefreshTokenLedger
	Stamps   *StampValidator // optional
	Notifier Notifier
	Hooks    []Hook
	Now      func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) notifier() Notifier {
	if s.Notifier == nil {
		return NopNotifier{}
	}
	return s.Notifier
}

func (s *AuthService) event(t domain.EventType, a domain.Account) domain.Event {
	now := s.now()
	return domain.Event{
		ID:         idx.NewAt(now).String(),
		Type:       t,
		AccountID:  a.ID,
		ExternalID: a.ExternalID,
		At:         now,
	}
}

func (s *AuthService) fire(ctx context.Context, events ...domain.Event) {
	for _, h := range s.Hooks {
		h.AfterCommit(ctx, events)
	}
}

// issueSession signs an access token and stores a fresh refresh token through
// the given store.
func (s *AuthService) issueSession(ctx context.Context, st store.Store, a domain.Account) (domain.AuthSession, error) {
	access, accessExp, err := s.Tokens.IssueAccessToken(a)
	if err != nil {
		return domain.AuthSession{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.Tokens.IssueRefreshToken()
	if err != nil {
		return domain.AuthSession{}, err
	}
	refreshExp := s.Tokens.RefreshTokenExpiry()
	if _, err := s.Refresh.WithStore(st).Create(ctx, a.ID, refresh, refreshExp); err != nil {
		return domain.AuthSession{}, err
	}
	return newSession(a, access, accessExp, refresh, refreshExp), nil
}

func newSession(a domain.Account, access string, accessExp time.Time, refresh string, refreshExp time.Time) domain.AuthSession {
	return domain.AuthSession{
		Tokens: domain.TokenPair{
			AccessToken:           access,
			AccessTokenExpiresAt:  accessExp,
			RefreshToken:          refresh,
			RefreshTokenExpiresAt: refreshExp,
			TokenType:             TokenTypeBearer,
		},
		User: domain.ProjectAccount(a),
	}
}

func lockedMessage(minutes int) string {
	if minutes <= 1 {
		return "Account is locked. Try again in 1 minute."
	}
	return fmt.Sprintf("Account is locked. Try again in %d minutes.", minutes)
}

// Register creates an unconfirmed account and sends it a verification code.
// A failed delivery does not fail registration; the user can ask for a resend.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) Result[domain.UserProjection] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[domain.UserProjection](CodeValidation, problems...)
	}
	l := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(req.Email)
	hash, err := s.Accounts.HashNewPassword(req.Password, email, req.FirstName, req.LastName)
	var policyErr *PolicyError
	if errors.As(err, &policyErr) {
		return fail[domain.UserProjection](CodeRegistrationFailed, policyErr.Problems...)
	}
	if err != nil {
		return internalError[domain.UserProjection](ctx, "register", err)
	}

	var (
		account domain.Account
		code    string
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = s.Accounts.WithStore(tx).Create(ctx, NewAccount{
			Email:        email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if errors.Is(err, ErrEmailTaken) {
			return reject(CodeRegistrationFailed, fmt.Sprintf("Email '%s' is already taken.", email))
		}
		if err != nil {
			return err
		}

		code, err = s.OTP.WithStore(tx).Create(ctx, account.ID, domain.PurposeEmailVerification)
		return err
	})
	if err != nil {
		return fromError[domain.UserProjection](ctx, "register", err)
	}

	s.fire(ctx, s.event(domain.EventAccountRegistered, account))

	if err := s.notifier().SendVerificationCode(ctx, account.Email, account.FirstName, code); err != nil {
		l.Warn("verification email not sent", slogx.Email(account.Email), slog.Any("err", err))
	}

	return ok(domain.ProjectAccount(account))
}

// VerifyEmail consumes a verification code, confirms the address and signs
// the user in.
func (s *AuthService) VerifyEmail(ctx context.Context, req VerifyEmailRequest) Result[domain.AuthSession] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[domain.AuthSession](CodeValidation, problems...)
	}

	account, err := s.Accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fail[domain.AuthSession](CodeNotFound)
	}
	if err != nil {
		return internalError[domain.AuthSession](ctx, "verify_email", err)
	}
	if account.EmailConfirmed {
		return fail[domain.AuthSession](CodeEmailAlreadyVerified)
	}

	var session domain.AuthSession
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		valid, err := s.OTP.WithStore(tx).Validate(ctx, account.ID, req.Code, domain.PurposeEmailVerification)
		if err != nil {
			return err
		}
		if !valid {
			return reject(CodeInvalidOTPCode)
		}

		if err := s.Accounts.WithStore(tx).ConfirmEmail(ctx, account.ID); err != nil {
			slogx.FromContext(ctx).Error("confirm email failed", slog.Any("err", err))
			return reject(CodeEmailVerificationFailed)
		}
		account.EmailConfirmed = true

		session, err = s.issueSession(ctx, tx, account)
		return err
	})
	if err != nil {
		return fromError[domain.AuthSession](ctx, "verify_email", err)
	}

	s.fire(ctx, s.event(domain.EventEmailVerified, account))

	if err := s.notifier().SendWelcome(ctx, account.Email, account.FirstName); err != nil {
		slogx.FromContext(ctx).Warn("welcome email not sent", slogx.Email(account.Email), slog.Any("err", err))
	}

	return ok(session)
}

// Login checks a password against the lockout policy and signs the user in.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) Result[domain.AuthSession] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[domain.AuthSession](CodeValidation, problems...)
	}
	l := slogx.FromContext(ctx)

	account, err := s.Accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("login for unknown email", slogx.Email(req.Email))
		return fail[domain.AuthSession](CodeInvalidCredentials)
	}
	if err != nil {
		return internalError[domain.AuthSession](ctx, "login", err)
	}

	if !account.EmailConfirmed {
		return fail[domain.AuthSession](CodeEmailNotVerified)
	}
	if account.Status != domain.AccountActive {
		return fail[domain.AuthSession](CodeAccountDisabled)
	}
	if s.Accounts.IsLockedOut(account) {
		return fail[domain.AuthSession](CodeAccountLocked, lockedMessage(s.Accounts.LockoutRemainingMinutes(account)))
	}

	matched, err := s.Accounts.CheckPassword(account, req.Password)
	if err != nil {
		return internalError[domain.AuthSession](ctx, "login", err)
	}
	if !matched {
		locked, err := s.Accounts.RecordFailedAttempt(ctx, account.ID)
		if err != nil {
			return internalError[domain.AuthSession](ctx, "login", err)
		}
		if locked {
			l.Warn("account locked after failed logins", slog.String("account", account.ExternalID))
			s.fire(ctx, s.event(domain.EventLoginFailed, account), s.event(domain.EventAccountLocked, account))
			minutes := int(s.Accounts.lockoutDuration().Round(time.Minute) / time.Minute)
			return fail[domain.AuthSession](CodeAccountLocked, lockedMessage(minutes))
		}
		s.fire(ctx, s.event(domain.EventLoginFailed, account))
		return fail[domain.AuthSession](CodeInvalidCredentials)
	}

	var session domain.AuthSession
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.Accounts.WithStore(tx).ResetFailedAttempts(ctx, account.ID); err != nil {
			return err
		}
		account.FailedAttempts = 0
		var err error
		session, err = s.issueSession(ctx, tx, account)
		return err
	})
	if err != nil {
		return fromError[domain.AuthSession](ctx, "login", err)
	}

	s.fire(ctx, s.event(domain.EventLoginSucceeded, account))
	return ok(session)
}

// RefreshToken rotates a refresh token. The presented token is revoked with a
// pointer to its successor, so presenting it again fails.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) Result[domain.AuthSession] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[domain.AuthSession](CodeValidation, problems...)
	}

	var (
		account domain.Account
		session domain.AuthSession
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ledger := s.Refresh.WithStore(tx)

		current, err := ledger.GetByToken(ctx, req.RefreshToken)
		if errors.Is(err, store.ErrNotFound) {
			return reject(CodeInvalidRefreshToken)
		}
		if err != nil {
			return err
		}
		if !current.IsActive(s.now()) {
			return reject(CodeRefreshTokenExpired)
		}

		if req.AccessToken != "" {
			claims, err := s.Tokens.ReadExpiredTokenClaims(req.AccessToken)
			if err != nil {
				return reject(CodeInvalidRefreshToken)
			}
			if id, err := claims.InternalID(); err != nil || id != current.AccountID {
				return reject(CodeInvalidRefreshToken)
			}
		}

		account, err = s.Accounts.WithStore(tx).FindByID(ctx, current.AccountID)
		if errors.Is(err, store.ErrNotFound) {
			return reject(CodeNotFound)
		}
		if err != nil {
			return err
		}
		if account.Status != domain.AccountActive {
			return reject(CodeAccountDisabled)
		}

		access, accessExp, err := s.Tokens.IssueAccessToken(account)
		if err != nil {
			return fmt.Errorf("sign access token: %w", err)
		}
		next, err := s.Tokens.IssueRefreshToken()
		if err != nil {
			return err
		}
		nextExp := s.Tokens.RefreshTokenExpiry()

		err = ledger.Rotate(ctx, account.ID, req.RefreshToken, next, nextExp)
		if errors.Is(err, store.ErrConflict) {
			return reject(CodeRefreshTokenExpired)
		}
		if err != nil {
			return err
		}

		session = newSession(account, access, accessExp, next, nextExp)
		return nil
	})
	if err != nil {
		return fromError[domain.AuthSession](ctx, "refresh_token", err)
	}

	s.fire(ctx, s.event(domain.EventTokenRefreshed, account))
	return ok(session)
}

// Logout revokes the given refresh token. It always succeeds, even for
// unknown tokens.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) Result[None] {
	if refreshToken == "" {
		return ok(None{})
	}
	l := slogx.FromContext(ctx)

	rec, err := s.Refresh.GetByToken(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Warn("logout lookup failed", slog.Any("err", err))
		}
		return ok(None{})
	}
	if err := s.Refresh.Revoke(ctx, refreshToken, nil); err != nil {
		l.Warn("logout revoke failed", slog.Any("err", err))
		return ok(None{})
	}

	s.fire(ctx, s.event(domain.EventLoggedOut, domain.Account{ID: rec.AccountID}))
	return ok(None{})
}

// LogoutAll revokes every refresh token of the caller and rotates the
// security stamp so outstanding access tokens go stale.
func (s *AuthService) LogoutAll(ctx context.Context, caller Caller) Result[None] {
	if !caller.Authenticated() {
		return fail[None](CodeUnauthorized)
	}

	account := domain.Account{ID: caller.AccountID, ExternalID: caller.ExternalID}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.Refresh.WithStore(tx).RevokeAllForAccount(ctx, account.ID); err != nil {
			return err
		}
		_, err := s.Accounts.WithStore(tx).InvalidateSecurityStamp(ctx, account.ID)
		if errors.Is(err, store.ErrNotFound) {
			return reject(CodeUnauthorized)
		}
		return err
	})
	if err != nil {
		return fromError[None](ctx, "logout_all", err)
	}

	s.Stamps.Forget(ctx, account.ID)
	s.fire(ctx, s.event(domain.EventLoggedOutEverywhere, account))
	return ok(None{})
}

// ChangePassword replaces the caller's password after checking the current
// one. Every session of the account is ended.
func (s *AuthService) ChangePassword(ctx context.Context, caller Caller, req ChangePasswordRequest) Result[None] {
	if !caller.Authenticated() {
		return fail[None](CodeUnauthorized)
	}
	if problems := req.Validate(); len(problems) > 0 {
		return fail[None](CodeValidation, problems...)
	}

	account, err := s.Accounts.FindByID(ctx, caller.AccountID)
	if errors.Is(err, store.ErrNotFound) {
		return fail[None](CodeUnauthorized)
	}
	if err != nil {
		return internalError[None](ctx, "change_password", err)
	}

	matched, err := s.Accounts.CheckPassword(account, req.CurrentPassword)
	if err != nil {
		return internalError[None](ctx, "change_password", err)
	}
	if !matched {
		return fail[None](CodePasswordChangeFailed, "Incorrect password.")
	}

	hash, err := s.Accounts.HashNewPassword(req.NewPassword, account.Email, account.FirstName, account.LastName)
	var policyErr *PolicyError
	if errors.As(err, &policyErr) {
		return fail[None](CodePasswordChangeFailed, policyErr.Problems...)
	}
	if err != nil {
		return internalError[None](ctx, "change_password", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.Accounts.WithStore(tx).SetPasswordHash(ctx, account.ID, hash); err != nil {
			return err
		}
		_, err := s.Refresh.WithStore(tx).RevokeAllForAccount(ctx, account.ID)
		return err
	})
	if err != nil {
		return internalError[None](ctx, "change_password", err)
	}

	s.Stamps.Forget(ctx, account.ID)
	s.fire(ctx, s.event(domain.EventPasswordChanged, account))
	return ok(None{})
}

// ForgotPassword sends a password reset code. Unknown addresses succeed
// silently. Unlike registration, a failed delivery fails the request.
func (s *AuthService) ForgotPassword(ctx context.Context, req EmailRequest) Result[None] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[None](CodeValidation, problems...)
	}
	l := slogx.FromContext(ctx)

	account, err := s.Accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("password reset for unknown email", slogx.Email(req.Email))
		return ok(None{})
	}
	if err != nil {
		return internalError[None](ctx, "forgot_password", err)
	}

	code, err := s.OTP.CreateLimited(ctx, account.ID, domain.PurposePasswordReset)
	if errors.Is(err, ErrOTPRateLimited) {
		return fail[None](CodeOTPRateLimitExceeded)
	}
	if err != nil {
		return internalError[None](ctx, "forgot_password", err)
	}

	s.fire(ctx, s.event(domain.EventPasswordResetRequested, account))

	if err := s.notifier().SendPasswordResetCode(ctx, account.Email, account.FirstName, code); err != nil {
		l.Error("password reset email not sent", slogx.Email(account.Email), slog.Any("err", err))
		return fail[None](CodeEmailSendFailed)
	}
	return ok(None{})
}

// ResetPassword sets a new password using a reset code. The security stamp
// rotates and every refresh token is revoked.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) Result[None] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[None](CodeValidation, problems...)
	}

	account, err := s.Accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fail[None](CodeInvalidOTPCode)
	}
	if err != nil {
		return internalError[None](ctx, "reset_password", err)
	}

	// Hashing is slow; do it before taking the write lock. Policy problems are
	// only reported once the code has been checked.
	hash, hashErr := s.Accounts.HashNewPassword(req.NewPassword, account.Email, account.FirstName, account.LastName)
	var policyErr *PolicyError
	if hashErr != nil && !errors.As(hashErr, &policyErr) {
		return internalError[None](ctx, "reset_password", hashErr)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		otp := s.OTP.WithStore(tx)
		valid, err := otp.Validate(ctx, account.ID, req.Code, domain.PurposePasswordReset)
		if err != nil {
			return err
		}
		if !valid {
			return reject(CodeInvalidOTPCode)
		}
		if policyErr != nil {
			return reject(CodePasswordResetFailed, policyErr.Problems...)
		}

		if _, err := s.Accounts.WithStore(tx).SetPasswordHash(ctx, account.ID, hash); err != nil {
			return err
		}
		if _, err := s.Refresh.WithStore(tx).RevokeAllForAccount(ctx, account.ID); err != nil {
			return err
		}
		return otp.Invalidate(ctx, account.ID, domain.PurposePasswordReset)
	})
	if err != nil {
		return fromError[None](ctx, "reset_password", err)
	}

	s.Stamps.Forget(ctx, account.ID)
	s.fire(ctx, s.event(domain.EventPasswordReset, account))
	return ok(None{})
}

// ResendVerificationEmail issues a new verification code for an unconfirmed
// account. Delivery failures are reported.
func (s *AuthService) ResendVerificationEmail(ctx context.Context, req EmailRequest) Result[None] {
	if problems := req.Validate(); len(problems) > 0 {
		return fail[None](CodeValidation, problems...)
	}

	account, err := s.Accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fail[None](CodeNotFound)
	}
	if err != nil {
		return internalError[None](ctx, "resend_verification", err)
	}
	if account.EmailConfirmed {
		return fail[None](CodeEmailAlreadyVerified)
	}

	code, err := s.OTP.CreateLimited(ctx, account.ID, domain.PurposeEmailVerification)
	if errors.Is(err, ErrOTPRateLimited) {
		return fail[None](CodeOTPRateLimitExceeded)
	}
	if err != nil {
		return internalError[None](ctx, "resend_verification", err)
	}

	s.fire(ctx, s.event(domain.EventVerificationResent, account))

	if err := s.notifier().SendVerificationCode(ctx, account.Email, account.FirstName, code); err != nil {
		slogx.FromContext(ctx).Error("verification email not sent", slogx.Email(account.Email), slog.Any("err", err))
		return fail[None](CodeEmailSendFailed)
	}
	return ok(None{})
}

// Me returns the caller's own projection.
func (s *AuthService) Me(ctx context.Context, caller Caller) Result[domain.UserProjection] {
	if !caller.Authenticated() {
		return fail[domain.UserProjection](CodeUnauthorized)
	}
	account, err := s.Accounts.FindByID(ctx, caller.AccountID)
	if errors.Is(err, store.ErrNotFound) {
		return fail[domain.UserProjection](CodeNotFound)
	}
	if err != nil {
		return internalError[domain.UserProjection](ctx, "me", err)
	}
	return ok(domain.ProjectAccount(account))
}
