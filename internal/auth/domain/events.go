package domain

import "time"

type EventType string

const (
	EventAccountRegistered      EventType = "account.registered"
	EventEmailVerified          EventType = "account.email_verified"
	EventLoginSucceeded         EventType = "auth.login_succeeded"
	EventLoginFailed            EventType = "auth.login_failed"
	EventAccountLocked          EventType = "account.locked"
	EventTokenRefreshed         EventType = "auth.token_refreshed"
	EventLoggedOut              EventType = "auth.logged_out"
	EventLoggedOutEverywhere    EventType = "auth.logged_out_all"
	EventPasswordChanged        EventType = "account.password_changed"
	EventPasswordResetRequested EventType = "account.password_reset_requested"
	EventPasswordReset          EventType = "account.password_reset"
	EventVerificationResent     EventType = "account.verification_resent"
)

// Event records a committed state change. Hooks receive them in order.
type Event struct {
	ID         string
	Type       EventType
	AccountID  int64
	ExternalID string
	At         time.Time
}
