package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Notifier delivers out of band messages. Implementations must not retain
// the code after returning.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, firstName, code string) error
	SendPasswordResetCode(ctx context.Context, email, firstName, code string) error
	SendWelcome(ctx context.Context, email, firstName string) error
}

// NopNotifier drops every message.
type NopNotifier struct{}

func (NopNotifier) SendVerificationCode(context.Context, string, string, string) error  { return nil }
func (NopNotifier) SendPasswordResetCode(context.Context, string, string, string) error { return nil }
func (NopNotifier) SendWelcome(context.Context, string, string) error                  { return nil }

// LogNotifier writes deliveries to the log with the address masked. Codes are
// only included when RevealCodes is set, which is meant for local development.
type LogNotifier struct {
	Logger      *slog.Logger
	RevealCodes bool
}

func (n LogNotifier) logger(ctx context.Context) *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slogx.FromContext(ctx)
}

func (n LogNotifier) send(ctx context.Context, kind, email, code string) {
	attrs := []any{slog.String("kind", kind), slogx.Email(email)}
	if n.RevealCodes && code != "" {
		attrs = append(attrs, slog.String("code", code))
	}
	n.logger(ctx).InfoContext(ctx, "notification sent", attrs...)
}

func (n LogNotifier) SendVerificationCode(ctx context.Context, email, _ string, code string) error {
	n.send(ctx, "email_verification", email, code)
	return nil
}

func (n LogNotifier) SendPasswordResetCode(ctx context.Context, email, _ string, code string) error {
	n.send(ctx, "password_reset", email, code)
	return nil
}

func (n LogNotifier) SendWelcome(ctx context.Context, email, _ string) error {
	n.send(ctx, "welcome", email, "")
	return nil
}
