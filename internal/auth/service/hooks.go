package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Hook observes committed state changes. Hooks run in order after the
// transaction that produced the events has committed; they cannot fail the
// workflow.
type Hook interface {
	AfterCommit(ctx context.Context, events []domain.Event)
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, events []domain.Event)

func (f HookFunc) AfterCommit(ctx context.Context, events []domain.Event) { f(ctx, events) }

// AuditHook logs one line per event.
type AuditHook struct {
	Logger *slog.Logger
}

func (h AuditHook) AfterCommit(ctx context.Context, events []domain.Event) {
	l := h.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	for _, e := range events {
		l.InfoContext(ctx, "audit",
			slog.String("event", string(e.Type)),
			slog.String("event_id", e.ID),
			slog.Int64("account_id", e.AccountID),
			slog.String("account", e.ExternalID),
			slog.Time("at", e.At),
		)
	}
}
