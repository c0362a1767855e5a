package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const DefaultStampCacheTTL = 5 * time.Minute

// ErrStaleToken means the token was issued before the account's security
// stamp last changed.
var ErrStaleToken = errors.New("stale token")

// StampCache caches security stamp fingerprints by internal account id.
// Get returns ok=false on a miss.
type StampCache interface {
	Get(ctx context.Context, accountID int64) (fingerprint string, ok bool, err error)
	Set(ctx context.Context, accountID int64, fingerprint string, ttl time.Duration) error
	Delete(ctx context.Context, accountID int64) error
}

// StampValidator compares the sst claim of an access token to the current
// stamp of its account. Cache may be nil.
type StampValidator struct {
	Store store.Store
	Cache StampCache
	TTL   time.Duration
}

func (v *StampValidator) ttl() time.Duration {
	if v.TTL > 0 {
		return v.TTL
	}
	return DefaultStampCacheTTL
}

// Check returns ErrStaleToken when claims carry an outdated or missing stamp.
// Cache failures fall through to the store.
func (v *StampValidator) Check(ctx context.Context, claims jwtx.Claims) error {
	id, err := claims.InternalID()
	if err != nil || claims.Stamp == "" {
		return ErrStaleToken
	}

	current, err := v.current(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrStaleToken
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(current), []byte(claims.Stamp)) != 1 {
		return ErrStaleToken
	}
	return nil
}

func (v *StampValidator) current(ctx context.Context, id int64) (string, error) {
	l := slogx.FromContext(ctx)

	if v.Cache != nil {
		fp, ok, err := v.Cache.Get(ctx, id)
		if err != nil {
			l.Warn("stamp cache read failed", slog.Any("err", err))
		} else if ok {
			return fp, nil
		}
	}

	stamp, err := v.Store.Accounts().GetSecurityStamp(ctx, id)
	if err != nil {
		return "", err
	}
	fp := StampFingerprint(stamp)

	if v.Cache != nil {
		if err := v.Cache.Set(ctx, id, fp, v.ttl()); err != nil {
			l.Warn("stamp cache write failed", slog.Any("err", err))
		}
	}
	return fp, nil
}

// Forget drops the cached fingerprint after a stamp change so the next check
// reads the store.
func (v *StampValidator) Forget(ctx context.Context, accountID int64) {
	if v == nil || v.Cache == nil {
		return
	}
	if err := v.Cache.Delete(ctx, accountID); err != nil {
		slogx.FromContext(ctx).Warn("stamp cache delete failed", slog.Any("err", err))
	}
}
