package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	t0         = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	testKey    = []byte("0123456789abcdef0123456789abcdef")
	errSendOff = errors.New("smtp unavailable")
)

const testPassword = "P@ssw0rd1"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// plainHasher keeps tests fast; Argon2id is covered in pkg/cryptox.
type plainHasher struct {
	verifies atomic.Int32
}

func (h *plainHasher) Hash(password string) (string, error) { return "plain$" + password, nil }

func (h *plainHasher) Verify(password, encodedHash string) error {
	h.verifies.Add(1)
	if !strings.HasPrefix(encodedHash, "plain$") {
		return cryptox.ErrInvalidHash
	}
	if encodedHash != "plain$"+password {
		return cryptox.ErrPasswordMismatch
	}
	return nil
}

type sentCode struct {
	Email   string
	Code    string
	Purpose domain.OTPPurpose
}

type recordingNotifier struct {
	mu          sync.Mutex
	codes       []sentCode
	welcomes    []string
	failCodes   bool
	failWelcome bool
}

func (n *recordingNotifier) record(email, code string, purpose domain.OTPPurpose) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failCodes {
		return errSendOff
	}
	n.codes = append(n.codes, sentCode{Email: email, Code: code, Purpose: purpose})
	return nil
}

func (n *recordingNotifier) SendVerificationCode(_ context.Context, email, _ string, code string) error {
	return n.record(email, code, domain.PurposeEmailVerification)
}

func (n *recordingNotifier) SendPasswordResetCode(_ context.Context, email, _ string, code string) error {
	return n.record(email, code, domain.PurposePasswordReset)
}

func (n *recordingNotifier) SendWelcome(_ context.Context, email, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWelcome {
		return errSendOff
	}
	n.welcomes = append(n.welcomes, email)
	return nil
}

func (n *recordingNotifier) setFailing(fail bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failCodes = fail
}

// lastCode returns the most recent code sent to email for purpose.
func (n *recordingNotifier) lastCode(t *testing.T, email string, purpose domain.OTPPurpose) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.codes) - 1; i >= 0; i-- {
		if n.codes[i].Email == email && n.codes[i].Purpose == purpose {
			return n.codes[i].Code
		}
	}
	t.Fatalf("no %s code sent to %s", purpose, email)
	return ""
}

type fakeStampCache struct {
	mu      sync.Mutex
	entries map[int64]string
	gets    int
}

func newFakeStampCache() *fakeStampCache {
	return &fakeStampCache{entries: map[int64]string{}}
}

func (c *fakeStampCache) Get(_ context.Context, id int64) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	fp, ok := c.entries[id]
	return fp, ok, nil
}

func (c *fakeStampCache) Set(_ context.Context, id int64, fp string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = fp
	return nil
}

func (c *fakeStampCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

type harness struct {
	svc      *AuthService
	store    *sqlite.Store
	clock    *fakeClock
	notifier *recordingNotifier
	hasher   *plainHasher
	cache    *fakeStampCache

	mu     sync.Mutex
	events []domain.Event
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTokenIssuer(t *testing.T, now func() time.Time) *TokenIssuer {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testKey, jwtx.VerifyOptions{
		Issuer:   "storefront-auth",
		Audience: []string{"storefront"},
		Now:      now,
	})
	require.NoError(t, err)
	return &TokenIssuer{
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     "storefront-auth",
		Audience:   []string{"storefront"},
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        now,
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    newTestStore(t),
		clock:    &fakeClock{now: t0},
		notifier: &recordingNotifier{},
		hasher:   &plainHasher{},
		cache:    newFakeStampCache(),
	}
	now := h.clock.Now

	h.svc = &AuthService{
		Store: h.store,
		Accounts: &AccountDirectory{
			Store:        h.store,
			Hasher:       h.hasher,
			Policy:       DefaultPasswordPolicy(),
			DefaultRoles: []string{"Customer"},
			Now:          now,
		},
		OTP:      &OTPManager{Store: h.store, Now: now},
		Tokens:   newTokenIssuer(t, now),
		Refresh:  &RefreshTokenLedger{Store: h.store, Now: now},
		Stamps:   &StampValidator{Store: h.store, Cache: h.cache},
		Notifier: h.notifier,
		Hooks: []Hook{HookFunc(func(_ context.Context, events []domain.Event) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.events = append(h.events, events...)
		})},
		Now: now,
	}
	return h
}

func (h *harness) eventTypes() []domain.EventType {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.EventType, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

// registerConfirmed registers email and verifies it, returning the session
// from verification.
func (h *harness) registerConfirmed(t *testing.T, email string) domain.AuthSession {
	t.Helper()
	ctx := context.Background()

	reg := h.svc.Register(ctx, RegisterRequest{Email: email, Password: testPassword, FirstName: "A", LastName: "B"})
	require.True(t, reg.Succeeded, "register: %v %v", reg.ErrorCode, reg.Errors)

	code := h.notifier.lastCode(t, domain.NormalizeEmail(email), domain.PurposeEmailVerification)
	res := h.svc.VerifyEmail(ctx, VerifyEmailRequest{Email: email, Code: code})
	require.True(t, res.Succeeded, "verify: %v %v", res.ErrorCode, res.Errors)
	return res.Data
}

func (h *harness) account(t *testing.T, email string) domain.Account {
	t.Helper()
	a, err := h.store.Accounts().GetAccountByEmail(context.Background(), domain.NormalizeEmail(email))
	require.NoError(t, err)
	return a
}

func callerOf(a domain.Account) Caller {
	return Caller{AccountID: a.ID, ExternalID: a.ExternalID}
}
