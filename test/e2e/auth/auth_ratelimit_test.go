package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

// TestLoginRateLimit verifies the default strict limit on login.
func TestLoginRateLimit(t *testing.T) {
	c := setupAuthContainerWithDefaultRateLimits(t)
	ctx := t.Context()

	// StrictLimit allows a burst of 5 per IP and email.
	for range 5 {
		_, err := c.client.Login(ctx, "nobody@example.com", testPassword)
		assertCode(t, err, authsdk.CodeInvalidCredentials)
	}

	_, err := c.client.Login(ctx, "nobody@example.com", testPassword)
	assertCode(t, err, authsdk.CodeRateLimitExceeded)
}
