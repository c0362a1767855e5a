package auth_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterVerifyAndUseSession walks a new account from registration to an
// authenticated call.
func TestRegisterVerifyAndUseSession(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	session := c.signUp(t, "ada@example.com")
	require.True(t, session.User().EmailConfirmed)
	require.Contains(t, session.User().ID, "usr_")

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", me.Email)
	require.Equal(t, []string{"Customer"}, me.Roles)

	// Verifying twice is refused.
	_, err = c.client.VerifyEmail(ctx, "ada@example.com", "000000")
	assertCode(t, err, authsdk.CodeEmailAlreadyVerified)
}

// TestLoginRequiresVerifiedEmail checks the unverified path and the resend.
func TestLoginRequiresVerifiedEmail(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	_, err := c.client.Register(ctx, authsdk.RegisterRequest{
		Email: "grace@example.com", Password: testPassword, FirstName: "Grace", LastName: "Hopper",
	})
	require.NoError(t, err)

	_, err = c.client.Login(ctx, "grace@example.com", testPassword)
	assertCode(t, err, authsdk.CodeEmailNotVerified)

	first := c.lastCode(t, kindVerification)
	require.NoError(t, c.client.ResendVerificationEmail(ctx, "grace@example.com"))

	var second string
	require.Eventually(t, func() bool {
		second = c.scanCode(t, kindVerification)
		return second != first
	}, 5*time.Second, 100*time.Millisecond)

	_, err = c.client.VerifyEmail(ctx, "grace@example.com", "000000")
	assertCode(t, err, authsdk.CodeInvalidOTPCode)

	_, err = c.client.VerifyEmail(ctx, "grace@example.com", second)
	require.NoError(t, err)

	_, err = c.client.Login(ctx, "grace@example.com", testPassword)
	require.NoError(t, err)
}

// TestRefreshRotation checks that a refresh token works exactly once.
func TestRefreshRotation(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	session := c.signUp(t, "ada@example.com")
	original := session.RefreshToken()

	require.NoError(t, session.Refresh(ctx))
	require.NotEqual(t, original, session.RefreshToken())

	_, err := c.client.Refresh(ctx, authsdk.RefreshTokenRequest{RefreshToken: original})
	assertCode(t, err, authsdk.CodeRefreshTokenExpired)

	_, err = session.Me(ctx)
	require.NoError(t, err)
}

// TestLogoutAllRevokesEverything checks that access and refresh tokens of
// every session stop working.
func TestLogoutAllRevokesEverything(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	first := c.signUp(t, "ada@example.com")
	second, err := c.client.Login(ctx, "ada@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, first.LogoutAll(ctx))

	_, err = second.Me(ctx)
	assertCode(t, err, authsdk.CodeUnauthorized)

	_, err = c.client.Refresh(ctx, authsdk.RefreshTokenRequest{RefreshToken: second.RefreshToken()})
	assertCode(t, err, authsdk.CodeRefreshTokenExpired)
}

// TestLockout checks that repeated failures lock the account.
func TestLockout(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	c.signUp(t, "ada@example.com")

	for range 4 {
		_, err := c.client.Login(ctx, "ada@example.com", "Wrong1234")
		assertCode(t, err, authsdk.CodeInvalidCredentials)
	}

	_, err := c.client.Login(ctx, "ada@example.com", "Wrong1234")
	assertCode(t, err, authsdk.CodeAccountLocked)

	// The right password does not help while locked.
	_, err = c.client.Login(ctx, "ada@example.com", testPassword)
	assertCode(t, err, authsdk.CodeAccountLocked)

	// Unknown accounts look like wrong passwords.
	_, err = c.client.Login(ctx, "nobody@example.com", testPassword)
	assertCode(t, err, authsdk.CodeInvalidCredentials)
}
