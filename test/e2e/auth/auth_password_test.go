package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestPasswordReset runs the forgot/reset flow.
func TestPasswordReset(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	session := c.signUp(t, "ada@example.com")

	// Unknown addresses are accepted silently.
	require.NoError(t, c.client.ForgotPassword(ctx, "nobody@example.com"))

	require.NoError(t, c.client.ForgotPassword(ctx, "ada@example.com"))
	code := c.lastCode(t, kindPasswordReset)

	err := c.client.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Email: "ada@example.com", Code: code, NewPassword: "weak",
	})
	assertCode(t, err, authsdk.CodePasswordResetFailed)

	err = c.client.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Email: "ada@example.com", Code: code, NewPassword: "N3wPassword",
	})
	require.NoError(t, err)

	// The code is single use.
	err = c.client.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Email: "ada@example.com", Code: code, NewPassword: "An0therOne",
	})
	assertCode(t, err, authsdk.CodeInvalidOTPCode)

	_, err = session.Me(ctx)
	assertCode(t, err, authsdk.CodeUnauthorized)

	_, err = c.client.Login(ctx, "ada@example.com", testPassword)
	assertCode(t, err, authsdk.CodeInvalidCredentials)

	_, err = c.client.Login(ctx, "ada@example.com", "N3wPassword")
	require.NoError(t, err)
}

// TestChangePassword checks that a change ends the current session.
func TestChangePassword(t *testing.T) {
	c := setupAuthContainer(t)
	ctx := t.Context()

	session := c.signUp(t, "ada@example.com")

	err := session.ChangePassword(ctx, "Wrong1234", "N3wPassword")
	assertCode(t, err, authsdk.CodePasswordChangeFailed)

	require.NoError(t, session.ChangePassword(ctx, testPassword, "N3wPassword"))

	_, err = session.Me(ctx)
	assertCode(t, err, authsdk.CodeUnauthorized)

	_, err = c.client.Login(ctx, "ada@example.com", "N3wPassword")
	require.NoError(t, err)
}
