/*
Package authsdk is a Go client for the storefront authentication service.

# Overview

SDKClient wraps the anonymous endpoints under /auth: registration, email
verification, login, refresh, logout and the password reset flow. A
successful Login or VerifyEmail returns a Session that carries the token pair
and refreshes the access token before it expires.

	client := authsdk.NewSDKClient("https://auth.example.com")

	if _, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:     "ada@example.com",
		Password:  "P@ssw0rd1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}); err != nil {
		return err
	}

	// The code arrives out of band.
	session, err := client.VerifyEmail(ctx, "ada@example.com", code)

	me, err := session.Me(ctx)

# Errors

Every failed call returns an *APIError carrying the HTTP status, the service
error code and its messages:

	_, err := client.Login(ctx, email, password)
	if authsdk.IsCode(err, authsdk.CodeAccountLocked) {
		// back off
	}

# Thread Safety

SDKClient and Session are safe for concurrent use. A Session serialises
refreshes so concurrent callers never present the same refresh token twice.
*/
package authsdk
