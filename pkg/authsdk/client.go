package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient calls the anonymous endpoints of the authentication service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account. A verification code is sent to the address.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := doJSON(ctx, c, http.MethodPost, "/auth/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail confirms the address and returns a signed in Session.
func (c *SDKClient) VerifyEmail(ctx context.Context, email, code string) (*Session, error) {
	var auth AuthSession
	req := VerifyEmailRequest{Email: email, Code: code}
	if err := doJSON(ctx, c, http.MethodPost, "/auth/verify-email", "", req, &auth); err != nil {
		return nil, err
	}
	return newSession(c, auth), nil
}

func (c *SDKClient) ResendVerificationEmail(ctx context.Context, email string) error {
	return doJSON(ctx, c, http.MethodPost, "/auth/resend-verification-email", "", EmailRequest{Email: email}, new(none))
}

// Login signs in with email and password.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var auth AuthSession
	req := LoginRequest{Email: email, Password: password}
	if err := doJSON(ctx, c, http.MethodPost, "/auth/login", "", req, &auth); err != nil {
		return nil, err
	}
	return newSession(c, auth), nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked by the exchange.
func (c *SDKClient) Refresh(ctx context.Context, req RefreshTokenRequest) (*AuthSession, error) {
	var auth AuthSession
	if err := doJSON(ctx, c, http.MethodPost, "/auth/refresh-token", "", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Logout revokes refreshToken. Unknown tokens are not an error.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	return doJSON(ctx, c, http.MethodPost, "/auth/logout", "", LogoutRequest{RefreshToken: refreshToken}, new(none))
}

func (c *SDKClient) ForgotPassword(ctx context.Context, email string) error {
	return doJSON(ctx, c, http.MethodPost, "/auth/forgot-password", "", EmailRequest{Email: email}, new(none))
}

func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return doJSON(ctx, c, http.MethodPost, "/auth/reset-password", "", req, new(none))
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service can reach its database.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}
