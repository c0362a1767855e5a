package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshSkew refreshes access tokens slightly before they expire.
const refreshSkew = 30 * time.Second

// Session is a signed in user. Methods refresh the access token when needed.
type Session struct {
	client *SDKClient

	mu     sync.Mutex
	tokens TokenPair
	user   User
}

func newSession(client *SDKClient, auth AuthSession) *Session {
	return &Session{client: client, tokens: auth.Tokens, user: auth.User}
}

// User returns the projection received at sign in.
func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.RefreshToken
}

// validToken returns the access token, rotating the pair first when it is
// about to expire.
func (s *Session) validToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Add(refreshSkew).Before(s.tokens.AccessTokenExpiresAt) {
		return s.tokens.AccessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.tokens.AccessToken, nil
}

// Refresh rotates the token pair now.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.tokens.RefreshToken == "" {
		return fmt.Errorf("access token expired and no refresh token available")
	}
	auth, err := s.client.Refresh(ctx, RefreshTokenRequest{
		RefreshToken: s.tokens.RefreshToken,
		AccessToken:  s.tokens.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.tokens = auth.Tokens
	s.user = auth.User
	return nil
}

// Me fetches the current projection of the signed in account.
func (s *Session) Me(ctx context.Context) (*User, error) {
	token, err := s.validToken(ctx)
	if err != nil {
		return nil, err
	}
	var user User
	if err := doJSON[User](ctx, s.client, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword ends every session of the account, this one included.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	token, err := s.validToken(ctx)
	if err != nil {
		return err
	}
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return doJSON(ctx, s.client, http.MethodPost, "/auth/change-password", token, req, new(none))
}

// LogoutAll revokes every refresh token of the account and invalidates
// outstanding access tokens.
func (s *Session) LogoutAll(ctx context.Context) error {
	token, err := s.validToken(ctx)
	if err != nil {
		return err
	}
	return doJSON(ctx, s.client, http.MethodPost, "/auth/logout-all", token, nil, new(none))
}

// Logout revokes this session's refresh token.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.Logout(ctx, s.RefreshToken())
}
