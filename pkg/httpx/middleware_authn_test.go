package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) { return s.claims, s.err }

func TestAuthnMiddleware(t *testing.T) {
	claims := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "usr_AbCdEfGh23456789"}}

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = httpx.SubjectFromContext(r.Context())
		c, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, claims.Subject, c.Subject)
		w.WriteHeader(http.StatusNoContent)
	})

	stale := func(context.Context, jwtx.Claims) error { return errors.New("stale") }
	fresh := func(context.Context, jwtx.Claims) error { return nil }

	cases := []struct {
		name   string
		header string
		v      jwtx.Verifier
		checks []httpx.ClaimsCheck
		want   int
	}{
		{"missing header", "", stubVerifier{claims: claims}, nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{claims: claims}, nil, http.StatusUnauthorized},
		{"verify fails", "Bearer abc", stubVerifier{err: jwtx.ErrExpired}, nil, http.StatusUnauthorized},
		{"check fails", "Bearer abc", stubVerifier{claims: claims}, []httpx.ClaimsCheck{fresh, stale}, http.StatusUnauthorized},
		{"ok", "bearer abc", stubVerifier{claims: claims}, []httpx.ClaimsCheck{fresh}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			httpx.AuthnMiddleware(tc.v, tc.checks...)(next).ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
				require.Contains(t, rec.Body.String(), `"errorCode":"UNAUTHORIZED"`)
				require.Empty(t, gotSubject)
			} else {
				require.Equal(t, claims.Subject, gotSubject)
			}
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}
	cases := map[string]bool{
		`{"email":"a@x.com"}`:        true,
		``:                           false,
		`{"email":"a@x.com","x":1}`:  false,
		`{"email":"a"}{"email":"b"}`: false,
		`[1,2]`:                      false,
	}
	for in, ok := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(in))
		var b body
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		if ok {
			require.NoError(t, err, in)
		} else {
			require.Error(t, err, in)
		}
	}
}
