package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RefreshSizeHas512Bits(t *testing.T) {
	token, err := GenerateToken(TokenSize512)
	require.NoError(t, err)
	require.Len(t, token, 86)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 64)
}

func TestGenerateToken_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestGenerateToken_RejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -8} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	a := FingerprintToken("refresh-a")
	require.Equal(t, a, FingerprintToken("refresh-a"))
	require.NotEqual(t, a, FingerprintToken("refresh-b"))
	require.Len(t, a, 43)
}
