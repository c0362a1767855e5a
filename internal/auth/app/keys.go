package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// signingKeySize is the number of random bytes in a generated key file.
const signingKeySize = 32

// LoadSigningKey returns the HS256 secret. AUTH_SIGNING_KEY wins; otherwise
// the key file is read, or created on first start so tokens survive restarts.
func LoadSigningKey(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SigningKey != "" {
		logger.Info("using signing key from environment")
		return []byte(cfg.SigningKey), nil
	}

	secret, err := cryptox.LoadOrCreateSecretFile(cfg.SigningKeyFile, signingKeySize)
	if err != nil {
		return nil, fmt.Errorf("load signing key file: %w", err)
	}
	if len(secret) < jwtx.MinHMACKeySize {
		return nil, fmt.Errorf("signing key file %s: %w", cfg.SigningKeyFile, jwtx.ErrWeakKey)
	}

	logger.Info("signing key loaded", "path", cfg.SigningKeyFile)
	return []byte(secret), nil
}

// NewTokenKeys builds the signer and verifier sharing one secret.
func NewTokenKeys(cfg Config, key []byte) (*jwtx.HS256Signer, *jwtx.HS256Verifier, error) {
	signer, err := jwtx.NewSignerHS256(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(key, jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create verifier: %w", err)
	}
	return signer, verifier, nil
}
