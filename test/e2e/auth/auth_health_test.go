package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies both probes on a fresh service.
func TestHealthEndpoints(t *testing.T) {
	c := setupAuthContainer(t)

	health, err := c.client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = c.client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
