package auth_test

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, code retrieval from the service log, and
 * assertions.
 */

const (
	testImageName = "storefront-auth-test:latest"

	testPassword = "P@ssw0rd1"

	kindVerification  = "email_verification"
	kindPasswordReset = "password_reset"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards. The suite is skipped with -short or when Docker is missing.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping e2e tests in short mode")
		os.Exit(0)
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		fmt.Fprintln(os.Stdout, "skipping e2e tests: docker is not available")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

type authContainer struct {
	container testcontainers.Container
	baseURL   string
	client    *authsdk.SDKClient
}

// relaxedLimits lifts the HTTP throttling so tests can make rapid requests.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// setupAuthContainer starts the service with relaxed rate limits.
func setupAuthContainer(t *testing.T) *authContainer {
	t.Helper()
	return startAuthContainer(t, relaxedLimits)
}

// setupAuthContainerWithDefaultRateLimits keeps the production limits for
// tests of the throttling itself.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) *authContainer {
	t.Helper()
	return startAuthContainer(t, nil)
}

func startAuthContainer(t *testing.T, extraEnv map[string]string) *authContainer {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_DATABASE_FILE":    "/data/auth.db",
		"AUTH_PEPPER_FILE":      "/data/pepper",
		"AUTH_SIGNING_KEY_FILE": "/data/signing.key",
		"AUTH_ISSUER":           "storefront-auth",
		"AUTH_SECURE_COOKIES":   "false",
		"AUTH_DEV_REVEAL_CODES": "true",
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &authContainer{
		container: container,
		baseURL:   baseURL,
		client:    authsdk.NewSDKClient(baseURL),
	}
}

// lastCode reads the newest one-time code of kind from the service log.
// Each test owns its container, so the newest code belongs to the test.
func (c *authContainer) lastCode(t *testing.T, kind string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		code = c.scanCode(t, kind)
		return code != ""
	}, 5*time.Second, 100*time.Millisecond, "no %s code in service log", kind)
	return code
}

func (c *authContainer) scanCode(t *testing.T, kind string) string {
	t.Helper()

	logs, err := c.container.Logs(context.Background())
	require.NoError(t, err)
	defer logs.Close()

	var code string
	scanner := bufio.NewScanner(logs)
	for scanner.Scan() {
		var entry struct {
			Msg  string `json:"msg"`
			Kind string `json:"kind"`
			Code string `json:"code"`
		}
		if json.Unmarshal(scanner.Bytes(), &entry) != nil {
			continue
		}
		if entry.Msg == "notification sent" && entry.Kind == kind && entry.Code != "" {
			code = entry.Code
		}
	}
	return code
}

// signUp registers email and verifies it with the code from the log.
func (c *authContainer) signUp(t *testing.T, email string) *authsdk.Session {
	t.Helper()
	ctx := t.Context()

	user, err := c.client.Register(ctx, authsdk.RegisterRequest{
		Email:     email,
		Password:  testPassword,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err, "Register should succeed")
	require.False(t, user.EmailConfirmed)

	session, err := c.client.VerifyEmail(ctx, email, c.lastCode(t, kindVerification))
	require.NoError(t, err, "VerifyEmail should succeed")
	return session
}

// assertCode checks that err is an API error carrying code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, authsdk.IsCode(err, code), "expected %s, got: %v", code, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
