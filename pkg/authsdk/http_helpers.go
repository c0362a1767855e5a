package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// none is the payload of endpoints that return no data.
type none struct{}

// doJSON sends body as JSON and decodes the envelope's data into out. A
// bearer token is attached when non-empty.
func doJSON[T any](ctx context.Context, c *SDKClient, method, path, bearer string, body any, out *T) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return decodeEnvelope(resp.StatusCode, raw, out)
}

// getHealth reads a bare (not enveloped) health document.
func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &health, &APIError{StatusCode: resp.StatusCode, Code: health.Status}
	}
	return &health, nil
}

// decodeEnvelope turns a non-2xx or succeeded=false answer into an
// *APIError and otherwise decodes data into out.
func decodeEnvelope[T any](status int, raw []byte, out *T) error {
	var env Response[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 300 {
			return &APIError{StatusCode: status, Code: CodeInternal}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if status >= 300 || !env.Succeeded {
		return &APIError{StatusCode: status, Code: env.ErrorCode, Messages: env.Errors}
	}

	*out = env.Data
	return nil
}
