package authsdk

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a failed call as reported by the service.
type APIError struct {
	StatusCode int
	Code       string
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("authsdk: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("authsdk: %d %s: %s", e.StatusCode, e.Code, strings.Join(e.Messages, "; "))
}

// IsCode reports whether err is an *APIError with the given error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
