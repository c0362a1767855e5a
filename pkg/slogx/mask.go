package slogx

import (
	"log/slog"
	"strings"
)

// MaskEmail keeps the first character of the local part and the domain:
// "alice@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

// Email is a log attribute carrying a masked address.
func Email(email string) slog.Attr {
	return slog.String("email", MaskEmail(email))
}
