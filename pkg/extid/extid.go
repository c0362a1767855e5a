// Package extid produces the opaque, prefixed identifiers that are handed to
// clients in place of internal sequential keys.
//
// An external id looks like "usr_7fKq2ZmWn9XbT4hR": a short type prefix, an
// underscore, and 16 characters drawn uniformly from a 54 symbol alphabet that
// leaves out characters that are easy to misread (0 O 1 l I and friends).
// Nothing about the value reveals creation order or how many ids exist.
package extid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the set of symbols an id body is drawn from.
const Alphabet = "23456789" +
	"ABCDEFGHJKLMNPQRSTUVWXYZ" +
	"abcdefghkmnpqrstuvwxyz"

// Length is the number of characters after the prefix separator.
const Length = 16

// Separator joins the prefix and the random body.
const Separator = "_"

// ErrEmptyPrefix reports a blank prefix passed to Generate.
var ErrEmptyPrefix = errors.New("extid: prefix must not be empty")

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate returns a new "{prefix}_{16 chars}" identifier.
func Generate(prefix string) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", ErrEmptyPrefix
	}

	body := make([]byte, Length)
	for i := range body {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("extid: read entropy: %w", err)
		}
		body[i] = Alphabet[n.Int64()]
	}

	return prefix + Separator + string(body), nil
}

// MustGenerate is like Generate but panics on failure. Only use it with
// constant prefixes.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid reports whether id has the form "{expectedPrefix}_{body}" where body
// is exactly Length characters from Alphabet.
func IsValid(id, expectedPrefix string) bool {
	if strings.TrimSpace(expectedPrefix) == "" {
		return false
	}

	body, ok := strings.CutPrefix(id, expectedPrefix+Separator)
	if !ok || len(body) != Length {
		return false
	}

	for i := 0; i < len(body); i++ {
		if strings.IndexByte(Alphabet, body[i]) < 0 {
			return false
		}
	}
	return true
}

// GetPrefix returns the segment before the first separator, or "" when the id
// has no separator or the segment is blank.
func GetPrefix(id string) string {
	prefix, _, found := strings.Cut(id, Separator)
	if !found || strings.TrimSpace(prefix) == "" {
		return ""
	}
	return prefix
}
