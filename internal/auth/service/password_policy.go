package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go"
)

// PasswordPolicy checks new passwords. MinScore enables a zxcvbn strength
// floor (0..4); zero disables it.
type PasswordPolicy struct {
	MinLength int
	MinScore  int
}

// DefaultPasswordPolicy requires 8 characters with upper, lower and digit.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8}
}

// Validate returns one message per violated rule. userInputs (email, names)
// are penalised by the strength estimate.
func (p PasswordPolicy) Validate(password string, userInputs ...string) []string {
	var problems []string

	minLen := p.MinLength
	if minLen <= 0 {
		minLen = 8
	}
	if utf8.RuneCountInString(password) < minLen {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters.", minLen))
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		problems = append(problems, "Password must contain an uppercase letter.")
	}
	if !lower {
		problems = append(problems, "Password must contain a lowercase letter.")
	}
	if !digit {
		problems = append(problems, "Password must contain a digit.")
	}

	if p.MinScore > 0 && password != "" {
		inputs := make([]string, 0, len(userInputs))
		for _, in := range userInputs {
			if in = strings.TrimSpace(in); in != "" {
				inputs = append(inputs, in)
			}
		}
		if zxcvbn.PasswordStrength(password, inputs).Score < p.MinScore {
			problems = append(problems, "Password is too easy to guess.")
		}
	}

	return problems
}
