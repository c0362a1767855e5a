package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		password string
		problems int
	}{
		{"P@ssw0rd1", 0},
		{"Abcdefg1", 0},
		{"Ab1", 1},
		{"abcdefgh1", 1},
		{"ABCDEFGH1", 1},
		{"Abcdefghi", 1},
		{"", 4},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Len(t, policy.Validate(tt.password), tt.problems)
		})
	}
}

func TestPasswordPolicy_StrengthFloor(t *testing.T) {
	policy := PasswordPolicy{MinLength: 8, MinScore: 3}

	require.Contains(t, policy.Validate("Password1"), "Password is too easy to guess.")
	require.Empty(t, policy.Validate("Correct-Horse-Battery-Staple-42"))
}
