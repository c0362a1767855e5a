package domain

import "time"

type OTPPurpose string

const (
	PurposeEmailVerification OTPPurpose = "EmailVerification"
	PurposePasswordReset     OTPPurpose = "PasswordReset"
)

func (p OTPPurpose) Valid() bool {
	return p == PurposeEmailVerification || p == PurposePasswordReset
}

// OTPCode is a single-use numeric code delivered out of band.
type OTPCode struct {
	ID        string
	AccountID int64
	Code      string
	Purpose   OTPPurpose
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}
