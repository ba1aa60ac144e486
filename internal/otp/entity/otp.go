package entity

import "time"

// OTPRecord is the cached one-time-code record. At most one live record
// exists per identifier; a resend overwrites it.
type OTPRecord struct {
	// CodeHash is the keyed HMAC of the plaintext code, never the code itself.
	CodeHash string `json:"code_hash"`
	// CreatedAt is the unix timestamp of issuance, used for the resend cooldown.
	CreatedAt int64 `json:"created_at"`
}

type User struct {
	ID         int64
	Phone      string
	Email      string
	Status     UserStatus
	TOTPSecret []byte // AES-GCM ciphertext, empty when not enrolled
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasTOTP reports whether the user enrolled an authenticator app.
func (u *User) HasTOTP() bool {
	return u != nil && len(u.TOTPSecret) > 0
}

type APIKey struct {
	ID         int64
	PublicKey  string
	SecretHash string
	Status     APIKeyStatus
	LastUsedAt *time.Time
	CreatedAt  time.Time
}
