package mfa

// Purpose names what a sealed secret is for. It participates in the AAD,
// so a ciphertext sealed for one purpose never opens under another.
type Purpose string

// PurposeOTPSeed scopes encryption to authenticator (TOTP) seeds.
const PurposeOTPSeed Purpose = "otp_seed"

// Scope binds a ciphertext to the owning user and its purpose.
type Scope struct {
	UserID  int64
	Purpose Purpose
}
