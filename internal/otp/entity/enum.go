package entity

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive mean user is allowed to log in.
	UserStatusActive UserStatus = 1

	// UserStatusBanned mean user is blocked from logging in.
	UserStatusBanned UserStatus = 2
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBanned:
		return "Banned"
	default:
		return "Unknown"
	}
}

type APIKeyStatus int16

const (
	// APIKeyStatusUnknown is mean status is not known / not set.
	APIKeyStatusUnknown APIKeyStatus = 0

	// APIKeyStatusActive mean the key may call the OTP API.
	APIKeyStatusActive APIKeyStatus = 1

	// APIKeyStatusRevoked mean the key is rejected on every call.
	APIKeyStatusRevoked APIKeyStatus = 2
)

func (ks APIKeyStatus) String() string {
	switch ks {
	case APIKeyStatusActive:
		return "Active"
	case APIKeyStatusRevoked:
		return "Revoked"
	default:
		return "Unknown"
	}
}

// LoginMethod names how a login was completed, carried on the login event.
type LoginMethod string

const (
	LoginMethodOTP  LoginMethod = "otp"
	LoginMethodTOTP LoginMethod = "totp"
)

func (m LoginMethod) String() string { return string(m) }
