package entity

import "time"

const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// Profile is the provider-agnostic identity returned by the userinfo endpoint.
type Profile struct {
	ProviderUserID string
	Email          string
	Name           string
}

type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
