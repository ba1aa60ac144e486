package uid

import "github.com/google/uuid"

// UUID produces RFC 4122 identifier strings. Version 7 is preferred so
// generated ids sort roughly by creation time, which keeps correlation ids
// and authorization-state keys scannable in order.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a time-ordered UUIDv7 string. When the v7 source fails
// it falls back to a random v4, which is still unique, just unordered.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
