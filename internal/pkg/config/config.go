package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key. Implementations
// return the type's zero value when a key is missing or fails conversion;
// callers that need a hard failure should check the raw string first.
type Config interface {
	io.Closer

	// Duration getters interpret the stored integer in the named unit.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64

	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64

	GetFloat32(key string) float32
	GetFloat64(key string) float64

	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64-encoded string value into raw bytes.
	GetBinary(key string) []byte

	// GetArray splits a comma-separated string value into its elements.
	GetArray(key string) []string

	// GetMap parses a "key1:val1,key2:val2" string value into a map.
	GetMap(key string) map[string]string
}
