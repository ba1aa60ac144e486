// Package otpcode generates fixed-length numeric one-time codes.
//
// Codes come from crypto/rand with rejection sampling, so every code in the
// range is equally likely and short codes keep their leading zeros. If the
// system entropy source fails the generator degrades to math/rand and logs
// the degradation once instead of refusing logins outright.
package otpcode

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	mrand "math/rand"

	"go.uber.org/atomic"
)

// DefaultLength is the number of digits in a generated code.
const DefaultLength = 6

// Generator produces numeric one-time codes.
type Generator interface {
	// Generate returns a zero-padded numeric code of the configured length.
	Generate() string
}

// Numeric is the crypto/rand backed Generator.
type Numeric struct {
	length   int
	max      *big.Int
	degraded atomic.Bool
}

// NewNumeric returns a Generator producing codes of the given digit length.
// Lengths outside 4..10 fall back to DefaultLength.
func NewNumeric(length int) *Numeric {
	if length < 4 || length > 10 {
		length = DefaultLength
	}

	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)

	return &Numeric{length: length, max: max}
}

// Generate returns a new code. The code is uniformly distributed over
// [0, 10^length) and zero-padded, so "004213" is as likely as "994213".
func (n *Numeric) Generate() string {
	v, err := rand.Int(rand.Reader, n.max)
	if err == nil {
		return fmt.Sprintf("%0*d", n.length, v)
	}

	// Log the entropy failure only on the first occurrence; under a broken
	// entropy source every call would fail and flood the log.
	if n.degraded.CompareAndSwap(false, true) {
		slog.Error("otpcode: system entropy unavailable, degraded to math/rand", "error", err)
	}

	return fmt.Sprintf("%0*d", n.length, mrand.Int63n(n.max.Int64()))
}
