package hash

// Hash hashes a plaintext secret and verifies candidates against a stored
// hash. The OTP engine keys verification codes with HMACSHA256; API key
// secrets go through Argon2id.
type Hash interface {
	// Hash returns the stored representation of str.
	Hash(str string) ([]byte, error)
	// Verify reports whether str matches the stored representation.
	Verify(hashed, str string) bool
}
