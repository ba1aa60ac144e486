package mfa

// Encryptor seals and opens secrets bound to a Scope. A ciphertext sealed
// for one user and purpose cannot be opened under another.
type Encryptor interface {
	Encrypt(plaintext []byte, scope Scope) (ciphertext []byte, err error)
	Decrypt(ciphertext []byte, scope Scope) (plaintext []byte, err error)
}

// KeyProvider supplies raw AES-256 key material, 32 bytes per key. The
// scope parameter allows per-tenant or rotated keys.
type KeyProvider interface {
	Key(scope Scope) ([]byte, error)
}
