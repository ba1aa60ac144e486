// Package hash provides helpers for hashing and verifying secrets.
//
// HMACSHA256 keys short-lived codes so the plaintext never touches storage,
// and Argon2id protects long-lived credentials like API key secrets. Both sit
// behind a small interface so callers do not care which one they got.
package hash
