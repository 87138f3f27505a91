// Package cryptox implements the per-field encryption scheme used by Enpass 6
// item fields.
//
// Sensitive field values are stored hex-encoded as ciphertext followed by the
// 16-byte GCM authentication tag. The AES-256 key and the 12-byte nonce come
// from the item row's key blob (first 32 bytes and the 12 bytes after them).
// The raw 16 bytes of the item UUID are bound as additional authenticated
// data, so a field value cannot be swapped between items without failing
// verification.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// KeySize is the AES-256 key length within an item key blob.
	KeySize = 32
	// NonceSize is the GCM nonce length within an item key blob.
	NonceSize = 12
	// TagSize is the GCM authentication tag length appended to ciphertexts.
	TagSize = 16
)

var (
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrInvalidNonceSize = errors.New("invalid nonce size")
	ErrInvalidField     = errors.New("invalid field value")
	ErrAuthFailed       = errors.New("field authentication failed")
)

// DecryptField decrypts a hex-encoded field value and verifies its tag.
//
// valueHex holds ciphertext plus tag in hex. key must be KeySize bytes, nonce
// NonceSize bytes, and aad the raw item UUID bytes used as additional data.
func DecryptField(valueHex string, key, nonce, aad []byte) (string, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return "", err
	}

	data, err := hex.DecodeString(valueHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if len(data) < TagSize {
		return "", ErrInvalidField
	}

	plaintext, err := aead.Open(nil, nonce, data, aad)
	if err != nil {
		return "", ErrAuthFailed
	}
	return string(plaintext), nil
}

// EncryptField is the inverse of DecryptField. It seals plaintext with the
// given key, nonce and aad and returns hex-encoded ciphertext plus tag.
func EncryptField(plaintext string, key, nonce, aad []byte) (string, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), aad)
	return hex.EncodeToString(sealed), nil
}

func newAEAD(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// ClearBytes zeroes a byte slice holding sensitive material.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
