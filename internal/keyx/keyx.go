// Package keyx assembles the key material needed to unlock an Enpass 6
// database: the master password (optionally extended with key-file bytes),
// the 16-byte salt stored at the head of the database file, and the raw
// SQLCipher key derived from both.
package keyx

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the number of bytes at the start of the database file that
	// SQLCipher uses as KDF salt.
	SaltSize = 16
	// CipherKeySize is the raw key length expected by SQLCipher.
	CipherKeySize = 32
	// DefaultKDFRounds is the PBKDF2 iteration count Enpass 6 uses.
	DefaultKDFRounds = 100_000
)

var ErrInvalidKeyFile = errors.New("invalid key file")

// ReadSalt returns the first SaltSize bytes of the database file.
func ReadSalt(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(f, salt); err != nil {
		return nil, fmt.Errorf("read database salt: %w", err)
	}
	return salt, nil
}

// MasterPassword combines the user password with the secret from an optional
// key file. A key file holds its secret hex-encoded between <key> and </key>
// tags; the decoded bytes are appended to the password. The result is always
// a fresh slice, so callers may wipe it without touching the password.
func MasterPassword(password []byte, keyFilePath string) ([]byte, error) {
	if keyFilePath == "" {
		return append([]byte(nil), password...), nil
	}

	raw, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	body := strings.TrimSpace(string(raw))
	inner, ok := strings.CutPrefix(body, "<key>")
	if !ok {
		return nil, ErrInvalidKeyFile
	}
	inner, ok = strings.CutSuffix(inner, "</key>")
	if !ok {
		return nil, ErrInvalidKeyFile
	}

	keyBytes, err := hex.DecodeString(inner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFile, err)
	}

	master := make([]byte, 0, len(password)+len(keyBytes))
	master = append(master, password...)
	master = append(master, keyBytes...)
	return master, nil
}

// CipherKey derives the raw SQLCipher key from the master password and the
// database salt: PBKDF2-HMAC-SHA512, truncated to CipherKeySize bytes.
func CipherKey(master, salt []byte, rounds int) []byte {
	if rounds <= 0 {
		rounds = DefaultKDFRounds
	}
	return pbkdf2.Key(master, salt, rounds, CipherKeySize, sha512.New)
}
