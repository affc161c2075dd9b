// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

// ErrMissingSecret is returned when a cipher is built without a secret.
var ErrMissingSecret = errors.New("cipher secret is required")

const keySize = 32

// Cipher reversibly protects the token stored in the cookie.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SecureCookieCipher authenticates and encrypts values with gorilla/securecookie
// (HMAC-SHA256 and AES-256). Both keys are derived from one secret with HKDF.
type SecureCookieCipher struct {
	codec *securecookie.SecureCookie
	name  string
}

// NewCipher derives the cipher keys from secret. name binds ciphertexts to one cookie.
func NewCipher(secret, name string) (*SecureCookieCipher, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	hashKey, err := deriveKey(secret, "session hash key")
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, "session block key")
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	// token expiry is authoritative
	codec.MaxAge(0)
	codec.SetSerializer(securecookie.NopEncoder{})

	return &SecureCookieCipher{codec: codec, name: name}, nil
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("failed to derive %s: %w", info, err)
	}
	return key, nil
}

func (c *SecureCookieCipher) Encrypt(plaintext string) (string, error) {
	encoded, err := c.codec.Encode(c.name, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return encoded, nil
}

func (c *SecureCookieCipher) Decrypt(ciphertext string) (string, error) {
	var plaintext []byte
	if err := c.codec.Decode(c.name, ciphertext, &plaintext); err != nil {
		return "", fmt.Errorf("failed to decrypt value: %w", err)
	}
	return string(plaintext), nil
}
