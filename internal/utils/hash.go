// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default Argon2id parameters for password digests.
const (
	// DefaultArgon2Memory is the memory parameter in KiB (64 MiB).
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the number of passes over the memory.
	DefaultArgon2Time uint32 = 1

	// DefaultArgon2Threads is the degree of parallelism.
	DefaultArgon2Threads uint8 = 4

	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// ErrMalformedDigest is returned when a stored digest is not a valid
// Argon2id PHC string.
var ErrMalformedDigest = errors.New("malformed password digest")

// Argon2Params holds the cost parameters of Argon2id.
type Argon2Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
}

// DefaultArgon2Params returns the production cost parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
	}
}

// PasswordHasher turns plaintext passwords into salted, slow digests and
// compares plaintext candidates against stored digests.
//
// Before stretching, the password is peppered with HMAC-SHA256 keyed by the
// application's password hash key, so a leaked database alone is not enough
// to mount an offline attack.
//
// The digest format is the PHC string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// PasswordHasher is safe for concurrent use.
type PasswordHasher struct {
	pepper string
	params Argon2Params
}

// NewPasswordHasher constructs a PasswordHasher with the given pepper key and
// Argon2id parameters. Zero-valued parameters fall back to the defaults.
func NewPasswordHasher(pepper string, params Argon2Params) *PasswordHasher {
	defaults := DefaultArgon2Params()
	if params.Memory == 0 {
		params.Memory = defaults.Memory
	}
	if params.Time == 0 {
		params.Time = defaults.Time
	}
	if params.Threads == 0 {
		params.Threads = defaults.Threads
	}

	return &PasswordHasher{pepper: pepper, params: params}
}

// Hash returns the PHC-encoded Argon2id digest of password using a fresh
// random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey(h.peppered(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Compare reports whether password matches digest. The parameters and salt
// are taken from the digest itself, so digests created with older cost
// settings keep verifying. A malformed digest never matches.
func (h *PasswordHasher) Compare(password, digest string) bool {
	params, salt, key, err := decodeDigest(digest)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey(h.peppered(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func (h *PasswordHasher) peppered(password string) []byte {
	return []byte(HashString(password, h.pepper))
}

func decodeDigest(digest string) (Argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}

	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}
	if params.Memory == 0 || params.Time == 0 || params.Threads == 0 {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, nil, ErrMalformedDigest
	}

	return params, salt, key, nil
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
