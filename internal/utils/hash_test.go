// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastParams keeps argon2 cheap in tests.
var fastParams = Argon2Params{Memory: 1024, Time: 1, Threads: 1}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher("pepper", fastParams)

	digest, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, digest, "secret123")
	assert.True(t, hasher.Compare("secret123", digest))
	assert.False(t, hasher.Compare("secret124", digest))
}

func TestPasswordHasher_SaltedDigestsDiffer(t *testing.T) {
	hasher := NewPasswordHasher("pepper", fastParams)

	first, err := hasher.Hash("same")
	require.NoError(t, err)
	second, err := hasher.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Compare("same", first))
	assert.True(t, hasher.Compare("same", second))
}

func TestPasswordHasher_PepperMatters(t *testing.T) {
	digest, err := NewPasswordHasher("pepper-a", fastParams).Hash("secret")
	require.NoError(t, err)

	assert.False(t, NewPasswordHasher("pepper-b", fastParams).Compare("secret", digest))
}

func TestPasswordHasher_ParamsFromDigest(t *testing.T) {
	digest, err := NewPasswordHasher("pepper", fastParams).Hash("secret")
	require.NoError(t, err)

	// a hasher configured with other costs still verifies older digests
	other := NewPasswordHasher("pepper", Argon2Params{Memory: 2048, Time: 2, Threads: 2})
	assert.True(t, other.Compare("secret", digest))
}

func TestNewPasswordHasher_Defaults(t *testing.T) {
	hasher := NewPasswordHasher("pepper", Argon2Params{})
	assert.Equal(t, DefaultArgon2Params(), hasher.params)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher("pepper", fastParams)

	for _, digest := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		_, _, _, err := decodeDigest(digest)
		assert.ErrorIs(t, err, ErrMalformedDigest, digest)
		assert.False(t, hasher.Compare("anything", digest), digest)
	}
}

func TestHashString(t *testing.T) {
	key := "secret-key"
	data := "test-data"

	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, expected, HashString(data, key))
	assert.NotEqual(t, expected, HashString(data, "other-key"))
}
