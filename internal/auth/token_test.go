package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	token, err := Issue(testSecret, 42, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := Verify(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestVerifySharedSecretAcrossIssuers(t *testing.T) {
	// Tokens are stateless: anything issued under a secret verifies wherever
	// the same secret is configured.
	token, err := Issue(testSecret, 7, time.Minute)
	require.NoError(t, err)

	uid, err := Verify(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := Issue(testSecret, 42, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(testSecret, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Issue(testSecret, 42, time.Minute)
	require.NoError(t, err)

	_, err = Verify("some-other-secret", token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyTamperedToken(t *testing.T) {
	token, err := Issue(testSecret, 42, time.Minute)
	require.NoError(t, err)

	// Flip one character at every position; no variant may ever verify.
	for i := range token {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := Verify(testSecret, string(mutated))
		assert.Error(t, err, "altered token at index %d must not verify", i)
	}
}

func TestVerifyGarbage(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c", "e30.e30."} {
		_, err := Verify(testSecret, tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", tok)
	}
}

func TestIssueDefaultTTL(t *testing.T) {
	// A non-positive TTL falls back to the 600 second default, so the token
	// must verify right away.
	token, err := Issue(testSecret, 1, 0)
	require.NoError(t, err)

	_, err = Verify(testSecret, token)
	assert.NoError(t, err)
}
