package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	match, err := VerifyPassword("correct horse battery", encoded)
	require.NoError(t, err)
	require.True(t, match)
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	match, err := VerifyPassword("wrong horse battery", encoded)
	require.NoError(t, err)
	require.False(t, match)
}

func TestHashPasswordSaltsEveryHash(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$aGFzaA",
	}
	for _, encoded := range cases {
		_, err := VerifyPassword("anything", encoded)
		require.Error(t, err, "hash %q", encoded)
	}
}
