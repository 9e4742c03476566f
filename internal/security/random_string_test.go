package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomStringRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := RandomString(-1, "abc")
	assert.ErrorIs(t, err, ErrNegativeLength)

	_, err = RandomString(1, "")
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestRandomStringZeroLength(t *testing.T) {
	t.Parallel()

	got, err := RandomString(0, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRandomStringStaysInsideAlphabet(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	got, err := RandomString(256, alphabet)
	require.NoError(t, err)
	require.Len(t, got, 256)

	for _, char := range got {
		assert.Truef(t, strings.ContainsRune(alphabet, char),
			"char %q outside alphabet", char)
	}
}

func TestRandomStringSingleCharacterAlphabet(t *testing.T) {
	t.Parallel()

	got, err := RandomString(8, "X")
	require.NoError(t, err)
	assert.Equal(t, "XXXXXXXX", got)
}
