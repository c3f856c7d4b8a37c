package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealRoundTrip(t *testing.T) {
	sealer := NewSealer("secret")

	sealed, err := sealer.Seal("remote-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "remote-token")

	plain, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "remote-token", plain)
}

func TestSealUsesFreshNonce(t *testing.T) {
	sealer := NewSealer("secret")

	a, err := sealer.Seal("token")
	require.NoError(t, err)
	b, err := sealer.Seal("token")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpenRejectsForeignOrCorruptValues(t *testing.T) {
	sealed, err := NewSealer("one").Seal("token")
	require.NoError(t, err)

	_, err = NewSealer("two").Open(sealed)
	assert.True(t, errors.Is(err, ErrUnsealFailed))

	_, err = NewSealer("one").Open("!!not base64!!")
	assert.True(t, errors.Is(err, ErrUnsealFailed))

	_, err = NewSealer("one").Open("c2hvcnQ=")
	assert.True(t, errors.Is(err, ErrUnsealFailed))
}
