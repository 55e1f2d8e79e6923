package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRot13_SelfInverse(t *testing.T) {
	for r := 'A'; r <= 'Z'; r++ {
		assert.Equal(t, r, rot13Rune(rot13Rune(r)), "upper %c", r)
		lower := r + ('a' - 'A')
		assert.Equal(t, lower, rot13Rune(rot13Rune(lower)), "lower %c", lower)
	}

	input := "Session-Value_42/abcXYZ=="
	assert.Equal(t, input, Rot13(Rot13(input)))
}

func TestRot13_PreservesCaseAndNonLetters(t *testing.T) {
	assert.Equal(t, "NOP123KLM", Rot13("ABC123XYZ"))
	assert.Equal(t, "nop123klm", Rot13("abc123xyz"))
	assert.Equal(t, "0123456789-_.=/+ ", Rot13("0123456789-_.=/+ "))
	assert.Equal(t, "é", Rot13("é"))
	assert.Empty(t, Rot13(""))
}

func TestDecodeSessionToken(t *testing.T) {
	t.Run("extracts value before delimiter", func(t *testing.T) {
		token, err := DecodeSessionToken("mfsession=ABC123XYZ;rest")
		require.NoError(t, err)
		assert.Equal(t, "NOP123KLM", token)
	})

	t.Run("marker in the middle of a header", func(t *testing.T) {
		header := "lang=fr; mfsession=uryyb.jbeyq; Path=/; HttpOnly"
		token, err := DecodeSessionToken(header)
		require.NoError(t, err)
		assert.Equal(t, "hello.world", token)
	})

	t.Run("empty session value", func(t *testing.T) {
		token, err := DecodeSessionToken("mfsession=;Path=/")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("missing marker", func(t *testing.T) {
		_, err := DecodeSessionToken("othercookie=ABC;Path=/")
		require.ErrorIs(t, err, ErrMissingMarker)
	})

	t.Run("missing delimiter", func(t *testing.T) {
		_, err := DecodeSessionToken("mfsession=ABC123XYZ")
		require.ErrorIs(t, err, ErrMissingDelimiter)
	})

	t.Run("delimiter only before marker", func(t *testing.T) {
		_, err := DecodeSessionToken("a=b; mfsession=ABC")
		require.ErrorIs(t, err, ErrMissingDelimiter)
	})
}

func TestHasSessionMarker(t *testing.T) {
	assert.True(t, HasSessionMarker("lang=fr; mfsession=ABC; Path=/"))
	assert.False(t, HasSessionMarker("lang=fr; Path=/"))
	assert.False(t, HasSessionMarker("MFSESSION=ABC;"))
}
