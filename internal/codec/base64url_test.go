package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestB64URLRoundTrip(t *testing.T) {
	t.Parallel()
	cases := [][]byte{
		nil,
		{},
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, b := range cases {
		encoded := EncodeB64URL(b)
		decoded, err := DecodeB64URL(encoded)
		require.NoError(t, err)
		require.Equal(t, b, decoded)
	}
}

func TestB64URLRejectsPaddingAndNonURLSafeAlphabet(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"abc=", "a/b", "a+b", "===="} {
		_, err := DecodeB64URL(s)
		require.Error(t, err)
	}
}
