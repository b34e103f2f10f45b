package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModifiedUTF8(t *testing.T) {
	s, err := decodeModifiedUTF8([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", s)

	s, err = decodeModifiedUTF8([]byte{'a', 0xC0, 0x80, 'b'})
	require.NoError(t, err)
	assert.Equal(t, "a\x00b", s)

	// U+1F600 as a surrogate pair of 3-byte units.
	s, err = decodeModifiedUTF8([]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80})
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", s)

	_, err = decodeModifiedUTF8([]byte{0xC3})
	assert.Error(t, err)

	_, err = decodeModifiedUTF8([]byte{0xF0, 0x9F, 0x98, 0x80})
	assert.Error(t, err)
}
