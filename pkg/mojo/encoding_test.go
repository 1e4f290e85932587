package mojo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", " utf-8 "} {
		enc, err := sourceEncoding(name)
		require.NoError(t, err, name)
		assert.Nil(t, enc, name)
	}

	enc, err := sourceEncoding("ISO-8859-1")
	require.NoError(t, err)
	require.NotNil(t, enc)

	decoded, err := decode(enc, []byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "café", string(decoded))

	encoded, err := encode(enc, decoded)
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), encoded)

	_, err = sourceEncoding("klingon")
	assert.Error(t, err)
}
