package pluginhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesPtrNilForEmptySlice(t *testing.T) {
	assert.Nil(t, bytesPtr(nil))
	assert.Nil(t, bytesPtr([]byte{}))
}

func TestBytesPtrAndCopyCStringRoundTrip(t *testing.T) {
	original := []byte("hello plugin boundary")
	ptr := bytesPtr(original)
	require := assert.New(t)
	require.NotNil(ptr)

	out := copyCString(ptr, uint64(len(original)))
	require.Equal(string(original), out)
}

func TestCopyCStringNilPointerReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", copyCString(nil, 10))
}

func TestCopyCStringZeroLengthReturnsEmpty(t *testing.T) {
	b := []byte("x")
	assert.Equal(t, "", copyCString(&b[0], 0))
}
