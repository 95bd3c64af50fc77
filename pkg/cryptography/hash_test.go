package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumDeterministic(t *testing.T) {
	b := []byte("same bytes in")

	assert.Equal(t, Sum(b), Sum(b))
	assert.NotEqual(t, Sum(b), Sum([]byte("different bytes in")))
}

func TestHashFromBytes(t *testing.T) {
	h := Sum([]byte("abc"))

	rb, err := HashFromBytes(h.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, h, rb)

	_, err = HashFromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestZeroHash(t *testing.T) {
	assert.True(t, ZeroHash.IsZero())
	assert.False(t, Sum(nil).IsZero())
}
