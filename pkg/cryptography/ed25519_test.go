package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerify(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("record bytes")
	sig := Sign(msg, kp)

	assert.True(t, Verify(msg, sig, kp.Public))
}

func TestVerifyMutatedMessage(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("record bytes")
	sig := Sign(msg, kp)

	mutated := append([]byte{}, msg...)
	mutated[0] ^= 0xff

	assert.False(t, Verify(mutated, sig, kp.Public))
}

func TestVerifyWrongKey(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	other, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("record bytes")
	sig := Sign(msg, kp)

	assert.False(t, Verify(msg, sig, other.Public))
}

func TestVerifyMalformed(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	assert.False(t, Verify([]byte("m"), []byte{1, 2, 3}, kp.Public))
	assert.False(t, Verify([]byte("m"), Sign([]byte("m"), kp), []byte{1, 2, 3}))
}

func TestKeypairFromPrivate(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	rb, err := KeypairFromPrivate(kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, kp.Public, rb.Public)

	_, err = KeypairFromPrivate([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEncryptDecryptIdentity(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	data := []byte{1, 2, 3, 4, 5}

	enc := Encrypt(data, kp.Public)
	assert.Equal(t, data, enc)

	dec, ok := Decrypt(enc, kp.Private)
	assert.True(t, ok)
	assert.Equal(t, data, dec)
}

func TestMultibaseRoundTrip(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	mb, err := EncodeMultibase(kp.Public)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := DecodeMultibase(mb)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []byte(kp.Public), raw)
}
