package cryptography

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/pkg/errors"
)

// Keypair is an ed25519 signing identity. Key lifecycle (persistence,
// rotation) is entirely the caller's responsibility.
type Keypair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// GenerateKeypair draws a fresh keypair from the OS CSPRNG.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ed25519 keypair")
	}

	return &Keypair{Public: pub, Private: priv}, nil
}

// KeypairFromPrivate reconstructs a keypair from raw private key bytes, as
// produced by Keypair.Private.
func KeypairFromPrivate(b []byte) (*Keypair, error) {
	if len(b) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("expected %d private key bytes, got %d", ed25519.PrivateKeySize, len(b))
	}

	priv := ed25519.PrivateKey(b)

	return &Keypair{
		Public:  priv.Public().(ed25519.PublicKey),
		Private: priv,
	}, nil
}

func Sign(msg []byte, kp *Keypair) []byte {
	return ed25519.Sign(kp.Private, msg)
}

// Verify reports whether sig was produced by the private key matching pub
// over exactly msg. Malformed keys or signatures report false, never an
// error.
func Verify(msg, sig []byte, pub []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
