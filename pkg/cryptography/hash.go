package cryptography

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"lukechampine.com/blake3"
)

// HashSize is the fixed byte length of all content hashes.
const HashSize = 32

// Hash identifies content by its BLAKE3-256 digest. Equality is byte-wise.
type Hash [HashSize]byte

// ZeroHash is the hash of no block; a ledger whose head equals ZeroHash has
// no finalized blocks yet.
var ZeroHash Hash

var (
	_ msgpack.CustomEncoder = (*Hash)(nil)
	_ msgpack.CustomDecoder = (*Hash)(nil)
)

// Sum hashes b. Same input always yields the same digest.
func Sum(b []byte) Hash {
	return Hash(blake3.Sum256(b))
}

func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, errors.Errorf("expected %d hash bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(h[:])
}

func (h *Hash) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}

	n, err := HashFromBytes(b)
	if err != nil {
		return err
	}

	*h = n
	return nil
}
