package storage

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/tx"
)

const (
	Version1 uint32 = 1
)

type BlockHeader struct {
	Version      uint32            `msgpack:"v"`
	PreviousHash cryptography.Hash `msgpack:"p"`
	TxRoot       cryptography.Hash `msgpack:"x"`
	Ts           int64             `msgpack:"t"`
	Height       uint64            `msgpack:"h"`

	// ValidatorSignature is carried for future consensus use and is nil on
	// locally built blocks.
	ValidatorSignature []byte `msgpack:"s,omitempty"`
}

// Block batches an ordered tx sequence under a header linking to the
// previous block.
type Block struct {
	Header BlockHeader `msgpack:"H"`
	Txs    []*tx.Tx    `msgpack:"T"`
}

// NewBlock builds a block over txs without touching storage. Height comes
// from the caller, not from a previous-hash lookup. An empty batch is legal.
func NewBlock(previous cryptography.Hash, height uint64, txs []*tx.Tx) (*Block, error) {
	root, err := TxRoot(txs)
	if err != nil {
		return nil, err
	}

	return &Block{
		Header: BlockHeader{
			Version:      Version1,
			PreviousHash: previous,
			TxRoot:       root,
			Ts:           time.Now().UnixMilli(),
			Height:       height,
		},
		Txs: txs,
	}, nil
}

// TxRoot is a single content hash over the canonical batch encoding. It is
// not a Merkle tree: no per-tx inclusion proof is derivable from it.
func TxRoot(txs []*tx.Tx) (cryptography.Hash, error) {
	b, err := tx.EncodeBatch(txs)
	if err != nil {
		return cryptography.ZeroHash, errors.Wrap(err, "encoding tx batch")
	}

	return cryptography.Sum(b), nil
}

func (b *Block) Marshal() ([]byte, error) {
	d, err := msgpack.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling block")
	}

	return d, nil
}

func (b *Block) Unmarshal(d []byte) error {
	if err := msgpack.Unmarshal(d, b); err != nil {
		return errors.Wrap(err, "unmarshaling block")
	}

	return nil
}

// Hash identifies the block by the content hash of its canonical encoding,
// the value head pointers and previous-hash links carry.
func (b *Block) Hash() (cryptography.Hash, error) {
	d, err := tx.EncodeCanonical(b)
	if err != nil {
		return cryptography.ZeroHash, errors.Wrap(err, "encoding block")
	}

	return cryptography.Sum(d), nil
}
