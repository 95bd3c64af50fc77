package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/tx"
)

func TestEmptyBlockTxRoot(t *testing.T) {
	a, err := NewBlock(cryptography.ZeroHash, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewBlock(cryptography.ZeroHash, 0, []*tx.Tx{})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, a.Header.TxRoot, b.Header.TxRoot)
	assert.False(t, a.Header.TxRoot.IsZero())
}

func TestTxRootDeterministic(t *testing.T) {
	r := tx.New(tx.TypeStoreToken, "user-1", []byte{1, 2, 3})
	r.Ts = 1700000000000
	r.Data.Metadata = map[string]string{"a": "1", "b": "2"}

	first, err := TxRoot([]*tx.Tx{r})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		again, err := TxRoot([]*tx.Tx{r})
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, first, again)
	}
}

func TestTxRootChangesWithBatch(t *testing.T) {
	a := tx.New(tx.TypeStoreToken, "user-1", []byte{1})
	b := tx.New(tx.TypeStoreToken, "user-2", []byte{2})

	ra, err := TxRoot([]*tx.Tx{a})
	if err != nil {
		t.Fatal(err)
	}

	rab, err := TxRoot([]*tx.Tx{a, b})
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, ra, rab)
}

func TestNewBlockHeader(t *testing.T) {
	prev := cryptography.Sum([]byte("previous"))

	b, err := NewBlock(prev, 7, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, Version1, b.Header.Version)
	assert.Equal(t, prev, b.Header.PreviousHash)
	assert.Equal(t, uint64(7), b.Header.Height)
	assert.Nil(t, b.Header.ValidatorSignature)
	assert.NotZero(t, b.Header.Ts)
}

func TestBlockMarshal(t *testing.T) {
	r := tx.New(tx.TypeStoreCache, "user-1", []byte("cached"))

	b, err := NewBlock(cryptography.ZeroHash, 0, []*tx.Tx{r})
	if err != nil {
		t.Fatal(err)
	}

	d, err := b.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	rb := &Block{}
	if err := rb.Unmarshal(d); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, b, rb)

	bh, err := b.Hash()
	if err != nil {
		t.Fatal(err)
	}

	rbh, err := rb.Hash()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, bh, rbh)
}
