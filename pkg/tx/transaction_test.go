package tx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarshal(t *testing.T) {
	tx := &Tx{
		Version: Version1,
		Type:    TypeStoreToken,
		Data: Data{
			Key:      "user-1",
			Value:    []byte{1, 2, 3, 4, 5},
			Metadata: map[string]string{"source": "test"},
		},
		Ts: time.Now().UnixMilli(),
	}

	b, err := tx.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	txRB := &Tx{}

	if err := txRB.Unmarshal(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, tx, txRB)
}

func TestUnmarshalUnknownType(t *testing.T) {
	tx := &Tx{
		Version: Version1,
		Type:    Type(42),
		Ts:      time.Now().UnixMilli(),
	}

	b, err := tx.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	assert.Error(t, (&Tx{}).Unmarshal(b))
}

func TestEncodeCanonicalStable(t *testing.T) {
	tx := New(TypeStoreCache, "user-1", []byte("value"))
	tx.Data.Metadata = map[string]string{
		"a": "1",
		"b": "2",
		"c": "3",
		"d": "4",
	}

	first, err := EncodeCanonical(tx)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		again, err := EncodeCanonical(tx)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, first, again)
	}
}

func TestSignableExcludesSignature(t *testing.T) {
	a := New(TypeStoreToken, "user-1", []byte("value"))
	a.Ts = 1700000000000
	a.PublicKey = []byte{9, 9, 9}

	b := *a
	b.Signature = []byte{1, 2, 3}

	sa, err := a.Signable()
	if err != nil {
		t.Fatal(err)
	}

	sb, err := b.Signable()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, sa, sb)
}

func TestParseType(t *testing.T) {
	for typ, name := range typeNames {
		got, err := ParseType(name)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("store-everything")
	assert.Error(t, err)
}

func TestEncodeBatchEmpty(t *testing.T) {
	a, err := EncodeBatch(nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := EncodeBatch([]*Tx{})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, a, b)
}
