package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acrostic/chainstore/pkg/tx"
)

func TestMemStoreRoundTrip(t *testing.T) {
	m := NewMemStore()

	r := tx.New(tx.TypeStoreToken, "A", []byte{1, 2, 3})

	if err := m.AppendTx(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	got, err := m.LatestForKey(context.Background(), "A", tx.TypeStoreToken)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []byte{1, 2, 3}, got.Data.Value)
}

func TestMemStoreLatestWins(t *testing.T) {
	m := NewMemStore()

	t1 := tx.New(tx.TypeStoreCache, "A", []byte("old"))
	t1.Ts = 1000
	t2 := tx.New(tx.TypeStoreCache, "A", []byte("new"))
	t2.Ts = 2000

	if err := m.AppendTx(context.Background(), t1); err != nil {
		t.Fatal(err)
	}
	if err := m.AppendTx(context.Background(), t2); err != nil {
		t.Fatal(err)
	}

	got, err := m.LatestForKey(context.Background(), "A", tx.TypeStoreCache)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []byte("new"), got.Data.Value)
}

func TestMemStoreTypeIsolation(t *testing.T) {
	m := NewMemStore()

	if err := m.AppendTx(context.Background(), tx.New(tx.TypeStoreToken, "A", []byte{1})); err != nil {
		t.Fatal(err)
	}

	_, err := m.LatestForKey(context.Background(), "A", tx.TypeStoreCache)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreNotFound(t *testing.T) {
	m := NewMemStore()

	_, err := m.LatestForKey(context.Background(), "missing", tx.TypeStoreToken)
	assert.ErrorIs(t, err, ErrNotFound)
}
