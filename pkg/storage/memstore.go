package storage

import (
	"context"
	"sync"

	"github.com/acrostic/chainstore/pkg/tx"
)

var (
	_ TxLedger = (*MemStore)(nil)
)

// MemStore is an in-memory TxLedger with the same latest-wins and
// lenient-decode semantics as the persistent ledger. Nothing survives the
// process; it exists for tests and embedding.
type MemStore struct {
	mu   sync.RWMutex
	recs map[string][][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{
		recs: map[string][][]byte{},
	}
}

func (m *MemStore) AppendTx(_ context.Context, t *tx.Tx) error {
	d, err := t.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.recs[t.Data.Key] = append(m.recs[t.Data.Key], d)

	return nil
}

func (m *MemStore) LatestForKey(_ context.Context, key string, typ tx.Type) (*tx.Tx, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		latest   *tx.Tx
		latestTs int64
	)

	for _, d := range m.recs[key] {
		t := &tx.Tx{}
		if err := t.Unmarshal(d); err != nil {
			continue
		}

		if t.Type != typ {
			continue
		}

		if latest == nil || t.Ts >= latestTs {
			latest = t
			latestTs = t.Ts
		}
	}

	if latest == nil {
		return nil, ErrNotFound
	}

	return latest, nil
}

func (m *MemStore) Close() error {
	return nil
}
