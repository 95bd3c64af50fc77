package storage

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/acrostic/chainstore/internal/utils/logging"
	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/storage"
	"github.com/acrostic/chainstore/pkg/tx"
)

// Head returns the hash read from the blocks store at open time, advanced
// only by Finalize. It is the zero hash until a first block is finalized.
func (l *Ledger) Head() cryptography.Hash {
	return l.head
}

func (l *Ledger) GetBlock(ctx context.Context, h cryptography.Hash) (*storage.Block, error) {
	v, done, err := l.blocks.Get(blockKey(h))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrapf(storage.ErrStoreRead, "reading block: %s", err)
	}
	defer done.Close()

	b := &storage.Block{}
	if err := b.Unmarshal(v); err != nil {
		return nil, err
	}

	return b, nil
}

// Finalize drains the pending index into a new block linked to the current
// head, persists the block, advances HEAD, then clears the drained index
// entries. Appends never write the blocks store; this is the only path
// that does.
func (l *Ledger) Finalize(ctx context.Context) (*storage.Block, error) {
	pending, drained, err := l.pendingTxs()
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		return nil, storage.ErrNoPendingTx
	}

	var height uint64
	if !l.head.IsZero() {
		prev, err := l.GetBlock(ctx, l.head)
		if err != nil {
			return nil, errors.Wrap(err, "reading head block")
		}
		height = prev.Header.Height + 1
	}

	b, err := storage.NewBlock(l.head, height, pending)
	if err != nil {
		return nil, err
	}

	bh, err := b.Hash()
	if err != nil {
		return nil, err
	}

	d, err := b.Marshal()
	if err != nil {
		return nil, err
	}

	batch := l.blocks.NewBatch()
	defer batch.Close()

	if err := batch.Set(blockKey(bh), d, nil); err != nil {
		return nil, errors.Wrapf(storage.ErrStoreWrite, "storing block: %s", err)
	}

	if err := batch.Set(headKey, bh.Bytes(), nil); err != nil {
		return nil, errors.Wrapf(storage.ErrStoreWrite, "advancing head: %s", err)
	}

	if err := batch.Commit(&pebble.WriteOptions{Sync: true}); err != nil {
		return nil, errors.Wrapf(storage.ErrStoreWrite, "committing block: %s", err)
	}

	l.head = bh

	// The block is durable; clearing the index after it cannot undo the
	// finalization. A crash between the two commits re-finalizes the same
	// records into the next block.
	if err := l.clearPending(drained); err != nil {
		return nil, err
	}

	logging.WithField("height", height).WithField("txs", len(pending)).Info("finalized block")

	return b, nil
}

// pendingTxs walks the pending index in append order and loads each
// referenced record. Dangling or undecodable entries are skipped under the
// same lenient policy as scans.
func (l *Ledger) pendingTxs() ([]*tx.Tx, [][]byte, error) {
	iter := l.txs.NewIter(prefixBounds(pendKeyPrefix))
	defer iter.Close()

	var (
		pending []*tx.Tx
		drained [][]byte
	)

	for iter.First(); iter.Valid(); iter.Next() {
		drained = append(drained, append([]byte{}, iter.Key()...))

		v, done, err := l.txs.Get(iter.Value())
		if err != nil {
			if err == pebble.ErrNotFound {
				continue
			}
			return nil, nil, errors.Wrapf(storage.ErrStoreRead, "reading pending tx: %s", err)
		}

		t := &tx.Tx{}
		err = t.Unmarshal(v)
		done.Close()
		if err != nil {
			logging.WithError(err).Debug("skipping undecodable pending tx")
			continue
		}

		pending = append(pending, t)
	}

	if err := iter.Error(); err != nil {
		return nil, nil, errors.Wrapf(storage.ErrStoreRead, "scanning pending txs: %s", err)
	}

	return pending, drained, nil
}

func (l *Ledger) clearPending(keys [][]byte) error {
	batch := l.txs.NewBatch()
	defer batch.Close()

	for _, k := range keys {
		if err := batch.Delete(k, nil); err != nil {
			return errors.Wrapf(storage.ErrStoreWrite, "clearing pending index: %s", err)
		}
	}

	if err := batch.Commit(&pebble.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(storage.ErrStoreWrite, "committing pending index: %s", err)
	}

	return nil
}

func blockKey(h cryptography.Hash) []byte {
	return []byte(blkKeyPrefix + keySepStr + h.String())
}
