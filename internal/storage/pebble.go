package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/acrostic/chainstore/internal/utils/logging"
	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/storage"
	"github.com/acrostic/chainstore/pkg/tx"
)

var (
	_ storage.TxLedger   = (*Ledger)(nil)
	_ storage.BlockChain = (*Ledger)(nil)
)

const (
	cacheSize = 1 << 20 * 64

	keySep           byte = ':'
	keySepUpperBound      = keySep + 1
	keySepStr             = ":"

	txKeyPrefix   = "tx"
	pendKeyPrefix = "pend"
	blkKeyPrefix  = "blk"
)

var (
	headKey = []byte("HEAD")
)

// Ledger persists records in two independent pebble stores rooted at a
// filesystem path: an append-heavy transaction log and a block store that
// only block finalization writes.
//
// A single process must own the path; nothing at this layer guards against
// a second opener.
//
// The per-ledger sequence counter that disambiguates same-millisecond
// appends restarts at zero on open, so the tie-break ordering only holds
// within one process lifetime. Two appends to the same key in the same
// millisecond across a reopen collide on the full storage key and the
// later write wins, which matches the latest-wins read semantics.
type Ledger struct {
	blocks *pebble.DB
	txs    *pebble.DB

	head   cryptography.Hash
	seq    uint64
	policy storage.SignaturePolicy
}

type Option func(*Ledger) error

// WithSignaturePolicy configures whether AppendTx verifies record
// signatures before writing. The default accepts records unverified.
func WithSignaturePolicy(p storage.SignaturePolicy) Option {
	return func(l *Ledger) error {
		l.policy = p
		return nil
	}
}

// Open creates the directory tree if missing, opens or creates both stores
// and reads the current head from the blocks store. A missing head is not
// an error; the ledger starts with the zero hash.
func Open(path string, opts ...Option) (*Ledger, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, errors.Wrapf(storage.ErrStoreOpen, "creating ledger dir: %s", err)
	}

	blocks, err := openStore(filepath.Join(path, "blocks"))
	if err != nil {
		return nil, errors.Wrapf(storage.ErrStoreOpen, "blocks store: %s", err)
	}

	txs, err := openStore(filepath.Join(path, "transactions"))
	if err != nil {
		blocks.Close()
		return nil, errors.Wrapf(storage.ErrStoreOpen, "transactions store: %s", err)
	}

	l := &Ledger{
		blocks: blocks,
		txs:    txs,
	}

	for _, o := range opts {
		if err := o(l); err != nil {
			l.Close()
			return nil, err
		}
	}

	if err := l.readHead(); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

func openStore(path string) (*pebble.DB, error) {
	c := pebble.NewCache(cacheSize)
	defer c.Unref()

	return pebble.Open(path, &pebble.Options{Cache: c})
}

func (l *Ledger) readHead() error {
	v, done, err := l.blocks.Get(headKey)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil
		}
		return errors.Wrapf(storage.ErrStoreOpen, "reading head: %s", err)
	}
	defer done.Close()

	h, err := cryptography.HashFromBytes(v)
	if err != nil {
		return errors.Wrapf(storage.ErrStoreOpen, "casting head: %s", err)
	}

	l.head = h

	return nil
}

// AppendTx writes t to the transaction log under
// tx:<key>:<ms>:<seq>. The sequence suffix keeps same-millisecond appends
// for one key in insertion order. No semantic validation is performed
// unless the signature policy requires verification.
func (l *Ledger) AppendTx(ctx context.Context, t *tx.Tx) error {
	if l.policy == storage.VerifySignatures {
		if err := l.verifyTx(t); err != nil {
			return err
		}
	}

	d, err := t.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshaling tx")
	}

	seq := atomic.AddUint64(&l.seq, 1)
	now := time.Now().UnixMilli()
	k := txKey(t.Data.Key, now, seq)

	batch := l.txs.NewBatch()
	defer batch.Close()

	if err := batch.Set(k, d, nil); err != nil {
		return errors.Wrapf(storage.ErrStoreWrite, "storing tx: %s", err)
	}

	// pending index entry, drained by block finalization
	if err := batch.Set(pendKey(now, seq), k, nil); err != nil {
		return errors.Wrapf(storage.ErrStoreWrite, "indexing pending tx: %s", err)
	}

	if err := batch.Commit(&pebble.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(storage.ErrStoreWrite, "committing tx: %s", err)
	}

	return nil
}

func (l *Ledger) verifyTx(t *tx.Tx) error {
	msg, err := t.Signable()
	if err != nil {
		return errors.Wrap(err, "encoding signable tx")
	}

	if !cryptography.Verify(msg, t.Signature, t.PublicKey) {
		return storage.ErrBadSignature
	}

	return nil
}

// LatestForKey scans the bounded key range for one logical key and returns
// the matching-type record with the greatest timestamp. Records that fail
// to decode are skipped so one corrupt entry cannot mask valid ones.
func (l *Ledger) LatestForKey(ctx context.Context, key string, typ tx.Type) (*tx.Tx, error) {
	iter := l.txs.NewIter(prefixBounds(txKeyPrefix + keySepStr + key))
	defer iter.Close()

	var (
		latest   *tx.Tx
		latestTs int64
	)

	for iter.First(); iter.Valid(); iter.Next() {
		t := &tx.Tx{}
		if err := t.Unmarshal(iter.Value()); err != nil {
			logging.WithError(err).WithField("key", key).Debug("skipping undecodable tx record")
			continue
		}

		// The scan bounds admit keys that extend the queried key through
		// the separator ("A:B" sits inside the range for "A"), so match
		// on the record's own key before considering it.
		if t.Data.Key != key || t.Type != typ {
			continue
		}

		if latest == nil || t.Ts >= latestTs {
			latest = t
			latestTs = t.Ts
		}
	}

	if err := iter.Error(); err != nil {
		return nil, errors.Wrapf(storage.ErrStoreRead, "scanning txs: %s", err)
	}

	if latest == nil {
		return nil, storage.ErrNotFound
	}

	return latest, nil
}

func (l *Ledger) Close() error {
	err := l.txs.Close()

	if berr := l.blocks.Close(); berr != nil && err == nil {
		err = berr
	}

	return err
}

func txKey(key string, ms int64, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%c%s%c%013d%c%010d", txKeyPrefix, keySep, key, keySep, ms, keySep, seq))
}

func pendKey(ms int64, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%c%013d%c%010d", pendKeyPrefix, keySep, ms, keySep, seq))
}

// prefixBounds covers exactly <prefix>:*. The upper bound is the separator
// plus one, so sibling keys sharing the prefix text (e.g. "AB" when
// scanning "A") stay out of range.
func prefixBounds(prefix string) *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: append([]byte(prefix), keySep),
		UpperBound: append([]byte(prefix), keySepUpperBound),
	}
}
