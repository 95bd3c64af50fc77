// Package vault is the narrow boundary through which host applications use
// the ledger: open a handle on a path, store and retrieve typed records,
// finalize blocks, close. A handle serializes access to its ledger, so it
// is safe to share across goroutines; the ledger path itself must still be
// owned by a single process.
package vault

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	istorage "github.com/acrostic/chainstore/internal/storage"
	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/storage"
	"github.com/acrostic/chainstore/pkg/tx"
)

// Handle owns one open ledger. The zero value is unusable; obtain one from
// Open.
type Handle struct {
	mu     sync.Mutex
	ledger *istorage.Ledger
}

func Open(path string, opts ...istorage.Option) (*Handle, error) {
	l, err := istorage.Open(path, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "opening ledger")
	}

	return &Handle{ledger: l}, nil
}

// StoreRecord appends an unsigned record: empty signature and public key,
// empty metadata.
func (h *Handle) StoreRecord(ctx context.Context, key string, value []byte, typ tx.Type) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return storage.ErrClosed
	}

	if !typ.Valid() {
		return errors.Errorf("invalid record type %d", typ)
	}

	return h.ledger.AppendTx(ctx, tx.New(typ, key, value))
}

// StoreSignedRecord appends a record signed with kp; the public key is
// carried alongside so a verifying ledger can check it.
func (h *Handle) StoreSignedRecord(ctx context.Context, key string, value []byte, typ tx.Type, kp *cryptography.Keypair) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return storage.ErrClosed
	}

	if !typ.Valid() {
		return errors.Errorf("invalid record type %d", typ)
	}

	t := tx.New(typ, key, value)
	t.PublicKey = kp.Public

	msg, err := t.Signable()
	if err != nil {
		return errors.Wrap(err, "encoding signable record")
	}

	t.Signature = cryptography.Sign(msg, kp)

	return h.ledger.AppendTx(ctx, t)
}

// RetrieveRecord returns the value bytes of the latest record matching key
// and type, or storage.ErrNotFound.
func (h *Handle) RetrieveRecord(ctx context.Context, key string, typ tx.Type) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return nil, storage.ErrClosed
	}

	t, err := h.ledger.LatestForKey(ctx, key, typ)
	if err != nil {
		return nil, err
	}

	return t.Data.Value, nil
}

func (h *Handle) Finalize(ctx context.Context) (*storage.Block, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return nil, storage.ErrClosed
	}

	return h.ledger.Finalize(ctx)
}

func (h *Handle) Head() cryptography.Hash {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return cryptography.ZeroHash
	}

	return h.ledger.Head()
}

func (h *Handle) GetBlock(ctx context.Context, bh cryptography.Hash) (*storage.Block, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return nil, storage.ErrClosed
	}

	return h.ledger.GetBlock(ctx, bh)
}

// Close releases the ledger. Further calls on the handle return
// storage.ErrClosed; closing twice is harmless.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ledger == nil {
		return nil
	}

	err := h.ledger.Close()
	h.ledger = nil

	return err
}
