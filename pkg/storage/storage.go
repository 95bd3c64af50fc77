package storage

import (
	"context"

	"github.com/acrostic/chainstore/pkg/cryptography"
	"github.com/acrostic/chainstore/pkg/tx"
)

// SignaturePolicy decides whether the append path checks record signatures.
// Verification is a capability the ledger may be configured to require, not
// an assumption baked into appends.
type SignaturePolicy int

const (
	// AcceptUnverified stores records as given; signature and public key
	// fields are carried but never checked.
	AcceptUnverified SignaturePolicy = iota

	// VerifySignatures rejects appends whose signature does not verify over
	// the record's signable bytes with the carried public key.
	VerifySignatures
)

// TxLedger is the append-only, timestamped record log.
//
// Operations are synchronous and blocking. Concurrent calls against a
// single instance need external serialization, and two instances must not
// be opened on the same path (single-writer-process discipline).
type TxLedger interface {
	// AppendTx records t under a composite key derived from its logical key
	// and arrival time. It performs no semantic validation of the record.
	AppendTx(context.Context, *tx.Tx) error

	// LatestForKey resolves the current value for a logical key and type by
	// scanning the append log. Records that fail to decode are skipped;
	// among the rest the greatest timestamp wins. ErrNotFound if no record
	// matches.
	LatestForKey(ctx context.Context, key string, typ tx.Type) (*tx.Tx, error)

	Close() error
}

// BlockChain is the finalized side of the ledger: explicit block production
// over pending records, separate from the append path, which never touches
// it.
type BlockChain interface {
	// Head returns the hash of the most recently finalized block, or the
	// zero hash when none exists.
	Head() cryptography.Hash

	GetBlock(context.Context, cryptography.Hash) (*Block, error)

	// Finalize drains records appended since the previous finalization into
	// a new block, persists it and advances the head. ErrNoPendingTx when
	// there is nothing to finalize.
	Finalize(context.Context) (*Block, error)
}
