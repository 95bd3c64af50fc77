package storage

import "github.com/pkg/errors"

var (
	// ErrNotFound reports that no matching record exists. It is an expected
	// outcome of lookups, not a storage failure.
	ErrNotFound = errors.New("not found")

	// ErrStoreOpen is fatal to Open; operator intervention is required
	// before a retry can succeed.
	ErrStoreOpen = errors.New("storage open failed")

	// ErrStoreWrite means the record was not written. There is no partial
	// state to clean up and no automatic retry.
	ErrStoreWrite = errors.New("storage write failed")

	// ErrStoreRead means a scan could not be started or completed. Records
	// that fail to decode mid-scan are skipped, not surfaced as this error.
	ErrStoreRead = errors.New("storage read failed")

	// ErrBadSignature rejects an append under the VerifySignatures policy.
	ErrBadSignature = errors.New("tx signature invalid")

	// ErrNoPendingTx means finalization found nothing newer than the last
	// finalized block; no empty block is produced.
	ErrNoPendingTx = errors.New("no pending transactions")

	// ErrClosed reports use of a ledger handle after it was released.
	ErrClosed = errors.New("ledger closed")
)
