package vault

import (
	"context"
	"sync"

	"github.com/acrostic/chainstore/internal/utils/logging"
	"github.com/acrostic/chainstore/pkg/tx"
)

// This surface collapses every failure to a boolean over a process-default
// handle, for embedders that cannot carry errors or a handle across the
// boundary. It is backed by an ordinary Handle; new code should use Open
// directly and hold its own handle.

var (
	defaultMu     sync.Mutex
	defaultHandle *Handle
)

// Init opens the process-default ledger at path, replacing (and closing)
// any previous one. Returns false on any failure.
func Init(path string) bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := Open(path)
	if err != nil {
		logging.WithError(err).Error("initializing ledger")
		return false
	}

	if defaultHandle != nil {
		if err := defaultHandle.Close(); err != nil {
			logging.WithError(err).Error("closing previous ledger")
		}
	}

	defaultHandle = h

	return true
}

// StoreRecord appends to the default ledger. Empty values are rejected.
func StoreRecord(key string, value []byte, typ tx.Type) bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHandle == nil || len(value) == 0 {
		return false
	}

	if err := defaultHandle.StoreRecord(context.Background(), key, value, typ); err != nil {
		logging.WithError(err).WithField("key", key).Error("storing record")
		return false
	}

	return true
}

// RetrieveRecord returns the latest value for key and type from the default
// ledger; ok is false when nothing matches or no ledger is open.
func RetrieveRecord(key string, typ tx.Type) ([]byte, bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHandle == nil {
		return nil, false
	}

	v, err := defaultHandle.RetrieveRecord(context.Background(), key, typ)
	if err != nil {
		return nil, false
	}

	return v, true
}

// Shutdown releases the default ledger. It always reports true; subsequent
// operations behave as "no ledger open" until Init is called again.
func Shutdown() bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHandle != nil {
		if err := defaultHandle.Close(); err != nil {
			logging.WithError(err).Error("closing ledger")
		}
		defaultHandle = nil
	}

	return true
}
