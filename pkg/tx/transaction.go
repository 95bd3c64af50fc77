package tx

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	Version1 uint8 = 1
)

// Type declares the intent of a record. The ledger stores every variant as
// an ordinary record; delete variants are not tombstones and do not remove
// prior records.
type Type int8

const (
	TypeStoreToken Type = iota + 1
	TypeUpdateToken
	TypeDeleteToken
	TypeStoreCache
	TypeUpdateCache
	TypeDeleteCache
)

var typeNames = map[Type]string{
	TypeStoreToken:  "store-token",
	TypeUpdateToken: "update-token",
	TypeDeleteToken: "delete-token",
	TypeStoreCache:  "store-cache",
	TypeUpdateCache: "update-cache",
	TypeDeleteCache: "delete-cache",
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseType maps the textual form used by the CLI and config back to a Type.
func ParseType(s string) (Type, error) {
	for t, n := range typeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown tx type %q", s)
}

// Data carries the logical payload of a record. Key is the identity used
// for lookups; Value is opaque to the ledger and expected to be encrypted
// by the caller already.
type Data struct {
	Key      string            `msgpack:"k"`
	Value    []byte            `msgpack:"v"`
	Metadata map[string]string `msgpack:"m"`
}

// Tx is a single authenticated, typed record. Signature and PublicKey are
// carried as-is; the default append path does not verify them.
type Tx struct {
	Version   uint8  `msgpack:"V"`
	Type      Type   `msgpack:"T"`
	Data      Data   `msgpack:"d"`
	Ts        int64  `msgpack:"t"`
	Signature []byte `msgpack:"s,omitempty"`
	PublicKey []byte `msgpack:"p,omitempty"`
}

// New builds an unsigned record stamped with the current time at
// millisecond resolution.
func New(typ Type, key string, value []byte) *Tx {
	return &Tx{
		Version: Version1,
		Type:    typ,
		Data: Data{
			Key:      key,
			Value:    value,
			Metadata: map[string]string{},
		},
		Ts: time.Now().UnixMilli(),
	}
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, t); err != nil {
		return err
	}

	if !t.Type.Valid() {
		return errors.Errorf("unknown tx type %d", t.Type)
	}

	return nil
}

// Signable returns the canonical bytes covered by the record signature:
// everything except the signature itself.
func (t *Tx) Signable() ([]byte, error) {
	c := *t
	c.Signature = nil
	return EncodeCanonical(&c)
}

// EncodeBatch canonically encodes an ordered tx batch, the form hashed into
// a block's tx root. An empty batch is legal and encodes deterministically.
func EncodeBatch(txs []*Tx) ([]byte, error) {
	if txs == nil {
		txs = []*Tx{}
	}
	return EncodeCanonical(txs)
}

// EncodeCanonical encodes v with map keys sorted so the bytes are stable
// across processes regardless of map iteration order. Use it wherever the
// result feeds a content hash.
func EncodeCanonical(v interface{}) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "canonical encode")
	}

	return buf.Bytes(), nil
}
