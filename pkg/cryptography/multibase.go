package cryptography

import (
	"github.com/multiformats/go-multibase"
)

// EncodeMultibase renders raw key bytes as a Base58BTC multibase string,
// the textual form used by the CLI for keys on disk and on screen.
func EncodeMultibase(raw []byte) (string, error) {
	return multibase.Encode(multibase.Base58BTC, raw)
}

func DecodeMultibase(mb string) ([]byte, error) {
	_, d, err := multibase.Decode(mb)
	return d, err
}
