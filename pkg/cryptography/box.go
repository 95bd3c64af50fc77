package cryptography

// Encrypt is a placeholder that performs no transformation. No encryption
// scheme is defined at this layer; values must already be encrypted by the
// caller before they reach the ledger.
func Encrypt(data []byte, _ []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// Decrypt is the placeholder inverse of Encrypt and returns the input
// unchanged. The bool mirrors a real decryption contract and is always true.
func Decrypt(data []byte, _ []byte) ([]byte, bool) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}
