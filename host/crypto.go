package host

import (
	"crypto/ed25519"
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	codec "github.com/oy3o/sccodec"
)

// SHA256 hashes data. The 32-byte result is accounted in memory.
func (c *Call) SHA256(data []byte) codec.H256 {
	c.MemStore(0, sha256.Size)
	return sha256.Sum256(data)
}

// Keccak256 hashes data with legacy Keccak padding, not SHA3-256.
func (c *Call) Keccak256(data []byte) codec.H256 {
	c.MemStore(0, 32)
	var out codec.H256
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

// VerifyEd25519 reports whether sig is a valid signature of message by key.
// Malformed keys and signatures verify as false.
func (c *Call) VerifyEd25519(key, message, sig []byte) bool {
	if len(key) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(key, message, sig)
}
