package warthog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"golang.org/x/crypto/ripemd160"
)

const (
	AddressLen     = 48 // hex chars
	addressBodyLen = 40 // hex chars of the RIPEMD160 digest
	checksumLen    = 4  // bytes
)

// hash160 returns RIPEMD160(SHA256(data))
func hash160(data []byte) [ripemd160.Size]byte {
	sha := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(sha[:])

	var out [ripemd160.Size]byte
	copy(out[:], hasher.Sum(nil))
	return out
}

// AddressFromHash appends the 4-byte checksum SHA256(hash)[0:4] to a RIPEMD160 digest
func AddressFromHash(hash [ripemd160.Size]byte) string {
	sum := sha256.Sum256(hash[:])
	return hex.EncodeToString(hash[:]) + hex.EncodeToString(sum[:checksumLen])
}

// AddressFromPublicKey encodes a compressed public key into a 48-char address
func AddressFromPublicKey(pubKey []byte) string {
	return AddressFromHash(hash160(pubKey))
}

// EncodeAddress encodes a hex public key into a 48-char address
func EncodeAddress(publicKeyHex string) (string, error) {
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(pub) == 0 {
		return "", fmt.Errorf("public key is empty")
	}
	return AddressFromPublicKey(pub), nil
}

// ValidateAddress recomputes the checksum over the first 40 hex chars and compares it to the last 8.
// Wrong length, non-hex input and a bad checksum all give Valid=false.
func ValidateAddress(address string) model.ValidateResult {
	if len(address) != AddressLen {
		return model.ValidateResult{Valid: false}
	}

	raw, err := hex.DecodeString(address)
	if err != nil {
		return model.ValidateResult{Valid: false}
	}

	var hash [ripemd160.Size]byte
	copy(hash[:], raw[:ripemd160.Size])
	sum := sha256.Sum256(hash[:])

	for i := 0; i < checksumLen; i++ {
		if raw[ripemd160.Size+i] != sum[i] {
			return model.ValidateResult{Valid: false}
		}
	}
	return model.ValidateResult{Valid: true}
}
