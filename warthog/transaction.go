package warthog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Transfer message layout, all integers big-endian:
// pinHash(32) | pinHeight(4) | nonceId(4) | reserved(3) | feeE8(8) | toAddr(20) | amountE8(8)
const (
	pinHashLen  = 32
	reservedLen = 3
	toRawLen    = 20
	MessageLen  = pinHashLen + 4 + 4 + reservedLen + 8 + toRawLen + 8 // 79

	compactSigMagic = 27
	Signature65Len  = 130 // hex chars
)

// BuildMessage assembles the 79-byte transfer message
func BuildMessage(intent *model.TransactionIntent) ([]byte, error) {
	pinHash, err := hex.DecodeString(intent.PinHash)
	if err != nil || len(pinHash) != pinHashLen {
		return nil, fmt.Errorf("pin hash must be %d hex bytes", pinHashLen)
	}

	if len(intent.ToAddr) != AddressLen {
		return nil, &model.InvalidAddressError{Address: intent.ToAddr}
	}
	// The trailing checksum is not part of the message
	toRaw, err := hex.DecodeString(intent.ToAddr[:addressBodyLen])
	if err != nil {
		return nil, &model.InvalidAddressError{Address: intent.ToAddr}
	}

	msg := make([]byte, 0, MessageLen)
	msg = append(msg, pinHash...)
	msg = binary.BigEndian.AppendUint32(msg, intent.PinHeight)
	msg = binary.BigEndian.AppendUint32(msg, intent.NonceID)
	msg = append(msg, make([]byte, reservedLen)...)
	msg = binary.BigEndian.AppendUint64(msg, intent.FeeE8)
	msg = append(msg, toRaw...)
	msg = binary.BigEndian.AppendUint64(msg, intent.AmountE8)

	return msg, nil
}

// TxHash returns SHA256(message)
func TxHash(message []byte) [32]byte {
	return sha256.Sum256(message)
}

// SignMessage signs SHA256(message) and returns hex(r || s || recoveryId), 130 chars.
// Signatures are deterministic (RFC6979) with low S.
func SignMessage(privateKeyHex string, message []byte) (string, error) {
	privKey, err := parsePrivateKey(privateKeyHex)
	if err != nil {
		return "", err
	}
	defer privKey.Zero()

	hash := TxHash(message)

	// Compact format: [27 + recid] || r || s, with an uncompressed-key flag
	compact := ecdsa.SignCompact(privKey, hash[:], false)

	recID := compact[0] - compactSigMagic
	sig := make([]byte, 0, 65)
	sig = append(sig, compact[1:33]...)
	sig = append(sig, compact[33:65]...)
	sig = append(sig, recID)

	return hex.EncodeToString(sig), nil
}

// RecoverPublicKey returns the compressed public key hex that produced signature65 over message
func RecoverPublicKey(message []byte, signature65 string) (string, error) {
	if len(signature65) != Signature65Len {
		return "", fmt.Errorf("signature must be %d hex chars", Signature65Len)
	}
	sig, err := hex.DecodeString(signature65)
	if err != nil {
		return "", fmt.Errorf("invalid signature hex: %w", err)
	}
	if sig[64] > 3 {
		return "", fmt.Errorf("invalid recovery id %d", sig[64])
	}

	compact := make([]byte, 65)
	compact[0] = compactSigMagic + sig[64]
	copy(compact[1:], sig[:64])

	hash := TxHash(message)
	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", err)
	}
	return hex.EncodeToString(pub.SerializeCompressed()), nil
}

// VerifyMessage reports whether signature65 over message was made by publicKeyHex
func VerifyMessage(publicKeyHex string, message []byte, signature65 string) bool {
	want, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false
	}
	pub, err := btcec.ParsePubKey(want)
	if err != nil {
		return false
	}
	got, err := RecoverPublicKey(message, signature65)
	if err != nil {
		return false
	}
	return got == hex.EncodeToString(pub.SerializeCompressed())
}

// SignTransaction builds, hashes and signs an intent
func SignTransaction(privateKeyHex string, intent *model.TransactionIntent) (*model.SignedTransaction, string, error) {
	message, err := BuildMessage(intent)
	if err != nil {
		return nil, "", err
	}

	signature65, err := SignMessage(privateKeyHex, message)
	if err != nil {
		return nil, "", err
	}

	hash := TxHash(message)
	return &model.SignedTransaction{
		PinHeight:   intent.PinHeight,
		NonceID:     intent.NonceID,
		ToAddr:      intent.ToAddr,
		AmountE8:    intent.AmountE8,
		FeeE8:       intent.FeeE8,
		Signature65: signature65,
	}, hex.EncodeToString(hash[:]), nil
}
