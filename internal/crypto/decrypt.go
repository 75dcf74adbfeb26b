package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// Bounds on the cost parameters accepted from a blob
const (
	maxScryptN   = 1 << 20
	maxScryptR   = 32
	maxScryptP   = 16
	maxScryptMem = 1 << 30 // 128*N*r bytes
)

// DecryptWallet decrypts a blob produced by EncryptWallet.
// Every failure is reported as *model.DecryptionError: a wrong password and a corrupt blob look the same.
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(blob string, password []byte) (*model.StoredWallet, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(trimBOM(blob)))
	if err != nil {
		return nil, &model.DecryptionError{}
	}

	var envelope model.WalletEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &model.DecryptionError{}
	}
	if envelope.Version != envelopeVersion || envelope.KDF != kdfScrypt {
		return nil, &model.DecryptionError{}
	}
	if !(Params{N: envelope.N, R: envelope.R, P: envelope.P}).valid() {
		return nil, &model.DecryptionError{}
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil {
		return nil, &model.DecryptionError{}
	}
	nonce, err := base64.StdEncoding.DecodeString(envelope.Nonce)
	if err != nil || len(nonce) != nonceLen {
		return nil, &model.DecryptionError{}
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.CipherText)
	if err != nil {
		return nil, &model.DecryptionError{}
	}

	// Derive key from password
	key, err := scrypt.Key(password, salt, envelope.N, envelope.R, envelope.P, scryptKeyLen)
	if err != nil {
		return nil, &model.DecryptionError{}
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, &model.DecryptionError{}
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &model.DecryptionError{}
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var wallet model.StoredWallet
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wallet); err != nil {
		return nil, &model.DecryptionError{}
	}
	if wallet.PrivateKey == "" || wallet.PublicKey == "" || wallet.Address == "" {
		return nil, &model.DecryptionError{}
	}

	return &wallet, nil
}

// valid reports whether p is a power-of-two N with r, p and memory within the decrypt bounds
func (p Params) valid() bool {
	if p.N <= 1 || p.N > maxScryptN || p.N&(p.N-1) != 0 {
		return false
	}
	if p.R <= 0 || p.R > maxScryptR || p.P <= 0 || p.P > maxScryptP {
		return false
	}
	return 128*p.N*p.R <= maxScryptMem
}

// Skip UTF-8 BOM if present
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
