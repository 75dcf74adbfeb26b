package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 1
	kdfScrypt       = "scrypt"
	scryptKeyLen    = 32
	saltLen         = 32
	nonceLen        = 12
)

// Params are the scrypt cost parameters used when encrypting.
// Decryption always uses the parameters recorded in the blob.
type Params struct {
	N int
	R int
	P int
}

// DefaultParams is N=2^18 (~256MB RAM, 0.5-2s).
// Works on phones and desktops alike while keeping brute force expensive.
var DefaultParams = Params{N: 1 << 18, R: 8, P: 1}

// EncryptWallet encrypts the wallet secrets and returns the opaque blob.
// password must be []byte for security (caller should zero it after use)
func EncryptWallet(wallet *model.StoredWallet, password []byte, params Params) (string, error) {
	if wallet == nil {
		return "", fmt.Errorf("wallet is nil")
	}
	if len(password) == 0 {
		return "", model.ErrPasswordRequired
	}
	if params.N == 0 {
		params = DefaultParams
	}
	if !params.valid() {
		return "", fmt.Errorf("scrypt parameters out of range: N=%d r=%d p=%d", params.N, params.R, params.P)
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Derive key from password
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// Only the three derived secrets are serialized
	plaintext, err := json.Marshal(wallet)
	if err != nil {
		return "", fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	envelope := model.WalletEnvelope{
		Version:    envelopeVersion,
		KDF:        kdfScrypt,
		N:          params.N,
		R:          params.R,
		P:          params.P,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
