package model

// PathType selects the BIP-44 derivation path of a wallet
type PathType string

const (
	PathHardened    PathType = "hardened"     // m/44'/2070'/0'/0/0
	PathNonHardened PathType = "non-hardened" // m/44'/2070'/0/0/0
)

// KeyMaterial is a fully derived wallet.
// Mnemonic, WordCount and PathType are empty for wallets imported from a private key.
type KeyMaterial struct {
	Mnemonic   string   `json:"mnemonic,omitempty"`
	WordCount  int      `json:"wordCount,omitempty"`
	PathType   PathType `json:"pathType,omitempty"`
	PrivateKey string   `json:"privateKey"` // 64 hex chars, no prefix
	PublicKey  string   `json:"publicKey"`  // 66 hex chars, compressed
	Address    string   `json:"address"`    // 48 hex chars
}

// Stored projects the key material to the secrets that get encrypted.
func (k *KeyMaterial) Stored() *StoredWallet {
	return &StoredWallet{
		PrivateKey: k.PrivateKey,
		PublicKey:  k.PublicKey,
		Address:    k.Address,
	}
}

// StoredWallet represents decrypted wallet data.
// Mnemonic and path metadata are never persisted.
type StoredWallet struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
	Address    string `json:"address"`
}

// WalletEnvelope is the JSON structure inside an encrypted wallet blob
type WalletEnvelope struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// ValidateResult is the outcome of an address check
type ValidateResult struct {
	Valid bool `json:"valid"`
}
