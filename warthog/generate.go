package warthog

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

const (
	bip44Purpose  = 44
	bip44CoinType = 2070 // Warthog
	bip44Account  = 0
	bip44Change   = 0
	bip44Index    = 0
)

// DerivationPath returns the BIP-44 path string for a path type
func DerivationPath(pathType model.PathType) (string, error) {
	switch pathType {
	case model.PathHardened:
		return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", bip44Purpose, bip44CoinType, bip44Account, bip44Change, bip44Index), nil
	case model.PathNonHardened:
		return fmt.Sprintf("m/%d'/%d'/%d/%d/%d", bip44Purpose, bip44CoinType, bip44Account, bip44Change, bip44Index), nil
	default:
		return "", fmt.Errorf("unknown path type %q", pathType)
	}
}

func pathIndexes(pathType model.PathType) ([]uint32, error) {
	account := uint32(bip44Account)
	switch pathType {
	case model.PathHardened:
		account += hdkeychain.HardenedKeyStart
	case model.PathNonHardened:
	default:
		return nil, fmt.Errorf("unknown path type %q", pathType)
	}
	return []uint32{
		hdkeychain.HardenedKeyStart + bip44Purpose,
		hdkeychain.HardenedKeyStart + bip44CoinType,
		account,
		bip44Change,
		bip44Index,
	}, nil
}

func entropyBits(wordCount int) (int, error) {
	switch wordCount {
	case 12:
		return 128, nil
	case 24:
		return 256, nil
	default:
		return 0, &model.InvalidMnemonicError{Reason: fmt.Sprintf("word count must be 12 or 24, got %d", wordCount)}
	}
}

// Generate creates a new wallet from fresh entropy:
// 16 bytes for 12 words, 32 bytes for 24 words.
func Generate(wordCount int, pathType model.PathType) (*model.KeyMaterial, error) {
	bits, err := entropyBits(wordCount)
	if err != nil {
		return nil, err
	}
	if _, err := pathIndexes(pathType); err != nil {
		return nil, err
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, &model.GenerationError{Err: err}
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, &model.GenerationError{Err: err}
	}

	return fromMnemonic(mnemonic, wordCount, pathType)
}

// DeriveFromMnemonic restores a wallet from its phrase.
// The word count is checked before any cryptographic work.
func DeriveFromMnemonic(mnemonic string, wordCount int, pathType model.PathType) (*model.KeyMaterial, error) {
	if _, err := entropyBits(wordCount); err != nil {
		return nil, err
	}

	words := strings.Fields(mnemonic)
	if len(words) != wordCount {
		return nil, &model.InvalidMnemonicError{Expected: wordCount}
	}
	if _, err := pathIndexes(pathType); err != nil {
		return nil, err
	}

	return fromMnemonic(strings.Join(words, " "), wordCount, pathType)
}

func fromMnemonic(mnemonic string, wordCount int, pathType model.PathType) (*model.KeyMaterial, error) {
	// Empty passphrase; checks wordlist and checksum
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, &model.InvalidMnemonicError{Reason: err.Error()}
	}
	defer clear(seed)

	privKey, err := deriveKey(seed, pathType)
	if err != nil {
		return nil, err
	}

	km := keyMaterial(privKey)
	km.Mnemonic = mnemonic
	km.WordCount = wordCount
	km.PathType = pathType
	return km, nil
}

// deriveKey walks m/44'/2070'/0('|)/0/0 from the master key of seed
func deriveKey(seed []byte, pathType model.PathType) (*btcec.PrivateKey, error) {
	indexes, err := pathIndexes(pathType)
	if err != nil {
		return nil, err
	}

	// Network params only matter for extended key serialization, which we never do
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, idx := range indexes {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child %d: %w", idx, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	return privKey, nil
}

// ImportFromPrivateKey builds a wallet from a 64-char hex secp256k1 scalar.
// The result has no mnemonic and no path.
func ImportFromPrivateKey(privateKeyHex string) (*model.KeyMaterial, error) {
	privKey, err := parsePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return keyMaterial(privKey), nil
}

func parsePrivateKey(privateKeyHex string) (*btcec.PrivateKey, error) {
	s := strings.TrimSpace(privateKeyHex)
	if len(s) != 64 {
		return nil, &model.InvalidPrivateKeyError{Reason: "must be 64 hex characters"}
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &model.InvalidPrivateKeyError{Reason: "not hex"}
	}
	defer clear(raw)

	// Reject 0 and anything >= n instead of silently reducing mod n
	var scalar btcec.ModNScalar
	defer scalar.Zero()
	if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
		return nil, &model.InvalidPrivateKeyError{Reason: "out of range for secp256k1"}
	}

	privKey, _ := btcec.PrivKeyFromBytes(raw)
	return privKey, nil
}

func keyMaterial(privKey *btcec.PrivateKey) *model.KeyMaterial {
	pub := privKey.PubKey().SerializeCompressed()
	return &model.KeyMaterial{
		PrivateKey: hex.EncodeToString(privKey.Serialize()),
		PublicKey:  hex.EncodeToString(pub),
		Address:    AddressFromPublicKey(pub),
	}
}
