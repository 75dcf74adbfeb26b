package warthog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"go.uber.org/zap"
)

// WalletRequest is one of GenerateRequest, DeriveRequest, ImportRequest or LoginRequest
type WalletRequest interface {
	action() string
}

// GenerateRequest creates a fresh mnemonic wallet
type GenerateRequest struct {
	WordCount int
	PathType  model.PathType
}

// DeriveRequest restores a wallet from its mnemonic
type DeriveRequest struct {
	Mnemonic  string
	WordCount int
	PathType  model.PathType
}

// ImportRequest restores a wallet from a raw private key
type ImportRequest struct {
	PrivateKey string
}

// LoginRequest unlocks an encrypted blob; an empty Blob means the stored one
type LoginRequest struct {
	Blob     string
	Password []byte
}

func (GenerateRequest) action() string { return "create" }
func (DeriveRequest) action() string   { return "derive" }
func (ImportRequest) action() string   { return "import" }
func (LoginRequest) action() string    { return "login" }

// ParseWalletAction turns a wire request into its typed variant
func ParseWalletAction(req *model.WalletActionRequest) (WalletRequest, error) {
	pathType := req.PathType
	if pathType == "" {
		pathType = model.PathHardened
	}
	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = 12
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "create", "generate":
		return GenerateRequest{WordCount: wordCount, PathType: pathType}, nil
	case "derive":
		if strings.TrimSpace(req.Mnemonic) == "" {
			return nil, &model.MissingFieldError{Field: "mnemonic"}
		}
		return DeriveRequest{Mnemonic: req.Mnemonic, WordCount: wordCount, PathType: pathType}, nil
	case "import":
		if strings.TrimSpace(req.PrivateKey) == "" {
			return nil, &model.MissingFieldError{Field: "privateKey"}
		}
		return ImportRequest{PrivateKey: req.PrivateKey}, nil
	case "login":
		return LoginRequest{Blob: req.Blob, Password: []byte(req.Password)}, nil
	default:
		return nil, fmt.Errorf("unknown wallet action %q", req.Action)
	}
}

// Handle runs a wallet action.
// Create, derive and import leave the result pending until Save; login activates the wallet at once.
// A failed action leaves the session as it was.
func (s *Session) Handle(req WalletRequest) (km *model.KeyMaterial, err error) {
	if req == nil {
		return nil, errors.New("wallet request is nil")
	}
	defer func() { s.metrics.ObserveWalletAction(req.action(), err) }()

	switch r := req.(type) {
	case GenerateRequest:
		km, err = Generate(r.WordCount, r.PathType)
	case DeriveRequest:
		km, err = DeriveFromMnemonic(r.Mnemonic, r.WordCount, r.PathType)
	case ImportRequest:
		km, err = ImportFromPrivateKey(r.PrivateKey)
	case LoginRequest:
		var w *model.StoredWallet
		if w, err = s.Unlock(r.Blob, r.Password); err != nil {
			return nil, err
		}
		return &model.KeyMaterial{PrivateKey: w.PrivateKey, PublicKey: w.PublicKey, Address: w.Address}, nil
	default:
		return nil, fmt.Errorf("unsupported wallet request %T", req)
	}
	if err != nil {
		s.log.Debug("wallet action failed", zap.String("action", req.action()), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	pending := *km
	s.pending = &pending
	s.mu.Unlock()

	s.log.Info("wallet ready to save", zap.String("action", req.action()), zap.String("address", km.Address))
	return km, nil
}
