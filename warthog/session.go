package warthog

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AlexZinkM/warthog-wallet/internal/common"
	"github.com/AlexZinkM/warthog-wallet/internal/crypto"
	"github.com/AlexZinkM/warthog-wallet/internal/metrics"
	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"go.uber.org/zap"
)

// Node is the Warthog node API a session talks to
type Node interface {
	ChainHead(ctx context.Context) (*model.ChainHead, error)
	Balance(ctx context.Context, address string) (*model.AccountBalance, error)
	RoundFee(ctx context.Context, fee string) (uint64, error)
	SubmitTransaction(ctx context.Context, tx *model.SignedTransaction) (json.RawMessage, error)
	BaseURL() string
	SetBaseURL(url string)
}

// BlobStore keeps the single encrypted wallet slot
type BlobStore interface {
	Save(blob string) error
	// Load returns model.ErrNoStoredWallet when the slot is empty
	Load() (string, error)
	// Resolve prefers a non-empty uploaded blob over the slot
	Resolve(uploaded string) (string, error)
	Clear() error
}

// Options configures a Session
type Options struct {
	Node    Node
	Store   BlobStore
	Params  crypto.Params
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Session is one wallet user's state: a pending wallet waiting to be saved,
// the active wallet, and the chain state used to anchor transactions.
type Session struct {
	node    Node
	store   BlobStore
	params  crypto.Params
	log     *zap.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending *model.KeyMaterial
	wallet  *model.StoredWallet
	chain   model.ChainState

	sending atomic.Bool
}

// NewSession creates an empty session
func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	params := opts.Params
	if params.N == 0 {
		params = crypto.DefaultParams
	}
	return &Session{
		node:    opts.Node,
		store:   opts.Store,
		params:  params,
		log:     log,
		metrics: opts.Metrics,
	}
}

// Pending returns a copy of the wallet waiting to be saved, or nil
func (s *Session) Pending() *model.KeyMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	km := *s.pending
	return &km
}

// Wallet returns a copy of the active wallet, or nil
func (s *Session) Wallet() *model.StoredWallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return nil
	}
	w := *s.wallet
	return &w
}

// ChainState returns the last known chain state of the active wallet
func (s *Session) ChainState() model.ChainState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chain
}

// NodeURL returns the node the session currently talks to
func (s *Session) NodeURL() string {
	return s.node.BaseURL()
}

// SelectNode switches nodes. Chain state from the old node is dropped.
func (s *Session) SelectNode(url string) {
	s.node.SetBaseURL(url)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chain = s.emptyChain()
	s.log.Info("node selected", zap.String("node", url))
}

// emptyChain must be called with mu held
func (s *Session) emptyChain() model.ChainState {
	if s.wallet == nil {
		return model.ChainState{}
	}
	return model.ChainState{Address: s.wallet.Address}
}

// Save encrypts the pending wallet, writes it to the store and makes it active
func (s *Session) Save(password []byte, consent bool) (address string, err error) {
	defer func() { s.metrics.ObserveWalletAction("save", err) }()

	if !consent {
		return "", model.ErrConsentRequired
	}
	if len(password) == 0 {
		return "", model.ErrPasswordRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return "", model.ErrNoPendingWallet
	}

	stored := s.pending.Stored()
	blob, err := crypto.EncryptWallet(stored, password, s.params)
	if err != nil {
		return "", err
	}
	if err := s.store.Save(blob); err != nil {
		return "", fmt.Errorf("failed to save wallet: %w", err)
	}

	s.wallet = stored
	s.pending = nil
	s.chain = model.ChainState{Address: stored.Address}
	s.log.Info("wallet saved", zap.String("address", stored.Address))
	return stored.Address, nil
}

// Download encrypts the pending wallet, or the active one, without touching the store
func (s *Session) Download(password []byte) (string, error) {
	s.mu.Lock()
	var stored *model.StoredWallet
	switch {
	case s.pending != nil:
		stored = s.pending.Stored()
	case s.wallet != nil:
		w := *s.wallet
		stored = &w
	}
	s.mu.Unlock()

	if stored == nil {
		return "", model.ErrNoWallet
	}
	return crypto.EncryptWallet(stored, password, s.params)
}

// Unlock decrypts blob, or the stored blob when blob is empty, and makes it the active wallet
func (s *Session) Unlock(blob string, password []byte) (*model.StoredWallet, error) {
	if len(password) == 0 {
		return nil, model.ErrPasswordRequired
	}

	blob, err := s.store.Resolve(blob)
	if err != nil {
		return nil, err
	}

	w, err := crypto.DecryptWallet(blob, password)
	if err != nil {
		return nil, err
	}
	if !consistent(w) {
		s.log.Warn("decrypted wallet does not match its key", zap.String("address", w.Address))
		return nil, &model.DecryptionError{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = w
	s.pending = nil
	s.chain = model.ChainState{Address: w.Address}
	s.log.Info("wallet unlocked", zap.String("address", w.Address))

	out := *w
	return &out, nil
}

// consistent checks that the public key and address were derived from the private key
func consistent(w *model.StoredWallet) bool {
	km, err := ImportFromPrivateKey(w.PrivateKey)
	if err != nil {
		return false
	}
	return strings.EqualFold(km.PublicKey, w.PublicKey) && strings.EqualFold(km.Address, w.Address)
}

// Clear removes the stored wallet and forgets everything the session holds
func (s *Session) Clear() (err error) {
	defer func() { s.metrics.ObserveWalletAction("clear", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear wallet: %w", err)
	}
	s.pending = nil
	s.wallet = nil
	s.chain = model.ChainState{}
	s.log.Info("wallet cleared")
	return nil
}

// Refresh reloads the chain head and the active wallet's balance and next nonce.
// The previous state is dropped first, so a failed refresh leaves nothing to send on.
func (s *Session) Refresh(ctx context.Context) (model.ChainState, error) {
	s.mu.Lock()
	if s.wallet == nil {
		s.mu.Unlock()
		return model.ChainState{}, model.ErrNoWallet
	}
	address := s.wallet.Address
	s.chain = model.ChainState{Address: address}
	s.mu.Unlock()

	state, err := s.fetchChainState(ctx, address)
	if err != nil {
		s.log.Warn("failed to refresh chain state", zap.String("address", address), zap.Error(err))
		return model.ChainState{Address: address}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The wallet may have changed while we were talking to the node
	if s.wallet == nil || s.wallet.Address != address {
		return s.emptyChain(), errors.New("wallet changed during refresh")
	}
	s.chain = state
	return state, nil
}

func (s *Session) fetchChainState(ctx context.Context, address string) (model.ChainState, error) {
	head, err := s.node.ChainHead(ctx)
	if err != nil {
		return model.ChainState{}, fmt.Errorf("failed to fetch chain head: %w", err)
	}
	if raw, err := hex.DecodeString(head.PinHash); err != nil || len(raw) != pinHashLen {
		return model.ChainState{}, fmt.Errorf("node returned invalid pin hash %q", head.PinHash)
	}

	balance, err := s.node.Balance(ctx, address)
	if err != nil {
		return model.ChainState{}, fmt.Errorf("failed to fetch balance: %w", err)
	}

	// The node reports the last used nonce; an account that never sent starts at 0
	var next uint32
	if balance.NonceID != nil {
		if *balance.NonceID >= math.MaxUint32 {
			return model.ChainState{}, fmt.Errorf("nonce %d out of range", *balance.NonceID)
		}
		next = uint32(*balance.NonceID + 1)
	}

	pinHeight := head.PinHeight
	return model.ChainState{
		Address:   address,
		Balance:   common.FormatBalance(balance.Balance.String(), balance.BalanceE8),
		NonceID:   &next,
		PinHeight: &pinHeight,
		PinHash:   strings.ToLower(head.PinHash),
	}, nil
}
