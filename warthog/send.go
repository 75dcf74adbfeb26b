package warthog

import (
	"context"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/common"
	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"go.uber.org/zap"
)

// Send validates, signs and submits a transfer from the active wallet.
// Only one send runs at a time; a second caller gets model.ErrSendInProgress.
// On success the consumed nonce is dropped and chain state is refreshed.
// On failure the session is left as it was.
func (s *Session) Send(ctx context.Context, req model.SendRequest) (resp *model.SendResponse, err error) {
	if !s.sending.CompareAndSwap(false, true) {
		return nil, model.ErrSendInProgress
	}
	defer s.sending.Store(false)
	defer func() { s.metrics.ObserveSend(err) }()

	toAddr := strings.TrimSpace(req.ToAddr)
	amount := strings.TrimSpace(req.Amount)
	fee := strings.TrimSpace(req.Fee)
	switch {
	case toAddr == "":
		return nil, &model.MissingFieldError{Field: "toAddr"}
	case amount == "":
		return nil, &model.MissingFieldError{Field: "amount"}
	case fee == "":
		return nil, &model.MissingFieldError{Field: "fee"}
	}

	s.mu.Lock()
	var wallet model.StoredWallet
	hasWallet := s.wallet != nil
	if hasWallet {
		wallet = *s.wallet
	}
	chain := s.chain
	s.mu.Unlock()

	if !hasWallet {
		return nil, model.ErrNoWallet
	}
	if !chain.Ready() {
		return nil, model.ErrStaleChainState
	}
	if !ValidateAddress(toAddr).Valid {
		return nil, &model.InvalidAddressError{Address: toAddr}
	}

	amountE8, err := common.WartToE8(amount)
	if err != nil {
		return nil, err
	}
	if !common.IsPositiveAmount(fee) {
		return nil, &model.InvalidAmountError{Field: "fee", Value: req.Fee}
	}

	// The node encodes fees to a 16-bit float; sign exactly what it will charge
	feeE8, err := s.node.RoundFee(ctx, fee)
	if err != nil {
		return nil, &model.FeeRoundingError{Err: err}
	}
	if feeE8 == 0 {
		return nil, &model.InvalidAmountError{Field: "fee", Value: req.Fee}
	}

	intent := &model.TransactionIntent{
		ToAddr:    strings.ToLower(toAddr),
		AmountE8:  amountE8,
		FeeE8:     feeE8,
		PinHeight: *chain.PinHeight,
		PinHash:   chain.PinHash,
		NonceID:   *chain.NonceID,
	}
	tx, txHash, err := SignTransaction(wallet.PrivateKey, intent)
	if err != nil {
		return nil, err
	}

	s.log.Info("submitting transaction",
		zap.String("from", wallet.Address),
		zap.String("to", intent.ToAddr),
		zap.Uint64("amountE8", amountE8),
		zap.Uint64("feeE8", feeE8),
		zap.Uint32("nonceId", intent.NonceID),
		zap.String("txHash", txHash))

	body, err := s.node.SubmitTransaction(ctx, tx)
	if err != nil {
		s.log.Warn("transaction rejected", zap.String("txHash", txHash), zap.Error(err))
		return nil, err
	}

	// The nonce is spent; never reuse this state
	s.mu.Lock()
	if s.wallet != nil && s.wallet.Address == wallet.Address {
		s.chain = model.ChainState{Address: wallet.Address}
	}
	s.mu.Unlock()

	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn("refresh after send failed", zap.Error(err))
	}

	return &model.SendResponse{
		Transaction: *tx,
		TxHash:      txHash,
		Node:        body,
	}, nil
}
