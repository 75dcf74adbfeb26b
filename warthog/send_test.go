package warthog

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/warthog-wallet/internal/model"
)

func TestSendSuccess(t *testing.T) {
	s, node, _ := activeSession(t)

	resp, err := s.Send(context.Background(), validSend())
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(node.submitted) != 1 {
		t.Fatalf("submitted %d transactions", len(node.submitted))
	}

	tx := resp.Transaction
	if tx.NonceID != 5 || tx.PinHeight != 10 || tx.AmountE8 != 150000000 || tx.FeeE8 != 9992 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if len(resp.TxHash) != 64 || string(resp.Node) != `{"code":0}` {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Chain state was refreshed with the next nonce
	state := s.ChainState()
	if !state.Ready() || *state.NonceID != 6 || *state.PinHeight != 11 {
		t.Fatalf("chain state not refreshed: %+v", state)
	}

	if _, err := s.Send(context.Background(), validSend()); err != nil {
		t.Fatalf("second send failed: %v", err)
	}
	if node.submitted[1].NonceID != 6 {
		t.Fatalf("nonce reused: %d", node.submitted[1].NonceID)
	}
}

func TestSendSignatureRecoversSender(t *testing.T) {
	s, node, _ := activeSession(t)
	if _, err := s.Send(context.Background(), validSend()); err != nil {
		t.Fatal(err)
	}
	tx := node.submitted[0]
	msg, err := BuildMessage(&model.TransactionIntent{
		ToAddr:    tx.ToAddr,
		AmountE8:  tx.AmountE8,
		FeeE8:     tx.FeeE8,
		PinHeight: tx.PinHeight,
		PinHash:   "cdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcd",
		NonceID:   tx.NonceID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyMessage(keyOnePub, msg, tx.Signature65) {
		t.Fatal("submitted signature does not verify")
	}
}

func TestSendWithoutWallet(t *testing.T) {
	s, _, _ := newTestSession(t)
	if _, err := s.Send(context.Background(), validSend()); !errors.Is(err, model.ErrNoWallet) {
		t.Fatalf("expected ErrNoWallet, got %v", err)
	}
}

func TestSendStaleChainState(t *testing.T) {
	s, node, _ := activeSession(t)
	s.SelectNode("http://other.test")
	if _, err := s.Send(context.Background(), validSend()); !errors.Is(err, model.ErrStaleChainState) {
		t.Fatalf("expected ErrStaleChainState, got %v", err)
	}
	if len(node.submitted) != 0 {
		t.Fatal("transaction submitted on stale state")
	}
}

func TestSendMissingFields(t *testing.T) {
	s, _, _ := activeSession(t)
	cases := map[string]model.SendRequest{
		"toAddr": {Amount: "1", Fee: "0.01"},
		"amount": {ToAddr: zeroAddress(), Fee: "0.01"},
		"fee":    {ToAddr: zeroAddress(), Amount: "1"},
	}
	for field, req := range cases {
		var missing *model.MissingFieldError
		if _, err := s.Send(context.Background(), req); !errors.As(err, &missing) || missing.Field != field {
			t.Errorf("missing %s: got %v", field, err)
		}
	}
}

func TestSendInvalidInput(t *testing.T) {
	s, node, _ := activeSession(t)

	bad := validSend()
	bad.ToAddr = zeroAddress()[:40] + "ffffffff"
	var addrErr *model.InvalidAddressError
	if _, err := s.Send(context.Background(), bad); !errors.As(err, &addrErr) {
		t.Fatalf("bad checksum: got %v", err)
	}

	var amtErr *model.InvalidAmountError
	for _, amount := range []string{"0", "-1", "abc", "0.000000001"} {
		req := validSend()
		req.Amount = amount
		if _, err := s.Send(context.Background(), req); !errors.As(err, &amtErr) || amtErr.Field != "amount" {
			t.Errorf("amount %q: got %v", amount, err)
		}
	}

	req := validSend()
	req.Fee = "-0.1"
	if _, err := s.Send(context.Background(), req); !errors.As(err, &amtErr) || amtErr.Field != "fee" {
		t.Fatalf("negative fee: got %v", err)
	}

	node.rounded = 0
	if _, err := s.Send(context.Background(), validSend()); !errors.As(err, &amtErr) || amtErr.Field != "fee" {
		t.Fatalf("fee rounded to zero: got %v", err)
	}

	node.rounded = 9992
	node.roundErr = errors.New("offline")
	var feeErr *model.FeeRoundingError
	if _, err := s.Send(context.Background(), validSend()); !errors.As(err, &feeErr) {
		t.Fatalf("fee rounding failure: got %v", err)
	}

	if len(node.submitted) != 0 {
		t.Fatal("invalid input reached the node")
	}
	if !s.ChainState().Ready() {
		t.Fatal("rejected send changed chain state")
	}
}

func TestSendRelayFailureKeepsState(t *testing.T) {
	s, node, _ := activeSession(t)
	before := s.ChainState()
	node.submitErr = &model.RelayError{Status: 400, Message: "insufficient balance"}

	var relayErr *model.RelayError
	if _, err := s.Send(context.Background(), validSend()); !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %v", err)
	}
	after := s.ChainState()
	if !after.Ready() || *after.NonceID != *before.NonceID || after.PinHash != before.PinHash {
		t.Fatal("failed send changed chain state")
	}
}

func TestSendSucceedsWhenRefreshFails(t *testing.T) {
	s, node, _ := activeSession(t)
	node.entered = make(chan struct{}, 1)
	node.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), validSend())
		done <- err
	}()
	<-node.entered
	node.mu.Lock()
	node.headErr = errors.New("offline")
	node.mu.Unlock()
	close(node.release)

	if err := <-done; err != nil {
		t.Fatalf("send failed because of refresh: %v", err)
	}
	if s.ChainState().Ready() {
		t.Fatal("spent nonce still usable after failed refresh")
	}
}

func TestSendSingleInFlight(t *testing.T) {
	s, node, _ := activeSession(t)
	node.entered = make(chan struct{}, 1)
	node.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), validSend())
		done <- err
	}()
	<-node.entered

	if _, err := s.Send(context.Background(), validSend()); !errors.Is(err, model.ErrSendInProgress) {
		t.Fatalf("expected ErrSendInProgress, got %v", err)
	}

	close(node.release)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}

	// The guard is released afterwards
	node.entered = nil
	if _, err := s.Send(context.Background(), validSend()); err != nil {
		t.Fatalf("send after release failed: %v", err)
	}
}
