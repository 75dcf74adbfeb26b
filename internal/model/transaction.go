package model

import "encoding/json"

// TransactionIntent holds every field that goes into a transfer message
type TransactionIntent struct {
	ToAddr    string
	AmountE8  uint64
	FeeE8     uint64
	PinHeight uint32
	PinHash   string // 64 hex chars
	NonceID   uint32
}

// SignedTransaction is the body of POST transaction/add
type SignedTransaction struct {
	PinHeight   uint32 `json:"pinHeight"`
	NonceID     uint32 `json:"nonceId"`
	ToAddr      string `json:"toAddr"`
	AmountE8    uint64 `json:"amountE8"`
	FeeE8       uint64 `json:"feeE8"`
	Signature65 string `json:"signature65"`
}

// SendRequest represents request for POST /warthog/send
type SendRequest struct {
	ToAddr string `json:"toAddr"`
	Amount string `json:"amount"` // WART, decimal
	Fee    string `json:"fee"`    // WART, decimal, rounded by the node
}

// SendResponse represents response for POST /warthog/send
type SendResponse struct {
	Transaction SignedTransaction `json:"transaction"`
	TxHash      string            `json:"txHash"`
	Node        json.RawMessage   `json:"node"`
}
