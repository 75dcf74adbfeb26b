package model

import "encoding/json"

// ChainHead represents the node's GET chain/head data
type ChainHead struct {
	PinHeight uint32 `json:"pinHeight"`
	PinHash   string `json:"pinHash"`
}

// AccountBalance represents the node's GET account/{address}/balance data
type AccountBalance struct {
	Balance   json.Number `json:"balance"`
	BalanceE8 *uint64     `json:"balanceE8,omitempty"`
	NonceID   *uint64     `json:"nonceId,omitempty"`
}

// RoundedFee represents the node's GET tools/encode16bit/from_string/{fee} data
type RoundedFee struct {
	RoundedE8 uint64 `json:"roundedE8"`
}

// ChainState is what a session knows about the chain for its wallet.
// Nil NonceID/PinHeight or empty PinHash means the state must be refreshed.
type ChainState struct {
	Address   string  `json:"address"`
	Balance   string  `json:"balance"`
	NonceID   *uint32 `json:"nonceId"`
	PinHeight *uint32 `json:"pinHeight"`
	PinHash   string  `json:"pinHash"`
}

// Ready reports whether a transaction can be anchored on this state
func (c ChainState) Ready() bool {
	return c.NonceID != nil && c.PinHeight != nil && c.PinHash != ""
}

// BalanceResponse represents response for GET /warthog/balance
type BalanceResponse struct {
	ChainState
	Node string `json:"node"`
}
