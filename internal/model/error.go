package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var (
	ErrNoWallet         = errors.New("no wallet loaded: create, derive, import or unlock a wallet first")
	ErrStaleChainState  = errors.New("nonce or chain head not available: refresh balance and try again")
	ErrSendInProgress   = errors.New("a transaction is already being sent")
	ErrNoStoredWallet   = errors.New("no wallet found in storage or file")
	ErrNoPendingWallet  = errors.New("no wallet to save: create, derive or import one first")
	ErrPasswordRequired = errors.New("password is required")
	ErrConsentRequired  = errors.New("consent is required to save the wallet")
)

// GenerationError is returned when secure randomness is unavailable
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate wallet: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// InvalidMnemonicError is returned for a wrong word count or a phrase that is not BIP-39
type InvalidMnemonicError struct {
	Expected int // expected word count, 0 when the count was right
	Reason   string
}

func (e *InvalidMnemonicError) Error() string {
	if e.Expected > 0 {
		return fmt.Sprintf("invalid mnemonic: must have exactly %d words", e.Expected)
	}
	if e.Reason != "" {
		return "invalid mnemonic: " + e.Reason
	}
	return "invalid mnemonic"
}

// InvalidPrivateKeyError is returned when a private key is not a valid secp256k1 scalar
type InvalidPrivateKeyError struct {
	Reason string
}

func (e *InvalidPrivateKeyError) Error() string {
	if e.Reason == "" {
		return "invalid private key"
	}
	return "invalid private key: " + e.Reason
}

// DecryptionError covers both a wrong password and a corrupt blob.
// Both cases are reported the same way.
type DecryptionError struct{}

func (e *DecryptionError) Error() string {
	return "invalid password"
}

// MissingFieldError is returned when a transaction field is empty
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// InvalidAmountError is returned when an amount or fee is not a positive number
type InvalidAmountError struct {
	Field string
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a positive number", e.Field, e.Value)
}

// InvalidAddressError is returned when a recipient address fails validation
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q", e.Address)
}

// FeeRoundingError is returned when the node could not round a fee
type FeeRoundingError struct {
	Err error
}

func (e *FeeRoundingError) Error() string {
	return fmt.Sprintf("failed to round fee: %v", e.Err)
}

func (e *FeeRoundingError) Unwrap() error { return e.Err }

// RelayError is a failed node request. Message holds the node's own message when it sent one.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("node returned status %d: %s", e.Status, e.Message)
}
