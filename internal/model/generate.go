package model

// WalletActionRequest represents request for POST /warthog/wallet
type WalletActionRequest struct {
	Action     string   `json:"action"` // create, derive, import, login
	WordCount  int      `json:"wordCount,omitempty"`
	PathType   PathType `json:"pathType,omitempty"`
	Mnemonic   string   `json:"mnemonic,omitempty"`
	PrivateKey string   `json:"privateKey,omitempty"`
	Blob       string   `json:"blob,omitempty"`
	Password   string   `json:"password,omitempty"`
}

// WalletInfoResponse represents response for wallet actions.
// Secrets are only present for freshly created, derived or imported wallets.
type WalletInfoResponse struct {
	Mnemonic   string   `json:"mnemonic,omitempty"`
	WordCount  int      `json:"wordCount,omitempty"`
	PathType   PathType `json:"pathType,omitempty"`
	PrivateKey string   `json:"privateKey,omitempty"`
	PublicKey  string   `json:"publicKey"`
	Address    string   `json:"address"`
	QR         string   `json:"QR,omitempty"`
}

// SaveRequest represents request for POST /warthog/wallet/save
type SaveRequest struct {
	Password string `json:"password"`
	Consent  bool   `json:"consent"`
}

// PasswordRequest represents request for POST /warthog/wallet/download and /unlock
type PasswordRequest struct {
	Password string `json:"password"`
	Blob     string `json:"blob,omitempty"`
}

// ValidateRequest represents request for POST /warthog/address/validate
type ValidateRequest struct {
	Address string `json:"address"`
}

// NodeRequest represents request for PUT /warthog/node
type NodeRequest struct {
	URL string `json:"url"`
}

// NodesResponse represents response for GET /warthog/nodes
type NodesResponse struct {
	Selected string   `json:"selected"`
	Nodes    []string `json:"nodes"`
}

// StatusResponse is a plain success message
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
}
