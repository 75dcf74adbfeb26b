package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"
	"github.com/AlexZinkM/warthog-wallet/warthog"

	"go.uber.org/zap"
)

const (
	maxRequestBody   = 1 << 20
	downloadFilename = "warthog_wallet.txt"
)

// WarthogHandler serves one wallet session over HTTP
type WarthogHandler struct {
	session *warthog.Session
	nodes   []string
	log     *zap.Logger
}

// NewWarthogHandler creates a new WarthogHandler.
// nodes are the node URLs a client may switch to.
func NewWarthogHandler(session *warthog.Session, nodes []string, log *zap.Logger) (*WarthogHandler, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WarthogHandler{
		session: session,
		nodes:   slices.Clone(nodes),
		log:     log,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorStatus maps a domain error to an HTTP status and a stable code
func errorStatus(err error) (int, string) {
	var (
		missingErr  *model.MissingFieldError
		amountErr   *model.InvalidAmountError
		addressErr  *model.InvalidAddressError
		mnemonicErr *model.InvalidMnemonicError
		keyErr      *model.InvalidPrivateKeyError
		decryptErr  *model.DecryptionError
		feeErr      *model.FeeRoundingError
		relayErr    *model.RelayError
		genErr      *model.GenerationError
	)
	switch {
	case errors.As(err, &missingErr):
		return http.StatusBadRequest, "missing_field"
	case errors.As(err, &amountErr):
		return http.StatusBadRequest, "invalid_amount"
	case errors.As(err, &addressErr):
		return http.StatusBadRequest, "invalid_address"
	case errors.As(err, &mnemonicErr):
		return http.StatusBadRequest, "invalid_mnemonic"
	case errors.As(err, &keyErr):
		return http.StatusBadRequest, "invalid_private_key"
	case errors.Is(err, model.ErrPasswordRequired):
		return http.StatusBadRequest, "password_required"
	case errors.Is(err, model.ErrConsentRequired):
		return http.StatusBadRequest, "consent_required"
	case errors.As(err, &decryptErr):
		return http.StatusUnauthorized, "invalid_password"
	case errors.Is(err, model.ErrNoWallet):
		return http.StatusNotFound, "no_wallet"
	case errors.Is(err, model.ErrNoStoredWallet):
		return http.StatusNotFound, "no_stored_wallet"
	case errors.Is(err, model.ErrNoPendingWallet):
		return http.StatusNotFound, "no_pending_wallet"
	case errors.Is(err, model.ErrStaleChainState):
		return http.StatusConflict, "stale_chain_state"
	case errors.Is(err, model.ErrSendInProgress):
		return http.StatusConflict, "send_in_progress"
	case errors.As(err, &feeErr):
		return http.StatusBadGateway, "fee_rounding_failed"
	case errors.As(err, &relayErr):
		return http.StatusBadGateway, "node_error"
	case errors.As(err, &genErr):
		return http.StatusInternalServerError, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *WarthogHandler) writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (h *WarthogHandler) badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "bad_request"})
}

// refresh reloads chain state after the wallet or the node changed.
// A failure leaves the state stale; GET /warthog/balance retries.
func (h *WarthogHandler) refresh(ctx context.Context) {
	if h.session.Wallet() == nil {
		return
	}
	if _, err := h.session.Refresh(ctx); err != nil {
		h.log.Debug("chain state not refreshed", zap.Error(err))
	}
}

// walletInfo builds the response for a wallet; secrets only when withSecrets
func walletInfo(km *model.KeyMaterial, withSecrets bool) model.WalletInfoResponse {
	resp := model.WalletInfoResponse{
		PublicKey: km.PublicKey,
		Address:   km.Address,
	}
	if withSecrets {
		resp.Mnemonic = km.Mnemonic
		resp.WordCount = km.WordCount
		resp.PathType = km.PathType
		resp.PrivateKey = km.PrivateKey
	}
	if qr, err := warthog.AddressQRCode(km.Address); err == nil {
		resp.QR = qr
	}
	return resp
}

// WalletAction handles POST /warthog/wallet
// @Summary      Create, derive, import or unlock a wallet
// @Description  create/derive/import return the new key material and keep it pending until saved; login unlocks an encrypted blob (uploaded or stored)
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletActionRequest  true  "Wallet action"
// @Success      200      {object}  model.WalletInfoResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /warthog/wallet [post]
func (h *WarthogHandler) WalletAction(w http.ResponseWriter, r *http.Request) {
	var req model.WalletActionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	action, err := warthog.ParseWalletAction(&req)
	if err != nil {
		if status, _ := errorStatus(err); status == http.StatusInternalServerError {
			h.badRequest(w, err)
			return
		}
		h.writeError(w, err)
		return
	}

	km, err := h.session.Handle(action)
	if login, ok := action.(warthog.LoginRequest); ok {
		clear(login.Password)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	_, isLogin := action.(warthog.LoginRequest)
	if isLogin {
		h.refresh(r.Context())
	}
	writeJSON(w, http.StatusOK, walletInfo(km, !isLogin))
}

// GetWallet handles GET /warthog/wallet
// @Summary      Active wallet
// @Description  Returns the address and public key of the unlocked wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletInfoResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /warthog/wallet [get]
func (h *WarthogHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet := h.session.Wallet()
	if wallet == nil {
		h.writeError(w, model.ErrNoWallet)
		return
	}
	writeJSON(w, http.StatusOK, walletInfo(&model.KeyMaterial{PublicKey: wallet.PublicKey, Address: wallet.Address}, false))
}

// SaveWallet handles POST /warthog/wallet/save
// @Summary      Save pending wallet
// @Description  Encrypts the pending wallet with the password, stores it, makes it active and loads its chain state
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SaveRequest  true  "Password and consent"
// @Success      200      {object}  model.StatusResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /warthog/wallet/save [post]
func (h *WarthogHandler) SaveWallet(w http.ResponseWriter, r *http.Request) {
	var req model.SaveRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	address, err := h.session.Save(password, req.Consent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.refresh(r.Context())

	writeJSON(w, http.StatusOK, model.StatusResponse{
		Success: true,
		Message: "Wallet saved successfully",
		Address: address,
	})
}

// DownloadWallet handles POST /warthog/wallet/download
// @Summary      Download encrypted wallet
// @Description  Encrypts the pending or active wallet and returns it as warthog_wallet.txt
// @Tags         wallet
// @Accept       json
// @Produce      plain
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {string}  string  "encrypted wallet"
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /warthog/wallet/download [post]
func (h *WarthogHandler) DownloadWallet(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	blob, err := h.session.Download(password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadFilename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(blob))
}

// UnlockWallet handles POST /warthog/wallet/unlock
// @Summary      Unlock wallet
// @Description  Decrypts the uploaded blob, or the stored one when none is given
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password and optional blob"
// @Success      200      {object}  model.WalletInfoResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /warthog/wallet/unlock [post]
func (h *WarthogHandler) UnlockWallet(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	km, err := h.session.Handle(warthog.LoginRequest{Blob: req.Blob, Password: password})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, walletInfo(km, false))
}

// ClearWallet handles DELETE /warthog/wallet
// @Summary      Log out
// @Description  Removes the stored wallet and resets the session
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /warthog/wallet [delete]
func (h *WarthogHandler) ClearWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Clear(); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet cleared"})
}

// GetBalance handles GET /warthog/balance
// @Summary      Refresh balance
// @Description  Reloads chain head, balance and next nonce of the active wallet from the selected node
// @Tags         chain
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /warthog/balance [get]
func (h *WarthogHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	state, err := h.session.Refresh(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BalanceResponse{ChainState: state, Node: h.session.NodeURL()})
}

// Send handles POST /warthog/send
// @Summary      Send WART
// @Description  Signs a transfer with the active wallet and submits it to the selected node
// @Tags         chain
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Transfer"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /warthog/send [post]
func (h *WarthogHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	resp, err := h.session.Send(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ValidateAddress handles POST /warthog/address/validate
// @Summary      Validate address
// @Description  Checks length, hex and checksum of a Warthog address
// @Tags         chain
// @Accept       json
// @Produce      json
// @Param        request  body      model.ValidateRequest  true  "Address"
// @Success      200      {object}  model.ValidateResult
// @Router       /warthog/address/validate [post]
func (h *WarthogHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, warthog.ValidateAddress(strings.TrimSpace(req.Address)))
}

// GetNodes handles GET /warthog/nodes
// @Summary      List nodes
// @Tags         node
// @Produce      json
// @Success      200  {object}  model.NodesResponse
// @Router       /warthog/nodes [get]
func (h *WarthogHandler) GetNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.NodesResponse{Selected: h.session.NodeURL(), Nodes: h.nodes})
}

// SelectNode handles PUT /warthog/node
// @Summary      Select node
// @Description  Switches to one of the listed nodes and reloads chain state from it
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        request  body      model.NodeRequest  true  "Node URL"
// @Success      200      {object}  model.NodesResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /warthog/node [put]
func (h *WarthogHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	var req model.NodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	url := strings.TrimRight(strings.TrimSpace(req.URL), "/")
	if !slices.Contains(h.nodes, url) {
		h.badRequest(w, fmt.Errorf("unknown node %q", req.URL))
		return
	}

	h.session.SelectNode(url)
	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, model.NodesResponse{Selected: h.session.NodeURL(), Nodes: h.nodes})
}
