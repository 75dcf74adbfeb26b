package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/warthog-wallet/internal/metrics"
	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultNodeURL = "https://node.wartscan.io"
	defaultTimeout = 15 * time.Second
	maxBodySize    = 1 << 20
)

// DefaultNodes are the public nodes a user can choose from
var DefaultNodes = []string{
	"https://warthognode.duckdns.org",
	"http://51.75.21.134:3001",
	"http://62.72.44.89:3001",
	"http://dev.node-s.com:3001",
	"https://node.wartscan.io",
}

// Options tunes the node client. Zero values mean defaults.
type Options struct {
	Timeout     time.Duration
	RateLimit   float64 // requests per second, <= 0 disables limiting
	InsecureTLS bool
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
}

// WarthogClient client for the Warthog node REST API
type WarthogClient struct {
	mu      sync.RWMutex
	baseURL string

	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewWarthogClient creates a new Warthog node client
func NewWarthogClient(baseURL string, opts Options) *WarthogClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.InsecureTLS {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed nodes
		httpClient.Transport = transport
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &WarthogClient{
		client:  httpClient,
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
		metrics: opts.Metrics,
	}
	c.SetBaseURL(baseURL)
	return c
}

// BaseURL returns the node currently in use
func (c *WarthogClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL switches to another node
func (c *WarthogClient) SetBaseURL(baseURL string) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultNodeURL
	}
	c.mu.Lock()
	c.baseURL = baseURL
	c.mu.Unlock()
}

// envelope is the optional {"code":0,"data":{...}} wrapper of node responses
type envelope struct {
	Code    *int            `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// ChainHead gets the current pin height and hash
func (c *WarthogClient) ChainHead(ctx context.Context) (*model.ChainHead, error) {
	var head model.ChainHead
	if _, err := c.do(ctx, "chain_head", http.MethodGet, "chain/head", nil, &head); err != nil {
		return nil, err
	}
	if head.PinHash == "" {
		return nil, &model.RelayError{Message: "node returned no pin hash"}
	}
	return &head, nil
}

// Balance gets the balance and last nonce of an account
func (c *WarthogClient) Balance(ctx context.Context, address string) (*model.AccountBalance, error) {
	var balance model.AccountBalance
	path := fmt.Sprintf("account/%s/balance", url.PathEscape(address))
	if _, err := c.do(ctx, "balance", http.MethodGet, path, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// RoundFee asks the node to quantize a WART fee and returns it in E8
func (c *WarthogClient) RoundFee(ctx context.Context, fee string) (uint64, error) {
	var rounded model.RoundedFee
	path := "tools/encode16bit/from_string/" + url.PathEscape(strings.TrimSpace(fee))
	if _, err := c.do(ctx, "round_fee", http.MethodGet, path, nil, &rounded); err != nil {
		return 0, err
	}
	return rounded.RoundedE8, nil
}

// SubmitTransaction posts a signed transaction and returns the node's reply as is
func (c *WarthogClient) SubmitTransaction(ctx context.Context, tx *model.SignedTransaction) (json.RawMessage, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return c.do(ctx, "submit", http.MethodPost, "transaction/add", body, nil)
}

// do sends one request and unwraps the response into out when out is not nil.
// Every failure is a *model.RelayError.
func (c *WarthogClient) do(ctx context.Context, endpoint, method, path string, body []byte, out any) (raw json.RawMessage, err error) {
	defer func() { c.metrics.ObserveNodeRequest(endpoint, err) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &model.RelayError{Message: fmt.Sprintf("rate limit wait: %v", err)}
	}

	reqURL := c.BaseURL() + "/" + path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, &model.RelayError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("node request", zap.String("method", method), zap.String("url", reqURL))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &model.RelayError{Message: fmt.Sprintf("failed to reach node: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &model.RelayError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var env envelope
	isEnvelope := json.Unmarshal(data, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if isEnvelope {
			msg = firstNonEmpty(env.Error, env.Message, msg)
		}
		return nil, &model.RelayError{Status: resp.StatusCode, Message: msg}
	}
	if isEnvelope && env.Code != nil && *env.Code != 0 {
		msg := firstNonEmpty(env.Error, env.Message, fmt.Sprintf("node error code %d", *env.Code))
		return nil, &model.RelayError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		payload := json.RawMessage(data)
		if isEnvelope && len(env.Data) > 0 && string(env.Data) != "null" {
			payload = env.Data
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return nil, &model.RelayError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to decode %s response: %v", endpoint, err)}
		}
	}

	return json.RawMessage(data), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
