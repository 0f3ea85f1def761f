package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tf-anguskong/homelab-monitor/internal/httpclient"
	"github.com/tf-anguskong/homelab-monitor/internal/rate"
)

// Plaid environment hosts. Unknown PLAID_ENV values fall back to production.
var envHosts = map[string]string{
	"sandbox":     "https://sandbox.plaid.com",
	"development": "https://development.plaid.com",
	"production":  "https://production.plaid.com",
}

// HostForEnv maps a PLAID_ENV value to the API base URL.
func HostForEnv(env string) string {
	if host, ok := envHosts[strings.ToLower(strings.TrimSpace(env))]; ok {
		return host
	}
	return envHosts["production"]
}

// Client wraps low-level HTTP communication with Plaid's API.
// Credentials travel in each request body, per Plaid's convention.
type Client struct {
	logger  *zap.Logger
	exec    *httpclient.Executor
	baseURL string
	creds   Credentials
}

// NewClient constructs a Plaid HTTP client for the given environment.
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, env string, creds Credentials) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	exec := httpclient.New(logger, rateMgr, httpClient, 2, "plaid", func(status int, body []byte) error {
		var errResp ErrorResponse
		_ = json.Unmarshal(body, &errResp)

		logger.Warn("plaid.client_error",
			zap.Int("status", status),
			zap.String("error_type", errResp.ErrorType),
			zap.String("error_code", errResp.ErrorCode),
			zap.String("request_id", errResp.RequestID))

		errMsg := errResp.ErrorMessage
		if errMsg == "" {
			errMsg = string(body)
		}
		if errResp.ErrorCode != "" {
			return fmt.Errorf("plaid returned %d: %s: %s", status, errResp.ErrorCode, errMsg)
		}
		return fmt.Errorf("plaid returned %d: %s", status, errMsg)
	})
	return &Client{
		logger:  logger,
		exec:    exec,
		baseURL: HostForEnv(env),
		creds:   creds,
	}
}

// SetObserver installs a per-attempt observer on the underlying executor.
func (c *Client) SetObserver(fn func(status int, elapsed time.Duration)) {
	c.exec.SetObserver(fn)
}

// CreateLinkToken creates a Link token for the fixed homelab user.
// POST /link/token/create
func (c *Client) CreateLinkToken(ctx context.Context, clientName, userID string, products []string) (*LinkTokenCreateResponse, error) {
	req := &LinkTokenCreateRequest{
		Credentials:  c.creds,
		ClientName:   clientName,
		Language:     "en",
		CountryCodes: []string{"US"},
		User:         LinkTokenUser{ClientUserID: userID},
		Products:     products,
	}
	var resp LinkTokenCreateResponse
	if err := c.postJSON(ctx, "/link/token/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExchangePublicToken swaps a Link public token for a long-lived access token.
// POST /item/public_token/exchange
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*PublicTokenExchangeResponse, error) {
	req := &PublicTokenExchangeRequest{
		Credentials: c.creds,
		PublicToken: publicToken,
	}
	var resp PublicTokenExchangeResponse
	if err := c.postJSON(ctx, "/item/public_token/exchange", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// postJSON performs a POST request with a JSON body against the Plaid host.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.exec.DoJSON(ctx, req, c.rateLimitKey(), out)
}

// rateLimitKey scopes the rate limiter per Plaid host.
func (c *Client) rateLimitKey() string {
	if u, err := url.Parse(c.baseURL); err == nil {
		return u.Host
	}
	return c.baseURL
}
