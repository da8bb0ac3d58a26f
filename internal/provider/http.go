package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketledger/backend/internal/config"
	"github.com/rs/zerolog/log"
)

// HTTPClient talks to the aggregator's REST API.
type HTTPClient struct {
	clientID   string
	secret     string
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an aggregator client from the configuration.
func NewHTTPClient(cfg config.AggregatorConfig) *HTTPClient {
	return &HTTPClient{
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		baseURL:  cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// configured reports whether credentials are present. All operations fail
// fast with ErrNotConfigured before any network call when they are not.
func (c *HTTPClient) configured() bool {
	return c.clientID != "" && c.secret != ""
}

// upstreamError is the structured error body the aggregator sends with
// non-2xx responses.
type upstreamError struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// post sends a JSON request and decodes the response into out.
func (c *HTTPClient) post(ctx context.Context, path string, body map[string]any, out any) error {
	if !c.configured() {
		return ErrNotConfigured
	}

	// The aggregator authenticates with credentials in the request body
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to aggregator failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)

		// Use the human readable message when the error body parses,
		// the raw status code otherwise
		var e upstreamError
		if err := json.Unmarshal(raw, &e); err == nil && e.ErrorMessage != "" {
			return fmt.Errorf("%w: %s (%s)", ErrUpstream, e.ErrorMessage, e.ErrorCode)
		}

		log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("aggregator error response")
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}

// CreateLinkSession implements Client.
func (c *HTTPClient) CreateLinkSession(ctx context.Context) (string, error) {
	var response struct {
		LinkToken string `json:"link_token"`
	}

	err := c.post(ctx, "/link/token/create", map[string]any{
		"client_name": "pocketledger",
		"products":    []string{"transactions"},
	}, &response)
	if err != nil {
		return "", err
	}

	if response.LinkToken == "" {
		return "", fmt.Errorf("%w: missing link_token", ErrDecode)
	}

	return response.LinkToken, nil
}

// ExchangePublicToken implements Client.
func (c *HTTPClient) ExchangePublicToken(ctx context.Context, publicToken string) (Credential, error) {
	var credential Credential

	err := c.post(ctx, "/item/public_token/exchange", map[string]any{
		"public_token": publicToken,
	}, &credential)
	if err != nil {
		return Credential{}, err
	}

	if credential.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: missing access_token", ErrDecode)
	}

	return credential, nil
}

// Balances implements Client.
func (c *HTTPClient) Balances(ctx context.Context, accessToken string) ([]ExternalAccount, error) {
	var response struct {
		Accounts []ExternalAccount `json:"accounts"`
	}

	err := c.post(ctx, "/accounts/balance/get", map[string]any{
		"access_token": accessToken,
	}, &response)
	if err != nil {
		return nil, err
	}

	return response.Accounts, nil
}

// TransactionsPage implements Client.
func (c *HTTPClient) TransactionsPage(ctx context.Context, accessToken, cursor string) (TransactionsPage, error) {
	body := map[string]any{
		"access_token": accessToken,
	}
	if cursor != "" {
		body["cursor"] = cursor
	}

	var page TransactionsPage
	err := c.post(ctx, "/transactions/sync", body, &page)
	if err != nil {
		return TransactionsPage{}, err
	}

	return page, nil
}
