package smsgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const kavenegarDefaultBaseURL = "https://api.kavenegar.com"

// KavenegarConfig carries Kavenegar account credentials.
type KavenegarConfig struct {
	// APIKey is the Kavenegar account API key embedded in the request path.
	APIKey string
	// Sender is the originating line number.
	Sender string
	// BaseURL overrides the API host, used in tests.
	BaseURL string
}

// Kavenegar sends free-text messages through the Kavenegar REST API.
//
// The API embeds the key in the URL path and reports the outcome inside the
// JSON envelope: success is exactly return.status == 200, regardless of the
// HTTP status line.
type Kavenegar struct {
	apiKey  string
	sender  string
	baseURL string
	client  *http.Client
}

// NewKavenegar constructs the Kavenegar adapter.
func NewKavenegar(cfg KavenegarConfig) *Kavenegar {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = kavenegarDefaultBaseURL
	}

	return &Kavenegar{
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		baseURL: baseURL,
		client:  newHTTPClient(defaultHTTPTimeout),
	}
}

// ID returns the gateway identifier.
func (k *Kavenegar) ID() string { return "kavenegar" }

// Name returns the human-readable provider name.
func (k *Kavenegar) Name() string { return "Kavenegar" }

// Fields describes the required credentials.
func (k *Kavenegar) Fields() []CredentialField {
	return []CredentialField{
		{Key: "api_key", Label: "API Key", Secret: true},
		{Key: "sender", Label: "Sender Line"},
	}
}

type kavenegarResponse struct {
	Return struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"return"`
}

// Send delivers the rendered message; the raw code is not used directly.
func (k *Kavenegar) Send(ctx context.Context, phone, message, _ string) error {
	if k.apiKey == "" {
		return fmt.Errorf("kavenegar: missing api key")
	}

	query := url.Values{}
	query.Set("receptor", phone)
	query.Set("message", message)
	if k.sender != "" {
		query.Set("sender", k.sender)
	}

	endpoint := fmt.Sprintf("%s/v1/%s/sms/send.json?%s", k.baseURL, k.apiKey, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("kavenegar: build request: %w", err)
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("kavenegar: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("kavenegar: read response: %w", err)
	}

	var kr kavenegarResponse
	if err := json.Unmarshal(body, &kr); err != nil {
		return fmt.Errorf("kavenegar: decode response: %w", err)
	}

	if kr.Return.Status != 200 {
		return fmt.Errorf("kavenegar: rejected with status %d: %s", kr.Return.Status, kr.Return.Message)
	}

	return nil
}
