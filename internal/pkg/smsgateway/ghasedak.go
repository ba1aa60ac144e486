package smsgateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const ghasedakDefaultBaseURL = "https://api.ghasedak.me"

// GhasedakConfig carries Ghasedak API credentials.
type GhasedakConfig struct {
	// APIKey authenticates every request.
	APIKey string
	// Template is the pre-approved verification template name.
	Template string
	// BaseURL overrides the API host, used in tests.
	BaseURL string
}

// Ghasedak sends verification codes through the Ghasedak template API.
//
// Template sends bypass the free-text message entirely; the code is injected
// into the pre-approved template as param1. Success is signalled purely by
// the HTTP status, a 200 means the send was queued.
type Ghasedak struct {
	apiKey   string
	template string
	baseURL  string
	client   *http.Client
}

// NewGhasedak constructs the Ghasedak adapter.
func NewGhasedak(cfg GhasedakConfig) *Ghasedak {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = ghasedakDefaultBaseURL
	}

	return &Ghasedak{
		apiKey:   cfg.APIKey,
		template: cfg.Template,
		baseURL:  baseURL,
		client:   newHTTPClient(defaultHTTPTimeout),
	}
}

// ID returns the gateway identifier.
func (g *Ghasedak) ID() string { return "ghasedak" }

// Name returns the human-readable provider name.
func (g *Ghasedak) Name() string { return "Ghasedak" }

// Fields describes the required credentials.
func (g *Ghasedak) Fields() []CredentialField {
	return []CredentialField{
		{Key: "api_key", Label: "API Key", Secret: true},
		{Key: "template", Label: "Verification Template"},
	}
}

// Send delivers the code through the verification template; the rendered
// message is ignored because the template body lives on the provider side.
func (g *Ghasedak) Send(ctx context.Context, phone, _, code string) error {
	if g.apiKey == "" {
		return fmt.Errorf("ghasedak: missing api key")
	}

	form := url.Values{
		"receptor": {phone},
		"type":     {"1"},
		"template": {g.template},
		"param1":   {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v2/verification/send/simple", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("ghasedak: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("ghasedak: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return fmt.Errorf("ghasedak: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
