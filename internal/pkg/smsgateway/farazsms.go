package smsgateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const farazsmsDefaultBaseURL = "http://ippanel.com/class/sms/webservice/send_url.php"

// FarazsmsConfig carries Faraz SMS (ippanel) credentials.
type FarazsmsConfig struct {
	// Username is the panel account username.
	Username string
	// Password is the panel account password.
	Password string
	// Sender is the originating line number.
	Sender string
	// BaseURL overrides the send URL, used in tests.
	BaseURL string
}

// Farazsms sends free-text messages through the Faraz SMS legacy web service.
//
// The endpoint answers with a bare status code in the body; the literal "0"
// means accepted and every other value is an error code.
type Farazsms struct {
	username string
	password string
	sender   string
	baseURL  string
	client   *http.Client
}

// NewFarazsms constructs the Faraz SMS adapter.
func NewFarazsms(cfg FarazsmsConfig) *Farazsms {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = farazsmsDefaultBaseURL
	}

	return &Farazsms{
		username: cfg.Username,
		password: cfg.Password,
		sender:   cfg.Sender,
		baseURL:  baseURL,
		client:   newHTTPClient(defaultHTTPTimeout),
	}
}

// ID returns the gateway identifier.
func (f *Farazsms) ID() string { return "farazsms" }

// Name returns the human-readable provider name.
func (f *Farazsms) Name() string { return "Faraz SMS" }

// Fields describes the required credentials.
func (f *Farazsms) Fields() []CredentialField {
	return []CredentialField{
		{Key: "username", Label: "Username"},
		{Key: "password", Label: "Password", Secret: true},
		{Key: "sender", Label: "Sender Line"},
	}
}

// Send delivers the rendered message; the raw code is not used directly.
func (f *Farazsms) Send(ctx context.Context, phone, message, _ string) error {
	if f.username == "" || f.password == "" {
		return fmt.Errorf("farazsms: missing credentials")
	}

	form := url.Values{
		"uname": {f.username},
		"pass":  {f.password},
		"from":  {f.sender},
		"to":    {phone},
		"msg":   {message},
		"op":    {"send"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("farazsms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("farazsms: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("farazsms: read response: %w", err)
	}

	// The web service embeds its status in the body, the HTTP status is
	// always 200.
	status := strings.Trim(strings.TrimSpace(string(body)), `[]" `)
	if status != "0" {
		return fmt.Errorf("farazsms: rejected with code %q", status)
	}

	return nil
}
