package smsgateway

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const melipayamakDefaultBaseURL = "https://api.payamak-panel.com"

// soapTimeout is slightly longer than the REST default; the SOAP endpoint is
// noticeably slower under load.
const soapTimeout = 20 * time.Second

// MelipayamakConfig carries Melipayamak panel credentials.
type MelipayamakConfig struct {
	// Username is the panel account username.
	Username string
	// Password is the panel account password.
	Password string
	// Sender is the originating line number.
	Sender string
	// BaseURL overrides the API host, used in tests.
	BaseURL string
}

// Melipayamak sends free-text messages through the Melipayamak SOAP 1.1 API.
//
// The SendSimpleSMS2 result element carries a numeric record id on success; a
// value longer than 10 digits is a delivery receipt, anything shorter is one
// of the provider's short numeric error codes.
type Melipayamak struct {
	username string
	password string
	sender   string
	baseURL  string
	client   *http.Client
}

// NewMelipayamak constructs the Melipayamak adapter.
func NewMelipayamak(cfg MelipayamakConfig) *Melipayamak {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = melipayamakDefaultBaseURL
	}

	return &Melipayamak{
		username: cfg.Username,
		password: cfg.Password,
		sender:   cfg.Sender,
		baseURL:  baseURL,
		client:   newHTTPClient(soapTimeout),
	}
}

// ID returns the gateway identifier.
func (m *Melipayamak) ID() string { return "melipayamak" }

// Name returns the human-readable provider name.
func (m *Melipayamak) Name() string { return "Melipayamak" }

// Fields describes the required credentials.
func (m *Melipayamak) Fields() []CredentialField {
	return []CredentialField{
		{Key: "username", Label: "Username"},
		{Key: "password", Label: "Password", Secret: true},
		{Key: "sender", Label: "Sender Line"},
	}
}

const melipayamakEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SendSimpleSMS2 xmlns="http://tempuri.org/">
      <username>%s</username>
      <password>%s</password>
      <to>%s</to>
      <from>%s</from>
      <text>%s</text>
      <isflash>false</isflash>
    </SendSimpleSMS2>
  </soap:Body>
</soap:Envelope>`

type melipayamakEnvelopeResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result string `xml:"SendSimpleSMS2Result"`
		} `xml:"SendSimpleSMS2Response"`
	} `xml:"Body"`
}

// Send delivers the rendered message over SOAP; the raw code is not used
// directly.
func (m *Melipayamak) Send(ctx context.Context, phone, message, _ string) error {
	if m.username == "" || m.password == "" {
		return fmt.Errorf("melipayamak: missing credentials")
	}

	envelope := fmt.Sprintf(melipayamakEnvelope,
		xmlEscape(m.username), xmlEscape(m.password),
		xmlEscape(phone), xmlEscape(m.sender), xmlEscape(message))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/post/send.asmx", strings.NewReader(envelope))
	if err != nil {
		return fmt.Errorf("melipayamak: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://tempuri.org/SendSimpleSMS2")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("melipayamak: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("melipayamak: read response: %w", err)
	}

	var er melipayamakEnvelopeResponse
	if err := xml.Unmarshal(body, &er); err != nil {
		return fmt.Errorf("melipayamak: decode response: %w", err)
	}

	recID := strings.TrimSpace(er.Body.Response.Result)
	if !isLongNumeric(recID) {
		return fmt.Errorf("melipayamak: rejected with code %q", recID)
	}

	return nil
}

// isLongNumeric reports whether s is all digits and longer than 10 digits,
// the provider's marker for a delivery record id as opposed to an error code.
func isLongNumeric(s string) bool {
	if len(s) <= 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func xmlEscape(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
