package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const smsirDefaultBaseURL = "https://api.sms.ir"

// SMSIRConfig carries SMS.ir account credentials.
type SMSIRConfig struct {
	// APIKey is sent in the x-api-key header.
	APIKey string
	// TemplateID is the id of the pre-approved verification template.
	TemplateID int
	// BaseURL overrides the API host, used in tests.
	BaseURL string
}

// SMSIR sends verification codes through the SMS.ir "verify" endpoint.
//
// This is a pattern API: the server substitutes the code into a pre-approved
// template, so the rendered free-text message is ignored. Success is exactly
// status == 1 in the JSON response.
type SMSIR struct {
	apiKey     string
	templateID int
	baseURL    string
	client     *http.Client
}

// NewSMSIR constructs the SMS.ir adapter.
func NewSMSIR(cfg SMSIRConfig) *SMSIR {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = smsirDefaultBaseURL
	}

	return &SMSIR{
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
		baseURL:    baseURL,
		client:     newHTTPClient(defaultHTTPTimeout),
	}
}

// ID returns the gateway identifier.
func (s *SMSIR) ID() string { return "smsir" }

// Name returns the human-readable provider name.
func (s *SMSIR) Name() string { return "SMS.ir" }

// Fields describes the required credentials.
func (s *SMSIR) Fields() []CredentialField {
	return []CredentialField{
		{Key: "api_key", Label: "API Key", Secret: true},
		{Key: "template_id", Label: "Verify Template ID"},
	}
}

type smsirRequest struct {
	Mobile     string           `json:"mobile"`
	TemplateID int              `json:"templateId"`
	Parameters []smsirParameter `json:"parameters"`
}

type smsirParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type smsirResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Send delivers the code through the verification template; the free-text
// message is not sent.
func (s *SMSIR) Send(ctx context.Context, phone, _, code string) error {
	if s.apiKey == "" {
		return fmt.Errorf("smsir: missing api key")
	}

	payload, err := json.Marshal(smsirRequest{
		Mobile:     phone,
		TemplateID: s.templateID,
		Parameters: []smsirParameter{{Name: "Code", Value: code}},
	})
	if err != nil {
		return fmt.Errorf("smsir: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/send/verify", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("smsir: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("smsir: request: %w", err)
	}
	defer resp.Body.Close()

	var sr smsirResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return fmt.Errorf("smsir: decode response: %w", err)
	}

	if sr.Status != 1 {
		return fmt.Errorf("smsir: rejected with status %d: %s", sr.Status, sr.Message)
	}

	return nil
}
