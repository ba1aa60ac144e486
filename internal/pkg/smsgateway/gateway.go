package smsgateway

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrNoPrimaryGateway is returned when no primary gateway is configured.
	ErrNoPrimaryGateway = errors.New("smsgateway: no primary gateway configured")

	// ErrInvalidPhone is returned when the destination number does not
	// normalize to a supported mobile number.
	ErrInvalidPhone = errors.New("smsgateway: invalid phone number")

	// ErrUnknownGateway is returned when configuration references a gateway
	// id that is not registered.
	ErrUnknownGateway = errors.New("smsgateway: unknown gateway id")
)

// Gateway is implemented by each SMS provider adapter.
//
// Send receives both the rendered message and the raw code because providers
// differ in which one is authoritative: free-text providers send the message,
// template ("pattern") providers substitute the code into a server-side
// template and ignore the message entirely.
type Gateway interface {
	// ID returns the stable configuration identifier of the provider.
	ID() string
	// Name returns the human-readable provider name.
	Name() string
	// Fields describes the credentials the provider requires.
	Fields() []CredentialField
	// Send delivers one message. A nil return means the provider accepted
	// the message; any failure (network, protocol, provider rejection) is
	// returned as an error and never panics.
	Send(ctx context.Context, phone, message, code string) error
}

// CredentialField describes one configuration field of a provider.
type CredentialField struct {
	// Key is the configuration key of the field.
	Key string `json:"key"`
	// Label is the human-readable field name.
	Label string `json:"label"`
	// Secret marks fields that must be masked when displayed.
	Secret bool `json:"secret"`
}

// Descriptor is a serializable summary of a registered gateway.
type Descriptor struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Fields []CredentialField `json:"fields"`
}

const defaultHTTPTimeout = 15 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
