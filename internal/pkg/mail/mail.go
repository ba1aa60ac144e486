package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the primary recipients. At least one recipient across
	// To, Cc, and Bcc is required.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body, used when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail sends email through some delivery backend.
type Mail interface {
	io.Closer

	// Send dispatches the message. It returns early when ctx is done.
	Send(ctx context.Context, msg Message) error
}
