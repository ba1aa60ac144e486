package entity

import (
	"net/mail"
	"strings"

	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
)

type IdentifierKind int16

const (
	// IdentifierInvalid means the input is neither an email nor a phone.
	IdentifierInvalid IdentifierKind = 0

	// IdentifierEmail means the input parsed as a bare email address.
	IdentifierEmail IdentifierKind = 1

	// IdentifierPhone means the input normalized to an Iranian mobile number.
	IdentifierPhone IdentifierKind = 2
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	default:
		return "invalid"
	}
}

// Identifier is a classified login identifier. Value holds the canonical form:
// the lowercased address for emails, the +98 number for phones.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

func (i Identifier) IsValid() bool {
	return i.Kind == IdentifierEmail || i.Kind == IdentifierPhone
}

// Classify resolves raw user input into an email or phone identifier.
//
// The email test runs first so addresses with digit-heavy local parts are
// never mistaken for phone candidates. Only bare addresses pass; anything
// with a display name is rejected.
func Classify(raw string) Identifier {
	in := strings.TrimSpace(raw)
	if in == "" {
		return Identifier{Kind: IdentifierInvalid}
	}

	if addr, err := mail.ParseAddress(in); err == nil && addr.Name == "" && addr.Address == in {
		return Identifier{Kind: IdentifierEmail, Value: strings.ToLower(in)}
	}

	if phone, ok := smsgateway.NormalizeIranianPhone(in); ok {
		return Identifier{Kind: IdentifierPhone, Value: phone}
	}

	return Identifier{Kind: IdentifierInvalid}
}
