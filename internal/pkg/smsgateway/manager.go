package smsgateway

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

// DefaultMessageTemplate is used when no template is configured.
const DefaultMessageTemplate = "Your verification code is {otp_code}"

// codeToken is the only placeholder substituted into the message template.
const codeToken = "{otp_code}"

// ManagerConfig selects the active gateways and the message template.
type ManagerConfig struct {
	// PrimaryID is the id of the gateway used first for every send.
	PrimaryID string
	// BackupID is the gateway attempted after a primary failure. It is
	// ignored when it equals PrimaryID or names an unregistered gateway.
	BackupID string
	// MessageTemplate is the user-configured message containing {otp_code}.
	MessageTemplate string
}

// Manager owns the gateway registry and orchestrates delivery with failover.
//
// The registry is built once at construction from an explicit adapter list and
// never mutated afterwards.
type Manager struct {
	gateways map[string]Gateway
	order    []string
	primary  Gateway
	backup   Gateway
	template string
}

// NewManager builds a Manager from the registered adapters and resolves the
// primary and backup gateways from configuration.
func NewManager(cfg ManagerConfig, gws ...Gateway) *Manager {
	m := &Manager{
		gateways: make(map[string]Gateway, len(gws)),
		template: strings.TrimSpace(cfg.MessageTemplate),
	}
	if m.template == "" {
		m.template = DefaultMessageTemplate
	}

	for _, gw := range gws {
		if gw == nil {
			continue
		}
		if _, dup := m.gateways[gw.ID()]; dup {
			slog.Warn("smsgateway: duplicate gateway id ignored", "id", gw.ID())
			continue
		}
		m.gateways[gw.ID()] = gw
		m.order = append(m.order, gw.ID())
	}

	if gw, ok := m.gateways[cfg.PrimaryID]; ok {
		m.primary = gw
	} else if cfg.PrimaryID != "" {
		slog.Warn("smsgateway: primary gateway not registered", "id", cfg.PrimaryID)
	}

	// Backup must be a different provider than primary.
	if cfg.BackupID != "" && cfg.BackupID != cfg.PrimaryID {
		if gw, ok := m.gateways[cfg.BackupID]; ok {
			m.backup = gw
		} else {
			slog.Warn("smsgateway: backup gateway not registered", "id", cfg.BackupID)
		}
	}

	return m
}

// Available returns descriptors of all registered gateways in registration order.
func (m *Manager) Available() []Descriptor {
	return lo.Map(m.order, func(id string, _ int) Descriptor {
		gw := m.gateways[id]
		return Descriptor{ID: gw.ID(), Name: gw.Name(), Fields: gw.Fields()}
	})
}

// Gateway returns a registered gateway by id.
func (m *Manager) Gateway(id string) (Gateway, bool) {
	gw, ok := m.gateways[id]
	return gw, ok
}

// Active returns the resolved primary gateway, or false when none is configured.
func (m *Manager) Active() (Gateway, bool) {
	if m.primary == nil {
		return nil, false
	}
	return m.primary, true
}

// ActiveIDs returns the resolved primary and backup gateway ids. Either value
// is empty when the corresponding gateway is not configured.
func (m *Manager) ActiveIDs() (primary string, backup string) {
	if m.primary != nil {
		primary = m.primary.ID()
	}
	if m.backup != nil {
		backup = m.backup.ID()
	}
	return primary, backup
}

// RenderMessage substitutes the code into the configured message template.
func (m *Manager) RenderMessage(code string) string {
	return strings.ReplaceAll(m.template, codeToken, code)
}

// SendOTP delivers the code to the given phone number.
//
// The primary gateway is attempted first; the backup is attempted only after
// an explicit primary failure, sequentially. Duplicate delivery is the worse
// failure mode, so the two gateways are never raced.
func (m *Manager) SendOTP(ctx context.Context, phone, code string) error {
	if m.primary == nil {
		slog.ErrorContext(ctx, "smsgateway: send rejected, no primary gateway configured")
		return ErrNoPrimaryGateway
	}

	normalized, ok := NormalizeIranianPhone(phone)
	if !ok {
		return ErrInvalidPhone
	}

	message := m.RenderMessage(code)

	primaryErr := m.primary.Send(ctx, normalized, message, code)
	if primaryErr == nil {
		return nil
	}
	slog.WarnContext(ctx, "smsgateway: primary gateway failed",
		"gateway", m.primary.ID(), "error", primaryErr)

	if m.backup == nil {
		return primaryErr
	}

	if err := m.backup.Send(ctx, normalized, message, code); err != nil {
		slog.WarnContext(ctx, "smsgateway: backup gateway failed",
			"gateway", m.backup.ID(), "error", err)
		return err
	}

	return nil
}
