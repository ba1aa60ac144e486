package usecase

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
)

type GatewaysOutput struct {
	Gateways []smsgateway.Descriptor
	Primary  string
	Backup   string
}

// Gateways lists the registered SMS providers and the active selection.
func (s *Usecase) Gateways(ctx context.Context) (*GatewaysOutput, error) {
	_, span := s.startSpan(ctx, "Gateways")
	defer span.End()

	primary, backup := s.gateways.ActiveIDs()

	return &GatewaysOutput{
		Gateways: s.gateways.Available(),
		Primary:  primary,
		Backup:   backup,
	}, nil
}
