package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gotp/internal/otp/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
)

// HTTPEndpoint exposes HTTP handlers for OTP login workflows.
type HTTPEndpoint struct {
	uc uc
}

// SendCode issues and dispatches a one-time code to an email or phone identifier.
func (h *HTTPEndpoint) SendCode(r *router.Request) (any, error) {
	var req SendCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendCode(r.Context(), usecase.SendCodeInput{Identifier: req.Identifier})
	if err != nil {
		return nil, err
	}

	return SendCodeResponse{Channel: resp.Channel}, nil
}

// VerifyCode checks a submitted code and returns an access token on success.
func (h *HTTPEndpoint) VerifyCode(r *router.Request) (any, error) {
	var req VerifyCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyCode(r.Context(), usecase.VerifyCodeInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyCodeResponse{
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
	}, nil
}

// Gateways lists registered SMS providers and the active primary/backup pair.
func (h *HTTPEndpoint) Gateways(r *router.Request) (any, error) {
	resp, err := h.uc.Gateways(r.Context())
	if err != nil {
		return nil, err
	}

	return GatewaysResponse{
		Gateways: lo.Map(resp.Gateways, func(d smsgateway.Descriptor, _ int) GatewayDescriptor {
			return GatewayDescriptor{
				ID:   d.ID,
				Name: d.Name,
				Fields: lo.Map(d.Fields, func(f smsgateway.CredentialField, _ int) GatewayField {
					return GatewayField{Key: f.Key, Label: f.Label, Secret: f.Secret}
				}),
			}
		}),
		Primary: resp.Primary,
		Backup:  resp.Backup,
	}, nil
}

// TOTPSetup begins authenticator-app enrollment for the authenticated user.
func (h *HTTPEndpoint) TOTPSetup(r *router.Request) (any, error) {
	resp, err := h.uc.TOTPSetup(r.Context())
	if err != nil {
		return nil, err
	}

	return TOTPSetupResponse{Secret: resp.Secret, URI: resp.URI}, nil
}

// TOTPConfirm completes authenticator-app enrollment.
func (h *HTTPEndpoint) TOTPConfirm(r *router.Request) (any, error) {
	var req TOTPConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.TOTPConfirm(r.Context(), usecase.TOTPConfirmInput{Code: req.Code}); err != nil {
		return nil, err
	}

	return TOTPConfirmResponse{}, nil
}
