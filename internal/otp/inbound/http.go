package inbound

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/otp/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
)

type uc interface {
	SendCode(ctx context.Context, in usecase.SendCodeInput) (*usecase.SendCodeOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyCodeInput) (*usecase.VerifyCodeOutput, error)
	Gateways(ctx context.Context) (*usecase.GatewaysOutput, error)

	TOTPSetup(ctx context.Context) (*usecase.TOTPSetupOutput, error)
	TOTPConfirm(ctx context.Context, in usecase.TOTPConfirmInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, apiKey router.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	// Programmatic OTP API (API-key protected)
	r.POST("/api/v1/otp/send", end.SendCode, apiKey)
	r.POST("/api/v1/otp/verify", end.VerifyCode, apiKey)
	r.GET("/api/v1/otp/gateways", end.Gateways, apiKey)

	// Authenticator enrollment (need authenticated)
	r.POST("/api/v1/otp/totp/setup", end.TOTPSetup)
	r.POST("/api/v1/otp/totp/confirm", end.TOTPConfirm)
}
