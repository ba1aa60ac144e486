package inbound

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/social/usecase"
)

type uc interface {
	Authorize(ctx context.Context, in usecase.AuthorizeInput) (*usecase.AuthorizeOutput, error)
	Callback(ctx context.Context, in usecase.CallbackInput) (*usecase.CallbackOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/social/:provider/authorize", end.Authorize)
	r.GET("/api/v1/social/:provider/callback", end.Callback)
}
