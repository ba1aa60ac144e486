package inbound

import (
	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/social/usecase"
)

// HTTPEndpoint exposes HTTP handlers for social login workflows.
type HTTPEndpoint struct {
	uc uc
}

// Authorize returns the provider consent URL to redirect the user to.
func (h *HTTPEndpoint) Authorize(r *router.Request) (any, error) {
	resp, err := h.uc.Authorize(r.Context(), usecase.AuthorizeInput{
		Provider: r.GetParam("provider"),
	})
	if err != nil {
		return nil, err
	}

	return AuthorizeResponse{URL: resp.URL}, nil
}

// Callback completes the provider redirect and returns an access token.
func (h *HTTPEndpoint) Callback(r *router.Request) (any, error) {
	resp, err := h.uc.Callback(r.Context(), usecase.CallbackInput{
		Provider: r.GetParam("provider"),
		State:    r.GetQuery("state"),
		Code:     r.GetQuery("code"),
	})
	if err != nil {
		return nil, err
	}

	return CallbackResponse{
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
	}, nil
}
