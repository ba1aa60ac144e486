package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shandysiswandi/gotp/internal/social/entity"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const maxUserInfoBody = 1 << 20

// Provider wraps an OAuth2 authorization-code flow against one identity provider.
type Provider struct {
	id          string
	config      *oauth2.Config
	userInfoURL string
}

// ProviderConfig holds the client credentials for one provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewGoogleProvider builds a provider against Google's OAuth2 endpoints.
func NewGoogleProvider(cfg ProviderConfig) *Provider {
	return &Provider{
		id: entity.ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// NewGithubProvider builds a provider against GitHub's OAuth2 endpoints.
func NewGithubProvider(cfg ProviderConfig) *Provider {
	return &Provider{
		id: entity.ProviderGithub,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userInfoURL: "https://api.github.com/user",
	}
}

// ID returns the provider identifier used in URLs and configuration.
func (p *Provider) ID() string {
	return p.id
}

// AuthURL returns the provider consent page URL carrying the given state.
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for a provider token.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// FetchProfile calls the provider userinfo endpoint with the given token.
func (p *Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*entity.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		ID    json.Number `json:"id"`
		Email string      `json:"email"`
		Name  string      `json:"name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBody)).Decode(&body); err != nil {
		return nil, err
	}

	return &entity.Profile{
		ProviderUserID: body.ID.String(),
		Email:          body.Email,
		Name:           body.Name,
	}, nil
}
