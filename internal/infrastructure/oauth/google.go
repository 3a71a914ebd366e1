package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Config holds the OAuth client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleProvider drives the authorization-code flow against Google and
// resolves the signed-in account into a domain.ProviderProfile.
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(cfg Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Enabled reports whether client credentials are configured.
func (p *GoogleProvider) Enabled() bool {
	return p.oauth.ClientID != "" && p.oauth.ClientSecret != ""
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Exchange trades the authorization code for a token and fetches the
// OpenID userinfo of the account behind it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (domain.ProviderProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return domain.ProviderProfile{}, err
	}
	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ProviderProfile{}, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if strings.TrimSpace(info.Email) == "" || !info.EmailVerified {
		return domain.ProviderProfile{}, domain.ErrInvalidCredentials
	}

	return domain.ProviderProfile{
		Provider: domain.ProviderGoogle,
		Subject:  info.Subject,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
