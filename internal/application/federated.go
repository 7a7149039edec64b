package application

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/secondchance/marketplace/config"
)

// GoogleProvider runs the authorization-code leg of the federated login
// flow. Profile resolution lives in AuthService.LoginWithGoogle so it can be
// tested without the network.
type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL builds the consent-screen redirect for a state nonce.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// FetchProfile exchanges the callback code and pulls the userinfo claims.
func (p *GoogleProvider) FetchProfile(ctx context.Context, code string) (GoogleProfile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, err
	}
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(p.oauth.TokenSource(ctx, tok)))
	if err != nil {
		return GoogleProfile{}, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return GoogleProfile{}, err
	}
	return GoogleProfile{ID: info.Id, Email: info.Email, Name: info.Name}, nil
}
