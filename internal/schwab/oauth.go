package schwab

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Schwab OAuth2 endpoints.
// https://developer.schwab.com/ (Trader API, individual)
const (
	authURL  = "https://api.schwabapi.com/v1/oauth/authorize"
	tokenURL = "https://api.schwabapi.com/v1/oauth/token"
)

// Flow drives the one-time authorization-code flow. Schwab redirects to a
// localhost HTTPS URL the tool does not serve; the operator pastes the full
// redirect URL back instead.
type Flow struct {
	logger *zap.Logger
	oauth  *oauth2.Config
	state  string
}

// NewFlow builds a flow for the given application credentials.
func NewFlow(logger *zap.Logger, clientID, clientSecret, redirectURI string) *Flow {
	return &Flow{
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
				// Schwab requires client credentials via Basic auth.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		state: uuid.NewString(),
	}
}

// AuthCodeURL returns the browser URL that starts the authorization flow.
func (f *Flow) AuthCodeURL() string {
	return f.oauth.AuthCodeURL(f.state)
}

// ParseRedirect extracts the authorization code from the redirect URL the
// operator pasted back. It rejects vendor-reported errors, a missing code,
// and a state that does not match this run.
func (f *Flow) ParseRedirect(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid redirect URL: %w", err)
	}

	q := u.Query()
	if vendorErr := q.Get("error"); vendorErr != "" {
		return "", fmt.Errorf("authorization was denied: %s", vendorErr)
	}
	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect URL carries no code parameter; paste the full URL from the address bar")
	}
	if state := q.Get("state"); state != f.state {
		return "", fmt.Errorf("state parameter does not match this run; restart the flow and paste the new URL")
	}
	return code, nil
}

// Exchange swaps the authorization code for a token bundle.
func (f *Flow) Exchange(ctx context.Context, code string) (*Token, error) {
	tok, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	f.logger.Info("schwab.token_exchanged",
		zap.Time("expires_at", tok.Expiry))
	return fromOAuth2(tok), nil
}
