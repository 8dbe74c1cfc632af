// Package oauth implements Google sign-in for the API.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Callback failures, distinguished so the redirect can name them.
var (
	ErrTokenExchange = errors.New("exchanging authorization code")
	ErrUserInfo      = errors.New("fetching google profile")
	ErrUnverified    = errors.New("google email is not verified")
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleUser is the subset of the Google profile used to sign users in.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verified_email"`
}

// Google drives the authorization-code flow against Google.
type Google struct {
	config      *oauth2.Config
	states      *StateStore
	userInfoURL string // overridable for tests
}

// NewGoogle creates a Google sign-in flow.
func NewGoogle(clientID, clientSecret, callbackURL string, states *StateStore) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		states:      states,
		userInfoURL: defaultUserInfoURL,
	}
}

// AuthURL returns the consent page URL with a freshly issued state.
func (g *Google) AuthURL() (string, error) {
	state, err := g.states.Issue()
	if err != nil {
		return "", err
	}
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// ValidState consumes state, reporting whether it was issued by AuthURL.
func (g *Google) ValidState(state string) bool {
	return g.states.Consume(state)
}

// Exchange trades an authorization code for the caller's Google profile.
func (g *Google) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUserInfo, err)
	}
	resp, err := g.config.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUserInfo, resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decoding profile: %v", ErrUserInfo, err)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email", ErrUserInfo)
	}
	if !user.VerifiedEmail {
		return nil, fmt.Errorf("%w: %s", ErrUnverified, user.Email)
	}
	return &user, nil
}
