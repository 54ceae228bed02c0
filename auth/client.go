// Package auth performs the Intuit OAuth2 authorization-code flow:
// building the consent-page URL, exchanging a callback code for
// tokens, and minting fresh tokens from a refresh token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/qbotools/quickbooksrelay/httperror"
)

// IntuitAuthURL is the Intuit consent page
const IntuitAuthURL string = "https://appcenter.intuit.com/connect/oauth2"

// IntuitTokenURL is the Intuit token endpoint
const IntuitTokenURL string = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"

// ScopeAccounting scopes a grant to the QuickBooks accounting API
const ScopeAccounting string = "com.intuit.quickbooks.accounting"

// Grant is the credential set minted by the token endpoint. ExpiresIn
// is the access token lifetime in seconds as reported by the provider.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Client drives the authorization-code flow for one registered app.
type Client struct {
	cfg        *oauth2.Config
	httpclient *http.Client
}

// NewClient returns a Client for the given app credentials. Empty
// authURL or tokenURL fall back to the Intuit endpoints.
func NewClient(clientID, clientSecret, redirect, authURL, tokenURL string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("client id or secret is empty")
	}
	if _, err := url.ParseRequestURI(redirect); err != nil {
		return nil, errors.New("redirect url invalid")
	}
	if authURL == "" {
		authURL = IntuitAuthURL
	}
	if tokenURL == "" {
		tokenURL = IntuitTokenURL
	}
	return &Client{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{ScopeAccounting},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpclient: &http.Client{Timeout: time.Second * 10},
	}, nil
}

// AuthorizationURL builds the consent-page URL carrying the
// anti-forgery state.
func (c *Client) AuthorizationURL(state string) string {
	return c.cfg.AuthCodeURL(state)
}

// Exchange swaps an authorization code for a credential set.
func (c *Client) Exchange(ctx context.Context, code string) (Grant, error) {
	tok, err := c.cfg.Exchange(c.clientContext(ctx), code)
	if err != nil {
		return Grant{}, classify(err, "code exchange")
	}
	return grantFromToken(tok)
}

// Refresh mints a new credential set via the refresh-token grant.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Grant, error) {
	src := c.cfg.TokenSource(c.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return Grant{}, classify(err, "token refresh")
	}
	return grantFromToken(tok)
}

// clientContext routes token-endpoint calls through the timeout-bound
// http client.
func (c *Client) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpclient)
}

func grantFromToken(tok *oauth2.Token) (Grant, error) {
	g := Grant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    int(tok.ExpiresIn),
	}
	if g.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		g.ExpiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	if g.AccessToken == "" || g.RefreshToken == "" || g.ExpiresIn == 0 {
		return g, errors.New("empty response received from server")
	}
	return g, nil
}

// classify surfaces token-endpoint rejections with their status code.
func classify(err error, op string) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return &httperror.ClientError{Code: re.Response.StatusCode, Message: string(re.Body)}
	}
	return fmt.Errorf("%s: %w", op, err)
}
