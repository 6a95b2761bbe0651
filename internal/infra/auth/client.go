package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Client obtains bearer tokens with the OAuth2 password grant.
type Client struct {
	conf     *oauth2.Config
	username string
	password string
	http     *http.Client
}

func New(tokenURL, clientID, username, password string, timeout time.Duration) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		username: username,
		password: password,
		http:     &http.Client{Timeout: timeout},
	}
}

// Token returns the access token. Any failure is final, there is no retry.
func (c *Client) Token(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.conf.PasswordCredentialsToken(ctx, c.username, c.password)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return tok.AccessToken, nil
}
