// Package identity wraps the external identity provider that owns all
// credentials and sessions for this service.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrInvalidToken is returned when the provider rejects a token as unknown,
// expired or revoked.
var ErrInvalidToken = errors.New("invalid access token")

// User is the provider's view of an authenticated subject.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client calls the identity provider's session endpoints.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2)
	return &Client{http: c}
}

type introspectResponse struct {
	User *User `json:"user"`
}

// Introspect resolves a bearer token to the user it was issued for.
func (c *Client) Introspect(ctx context.Context, token string) (*User, error) {
	var body introspectResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&body).
		Get("/api/auth/session")
	if err != nil {
		return nil, fmt.Errorf("identity provider request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	case resp.IsError():
		return nil, fmt.Errorf("identity provider returned %d", resp.StatusCode())
	}

	if body.User == nil || body.User.ID == "" {
		return nil, ErrInvalidToken
	}
	return body.User, nil
}

// Revoke invalidates the session behind the token. Used by sign-out.
func (c *Client) Revoke(ctx context.Context, token string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Post("/api/auth/sign-out")
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("identity provider returned %d", resp.StatusCode())
	}
	return nil
}
