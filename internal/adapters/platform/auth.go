package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	SignIn(ctx context.Context, identifier, password string) (string, error)
}

// AuthClient calls the credential exchange endpoint with basic auth.
type AuthClient struct {
	http *HTTPClient
	url  string
}

// NewAuthClient creates a client for the sign-in endpoint at url.
func NewAuthClient(url string, opts ...Option) *AuthClient {
	return &AuthClient{http: newHTTPClient(opts...), url: url}
}

// SignIn posts the credentials and returns the opaque token. Non-2xx answers
// map to ErrCredentialRejected.
func (c *AuthClient) SignIn(ctx context.Context, identifier, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+BasicCredentials(identifier, password))

	status, body, err := c.http.do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if !isSuccess(status) {
		return "", fmt.Errorf("%w: status %d", ErrCredentialRejected, status)
	}
	return parseToken(body)
}

// BasicCredentials encodes identifier:password for a Basic auth header.
func BasicCredentials(identifier, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(identifier + ":" + password))
}

// parseToken accepts a JSON string body and falls back to the raw body.
func parseToken(body []byte) (string, error) {
	var token string
	if err := json.Unmarshal(body, &token); err != nil {
		token = string(body)
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t\r\n{}") {
		return "", fmt.Errorf("%w: sign-in response carries no token", ErrMalformedResponse)
	}
	return token, nil
}
