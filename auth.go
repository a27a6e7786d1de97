package apikit

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies the bearer token attached to endpoints that require
// authentication. Returning an empty token or an error makes the dispatcher
// fail the call with "authentication required" before touching the transport.
type TokenProvider func(ctx context.Context) (string, error)

// StaticTokenProvider returns a provider that always yields the same token.
func StaticTokenProvider(token string) TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// OAuth2TokenProvider adapts an oauth2.TokenSource, so clients can reuse any
// existing OAuth2 flow (client credentials, refresh tokens) as their bearer
// token source.
func OAuth2TokenProvider(ts oauth2.TokenSource) TokenProvider {
	return func(context.Context) (string, error) {
		tok, err := ts.Token()
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	}
}
