package emu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// tokenRequest is the body posted to the tokens resource. The API also
// documents "timeout" and "renew", but answers 400 when they are sent.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticator obtains bearer tokens from the tokens resource.
//
// Authenticate returns the token by value; callers should pass that value on
// rather than reading it back through Token. The slot kept on the instance is
// last-writer-wins when Authenticate runs concurrently.
type Authenticator struct {
	creds  Credentials
	opts   clientOptions
	logger zerolog.Logger

	mu    sync.RWMutex
	token Token
}

// NewAuthenticator creates a new Authenticator. Credentials are validated by
// Authenticate, before any request is made.
func NewAuthenticator(creds Credentials, logger zerolog.Logger, opts ...Option) *Authenticator {
	return &Authenticator{
		creds:  creds,
		opts:   newClientOptions(opts),
		logger: logger,
	}
}

// Authenticate posts the credentials to {endpoint}/{tenant}/tokens and returns
// the bearer token found in the response headers.
func (a *Authenticator) Authenticate(ctx context.Context) (Token, error) {
	if err := a.creds.Validate(); err != nil {
		return "", newError("auth", KindMissingConfiguration, unwrapCause(err))
	}

	payload, err := json.Marshal(tokenRequest{
		Username: a.creds.Username,
		Password: a.creds.Password,
	})
	if err != nil {
		return "", newError("auth", KindUnknown, fmt.Errorf("failed to encode credentials: %w", err))
	}

	req := &Request{
		Method:  http.MethodPost,
		URL:     resourceURL(a.creds, "tokens"),
		Headers: []Header{{Name: "Content-Type", Value: "application/json"}},
		Body:    payload,
	}

	resp, err := a.opts.send(ctx, a.logger, "auth", req)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError("auth", KindUnexpectedStatus, resp.StatusCode)
	}

	token, ok := ExtractBearerToken(resp.RawHeader)
	if !ok {
		return "", statusError("auth", KindTokenNotFound, resp.StatusCode)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	a.logger.Debug().Str("tenant", a.creds.Tenant).Str("user", a.creds.Username).Msg("Obtained EMu token")
	return token, nil
}

// Token returns the token from the most recent successful Authenticate.
func (a *Authenticator) Token() (Token, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.token == "" {
		return "", newError("auth", KindTokenNotSet, fmt.Errorf("call Authenticate first"))
	}
	return a.token, nil
}

// unwrapCause strips the *Error wrapper so the cause can be re-tagged with a new Op.
func unwrapCause(err error) error {
	if e, ok := err.(*Error); ok {
		return e.Err
	}
	return err
}
