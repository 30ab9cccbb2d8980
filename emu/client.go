package emu

import (
	"context"

	"github.com/rs/zerolog"
)

// Client bundles the three EMu operations over one set of credentials. It
// holds no token of its own: the value returned by Authenticate is passed to
// GetRecord and Search explicitly.
type Client struct {
	auth     *Authenticator
	retrieve *Retriever
	search   *Search
}

// NewClient creates a new EMu client. Options are shared by all operations.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) *Client {
	o := newClientOptions(opts)
	shared := []Option{WithTransport(o.transport), WithTimeout(o.timeout)}

	return &Client{
		auth:     NewAuthenticator(creds, logger, shared...),
		retrieve: NewRetriever(creds, logger, shared...),
		search:   NewSearch(creds, logger, shared...),
	}
}

// Authenticate obtains a new token.
func (c *Client) Authenticate(ctx context.Context) (Token, error) {
	return c.auth.Authenticate(ctx)
}

// GetRecord fetches one record.
func (c *Client) GetRecord(ctx context.Context, token Token, resource, id string, fields ...string) (any, error) {
	return c.retrieve.GetRecord(ctx, token, resource, id, fields...)
}

// Search queries a resource collection.
func (c *Client) Search(ctx context.Context, token Token, resource string, spec SearchSpec) (any, error) {
	return c.search.Resource(ctx, token, resource, spec)
}
