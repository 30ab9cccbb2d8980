package emu

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every request unless WithTimeout overrides it.
const DefaultTimeout = 30 * time.Second

// Option configures the Authenticator, Retriever and Search clients.
type Option func(*clientOptions)

// clientOptions holds configuration options shared by the clients.
type clientOptions struct {
	timeout    time.Duration
	transport  Transport
	httpClient *http.Client
	userAgent  string
}

func newClientOptions(opts []Option) clientOptions {
	o := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.transport == nil {
		t := &httpTransport{client: o.httpClient, userAgent: o.userAgent}
		if t.client == nil {
			t.client = &http.Client{}
		}
		o.transport = t
	}
	return o
}

// WithTimeout sets the upper bound for each request. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string on the default transport.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
