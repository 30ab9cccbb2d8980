package emu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Transport performs a single HTTP exchange. Implementations must honor ctx
// and return a fully buffered Response.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Header is one request header line. Names need not be unique.
type Header struct {
	Name  string
	Value string
}

// Request describes one outgoing call. It is built fresh for every operation.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

// Get returns the value of the first header named name, compared case-insensitively.
func (r *Request) Get(name string) string {
	for _, h := range r.Headers {
		if http.CanonicalHeaderKey(h.Name) == http.CanonicalHeaderKey(name) {
			return h.Value
		}
	}
	return ""
}

// Response is the buffered result of a Request.
type Response struct {
	StatusCode int
	Header     http.Header
	// RawHeader is the header block in wire format ("Name: value\r\n" lines).
	RawHeader []byte
	Body      []byte
}

// httpTransport adapts *http.Client to Transport.
type httpTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport wraps client. A nil client means http.DefaultClient.
func NewHTTPTransport(client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpTransport{client: client}
}

// Do executes req with the underlying http.Client.
func (t *httpTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}
	if t.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var raw bytes.Buffer
	if err := resp.Header.Write(&raw); err != nil {
		return nil, fmt.Errorf("failed to read response headers: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		RawHeader:  raw.Bytes(),
		Body:       respBody,
	}, nil
}
