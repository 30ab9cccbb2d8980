package emu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// stubTransport records every request and answers with a canned response.
type stubTransport struct {
	status int
	header map[string]string
	body   string
	err    error

	calls []*Request
}

func (s *stubTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}

	h := http.Header{}
	var raw strings.Builder
	for k, v := range s.header {
		h.Set(k, v)
		fmt.Fprintf(&raw, "%s: %s\r\n", k, v)
	}

	return &Response{
		StatusCode: s.status,
		Header:     h,
		RawHeader:  []byte(raw.String()),
		Body:       []byte(s.body),
	}, nil
}

func (s *stubTransport) last() *Request {
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:1: connect: connection refused")

func validCredentials() Credentials {
	return Credentials{
		BaseURL:  "https://emu.example.org/",
		Port:     "8080",
		Tenant:   "museum",
		Username: "api",
		Password: "secret",
	}
}
