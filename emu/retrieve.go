package emu

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Retriever fetches single records by IRN.
type Retriever struct {
	creds  Credentials
	opts   clientOptions
	logger zerolog.Logger
}

// NewRetriever creates a new Retriever
func NewRetriever(creds Credentials, logger zerolog.Logger, opts ...Option) *Retriever {
	return &Retriever{
		creds:  creds,
		opts:   newClientOptions(opts),
		logger: logger,
	}
}

// GetRecord fetches {endpoint}/{tenant}/{resource}/{id}. When fields are
// given only those are returned, via a comma-joined select parameter.
//
// A 401 yields ErrUnauthorized and a 404 ErrNotFound; the caller decides
// whether to re-authenticate or skip.
func (r *Retriever) GetRecord(ctx context.Context, token Token, resource, id string, fields ...string) (any, error) {
	if err := checkTokenAndResource("retrieve", token, resource); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, newError("retrieve", KindInvalidArgument, errMissingRecordID)
	}

	req := &Request{
		Method: http.MethodGet,
		URL:    resourceURL(r.creds, resource, id) + selectQuery(fields),
		Headers: []Header{
			bearer(token),
			{Name: "Content-Type", Value: "application/json"},
		},
	}

	resp, err := r.opts.send(ctx, r.logger, "retrieve", req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeJSON("retrieve", resp.Body)
	case http.StatusUnauthorized:
		return nil, statusError("retrieve", KindUnauthorized, resp.StatusCode)
	case http.StatusNotFound:
		return nil, statusError("retrieve", KindNotFound, resp.StatusCode)
	default:
		return nil, statusError("retrieve", KindUnexpectedStatus, resp.StatusCode)
	}
}

// selectQuery renders "?select=<csv>" or "" for no fields.
func selectQuery(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return "?select=" + url.QueryEscape(strings.Join(fields, ","))
}
