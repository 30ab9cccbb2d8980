package emu

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SearchSpec is the form sent to a resource collection. Filter and Sort are
// JSON expressions in the EMu query grammar and are passed through unchecked.
type SearchSpec struct {
	Filter string
	Sort   string
	Select []string
	// Limit caps the number of matches. Zero or negative omits the field.
	Limit int
	// Params carries any further form fields the API accepts.
	Params url.Values
}

// Values returns the form fields of the spec. Explicit fields win over Params
// entries of the same name.
func (s SearchSpec) Values() url.Values {
	form := url.Values{}
	for k, vs := range s.Params {
		form[k] = append([]string(nil), vs...)
	}
	if s.Filter != "" {
		form.Set("filter", s.Filter)
	}
	if s.Sort != "" {
		form.Set("sort", s.Sort)
	}
	if len(s.Select) > 0 {
		form.Set("select", strings.Join(s.Select, ","))
	}
	if s.Limit > 0 {
		form.Set("limit", strconv.Itoa(s.Limit))
	}
	return form
}

// Encode returns the application/x-www-form-urlencoded body.
func (s SearchSpec) Encode() string {
	return s.Values().Encode()
}

// Search runs structured queries against resource collections.
type Search struct {
	creds  Credentials
	opts   clientOptions
	logger zerolog.Logger
}

// NewSearch creates a new Search client
func NewSearch(creds Credentials, logger zerolog.Logger, opts ...Option) *Search {
	return &Search{
		creds:  creds,
		opts:   newClientOptions(opts),
		logger: logger,
	}
}

// Resource queries {endpoint}/{tenant}/{resource}. The query travels as a
// POST form body with X-HTTP-Method-Override: GET, since filter and sort
// expressions outgrow a query string.
func (s *Search) Resource(ctx context.Context, token Token, resource string, spec SearchSpec) (any, error) {
	if err := checkTokenAndResource("search", token, resource); err != nil {
		return nil, err
	}

	req := &Request{
		Method: http.MethodPost,
		URL:    resourceURL(s.creds, resource),
		Headers: []Header{
			bearer(token),
			{Name: "Prefer", Value: "representation=minimal"},
			{Name: "X-HTTP-Method-Override", Value: http.MethodGet},
			{Name: "Content-Type", Value: "application/x-www-form-urlencoded"},
		},
		Body: []byte(spec.Encode()),
	}

	resp, err := s.opts.send(ctx, s.logger, "search", req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("search", KindUnexpectedStatus, resp.StatusCode)
	}
	return decodeJSON("search", resp.Body)
}
