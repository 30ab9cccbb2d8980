package emu

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	smithFilter = `{"AND":[{"data.NamLast":{"exact":{"value": "Smith"}}}]}`
	firstSort   = `[{"data.NamFirst":{"order":"asc"}}]`
)

func TestSearchRequestShape(t *testing.T) {
	specs := map[string]SearchSpec{
		"full": {
			Filter: smithFilter,
			Sort:   firstSort,
			Select: []string{"data.NamFirst", "data.NamLast"},
			Limit:  10,
		},
		"empty":       {},
		"params only": {Params: url.Values{"cursor": {"abc"}}},
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			stub := &stubTransport{status: http.StatusOK, body: `{"matches":[]}`}
			s := NewSearch(validCredentials(), zerolog.Nop(), WithTransport(stub))

			_, err := s.Resource(context.Background(), "abc123", "eparties", spec)
			require.NoError(t, err)

			req := stub.last()
			require.NotNil(t, req)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://emu.example.org:8080/museum/eparties", req.URL)
			assert.Equal(t, "Bearer abc123", req.Get("Authorization"))
			assert.Equal(t, "representation=minimal", req.Get("Prefer"))
			assert.Equal(t, "GET", req.Get("X-HTTP-Method-Override"))
			assert.Equal(t, "application/x-www-form-urlencoded", req.Get("Content-Type"))
			assert.Equal(t, spec.Encode(), string(req.Body))
		})
	}
}

func TestSearchSpecRoundTrip(t *testing.T) {
	spec := SearchSpec{
		Filter: smithFilter,
		Sort:   firstSort,
		Select: []string{"a", "b"},
		Limit:  10,
	}

	decoded, err := url.ParseQuery(spec.Encode())
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"filter": {smithFilter},
		"sort":   {firstSort},
		"select": {"a,b"},
		"limit":  {"10"},
	}, decoded)
}

func TestSearchSpecValues(t *testing.T) {
	t.Run("omits unset fields", func(t *testing.T) {
		assert.Empty(t, SearchSpec{Limit: 0}.Values())
		assert.Empty(t, SearchSpec{Limit: -5}.Values())
	})

	t.Run("params pass through", func(t *testing.T) {
		spec := SearchSpec{
			Limit:  5,
			Params: url.Values{"cursor": {"next"}, "limit": {"99"}},
		}
		v := spec.Values()
		assert.Equal(t, "next", v.Get("cursor"))
		assert.Equal(t, "5", v.Get("limit"), "explicit limit wins")
		assert.Equal(t, "99", spec.Params.Get("limit"), "params are not mutated")
	})

	t.Run("body is not json", func(t *testing.T) {
		body := SearchSpec{Filter: smithFilter}.Encode()
		assert.NotContains(t, body, "{")
		assert.Contains(t, body, "filter=")
	})
}

func TestSearchStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       any
		wantErr    error
		wantUnauth bool
	}{
		{name: "ok", status: http.StatusOK, body: `{"matches":[{"irn":1}]}`, want: map[string]any{"matches": []any{map[string]any{"irn": float64(1)}}}},
		{name: "malformed", status: http.StatusOK, body: `<html>`, wantErr: ErrDecode},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnexpectedStatus, wantUnauth: true},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad filter"}`, wantErr: ErrUnexpectedStatus},
		{name: "not found collection", status: http.StatusNotFound, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearch(validCredentials(), zerolog.Nop(), WithTransport(&stubTransport{status: tt.status, body: tt.body}))

			got, err := s.Resource(context.Background(), "t", "eparties", SearchSpec{})
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, ErrUnauthorized)

			var emuErr *Error
			require.True(t, errors.As(err, &emuErr))
			assert.Equal(t, "search", emuErr.Op)
			assert.Equal(t, tt.wantUnauth, emuErr.IsUnauthorized())
		})
	}
}

func TestSearchInvalidArguments(t *testing.T) {
	stub := &stubTransport{status: http.StatusOK, body: `{}`}
	s := NewSearch(validCredentials(), zerolog.Nop(), WithTransport(stub))

	_, err := s.Resource(context.Background(), "", "eparties", SearchSpec{})
	assert.ErrorIs(t, err, ErrTokenNotSet)

	_, err = s.Resource(context.Background(), "t", "", SearchSpec{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Empty(t, stub.calls)
}

func TestSearchTransportFailure(t *testing.T) {
	s := NewSearch(validCredentials(), zerolog.Nop(), WithTransport(&stubTransport{err: errConnRefused}))

	_, err := s.Resource(context.Background(), "t", "eparties", SearchSpec{})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSearchOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/museum/eparties", r.URL.Path)
		assert.Equal(t, "GET", r.Header.Get("X-HTTP-Method-Override"))
		assert.Equal(t, "emuctl-test", r.Header.Get("User-Agent"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		form, err := url.ParseQuery(string(raw))
		assert.NoError(t, err)
		assert.Equal(t, smithFilter, form.Get("filter"))
		assert.Equal(t, "data.NamFirst,data.NamLast", form.Get("select"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[{"data":{"NamFirst":"Jane","NamLast":"Smith"}}]}`))
	}))
	defer server.Close()

	creds := validCredentials()
	creds.BaseURL = server.URL
	creds.Port = ""

	client := NewClient(creds, zerolog.Nop(), WithUserAgent("emuctl-test"))
	got, err := client.Search(context.Background(), "t", "eparties", SearchSpec{
		Filter: smithFilter,
		Select: []string{"data.NamFirst", "data.NamLast"},
	})
	require.NoError(t, err)

	matches := got.(map[string]any)["matches"].([]any)
	require.Len(t, matches, 1)
}
