package emu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecordRequestShape(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		wantURL string
	}{
		{
			name:    "all fields",
			wantURL: "https://emu.example.org:8080/museum/ecatalogue/2",
		},
		{
			name:    "single field",
			fields:  []string{"data.irn"},
			wantURL: "https://emu.example.org:8080/museum/ecatalogue/2?select=data.irn",
		},
		{
			name:    "fields keep their order",
			fields:  []string{"data.irn", "data.SummaryData", "data.DarGenus", "data.DarSpecies"},
			wantURL: "https://emu.example.org:8080/museum/ecatalogue/2?select=data.irn%2Cdata.SummaryData%2Cdata.DarGenus%2Cdata.DarSpecies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{status: http.StatusOK, body: `{"irn":"2"}`}
			r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(stub))

			_, err := r.GetRecord(context.Background(), "abc123", "ecatalogue", "2", tt.fields...)
			require.NoError(t, err)

			req := stub.last()
			require.NotNil(t, req)
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.wantURL, req.URL)
			assert.Equal(t, "Bearer abc123", req.Get("Authorization"))
			assert.Equal(t, "application/json", req.Get("Content-Type"))
			assert.Nil(t, req.Body)
		})
	}
}

func TestGetRecordStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    any
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: `{"irn":"2"}`, want: map[string]any{"irn": "2"}},
		{name: "ok array", status: http.StatusOK, body: `[1,"two"]`, want: []any{float64(1), "two"}},
		{name: "malformed json", status: http.StatusOK, body: `{"irn":`, wantErr: ErrDecode},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `not json`, wantErr: ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, body: `not json`, wantErr: ErrNotFound},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnexpectedStatus},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUnexpectedStatus},
		{name: "created is not ok", status: http.StatusCreated, body: `{}`, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{status: tt.status, body: tt.body}
			r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(stub))

			got, err := r.GetRecord(context.Background(), "abc123", "ecatalogue", "2")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				if !errors.Is(err, ErrDecode) {
					var emuErr *Error
					require.True(t, errors.As(err, &emuErr))
					assert.Equal(t, tt.status, emuErr.StatusCode)
					assert.Contains(t, err.Error(), "emu retrieve")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRecordErrorClassification(t *testing.T) {
	r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(&stubTransport{status: http.StatusNotFound}))
	_, err := r.GetRecord(context.Background(), "abc123", "ecatalogue", "999")

	var emuErr *Error
	require.True(t, errors.As(err, &emuErr))
	assert.True(t, emuErr.IsNotFound())
	assert.False(t, emuErr.IsUnauthorized())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetRecordInvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		resource string
		id       string
		wantErr  error
	}{
		{name: "empty token", token: "", resource: "ecatalogue", id: "2", wantErr: ErrTokenNotSet},
		{name: "empty resource", token: "t", resource: "", id: "2", wantErr: ErrInvalidArgument},
		{name: "blank id", token: "t", resource: "ecatalogue", id: "  ", wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{status: http.StatusOK, body: `{}`}
			r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(stub))

			_, err := r.GetRecord(context.Background(), tt.token, tt.resource, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, stub.calls)
		})
	}
}

func TestGetRecordEscapesPathSegments(t *testing.T) {
	stub := &stubTransport{status: http.StatusOK, body: `{}`}
	r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(stub))

	_, err := r.GetRecord(context.Background(), "t", "ecatalogue", "2/../3")
	require.NoError(t, err)
	assert.Equal(t, "https://emu.example.org:8080/museum/ecatalogue/2%2F..%2F3", stub.last().URL)
}

func TestGetRecordTransportFailure(t *testing.T) {
	r := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(&stubTransport{err: errConnRefused}))

	_, err := r.GetRecord(context.Background(), "t", "ecatalogue", "2")
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, errConnRefused)
}

func TestGetRecordTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	creds := validCredentials()
	creds.BaseURL = server.URL
	creds.Port = ""

	r := NewRetriever(creds, zerolog.Nop(), WithTimeout(50*time.Millisecond))
	_, err := r.GetRecord(context.Background(), "t", "ecatalogue", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAuthenticateThenGetRecord(t *testing.T) {
	authStub := &stubTransport{status: http.StatusOK, header: map[string]string{"Authorization": "Bearer abc123"}}
	token, err := NewAuthenticator(validCredentials(), zerolog.Nop(), WithTransport(authStub)).Authenticate(context.Background())
	require.NoError(t, err)
	require.Equal(t, Token("abc123"), token)

	recordStub := &stubTransport{status: http.StatusOK, body: `{"irn":"2"}`}
	record, err := NewRetriever(validCredentials(), zerolog.Nop(), WithTransport(recordStub)).
		GetRecord(context.Background(), token, "ecatalogue", "2", "data.irn")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"irn": "2"}, record)
	assert.Equal(t, "Bearer abc123", recordStub.last().Get("Authorization"))
	assert.Contains(t, recordStub.last().URL, "?select=data.irn")
}
