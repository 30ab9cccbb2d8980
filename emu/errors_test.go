package emu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "status",
			err:  statusError("retrieve", KindUnexpectedStatus, 503),
			want: "emu retrieve: unexpected HTTP status: HTTP 503",
		},
		{
			name: "cause",
			err:  newError("auth", KindTransport, errors.New("dial failed")),
			want: "emu auth: transport failure: dial failed",
		},
		{
			name: "bare",
			err:  newError("search", KindTokenNotSet, nil),
			want: "emu search: authentication token not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("get failed: %w", statusError("retrieve", KindNotFound, 404))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err          *Error
		notFound     bool
		unauthorized bool
	}{
		{statusError("retrieve", KindNotFound, 404), true, false},
		{statusError("retrieve", KindUnauthorized, 401), false, true},
		{statusError("search", KindUnexpectedStatus, 401), false, true},
		{statusError("search", KindUnexpectedStatus, 404), true, false},
		{statusError("search", KindUnexpectedStatus, 500), false, false},
		{newError("auth", KindTransport, nil), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.notFound, tt.err.IsNotFound())
			assert.Equal(t, tt.unauthorized, tt.err.IsUnauthorized())
		})
	}
}

func TestCredentials(t *testing.T) {
	creds := validCredentials()
	assert.NoError(t, creds.Validate())
	assert.Equal(t, "https://emu.example.org:8080", creds.Endpoint())
	assert.NotContains(t, creds.String(), "secret")

	creds.Port = ""
	assert.NoError(t, creds.Validate(), "port is optional")
	assert.Equal(t, "https://emu.example.org", creds.Endpoint())

	creds.Tenant = ""
	err := creds.Validate()
	assert.ErrorIs(t, err, ErrMissingConfiguration)
	assert.Contains(t, err.Error(), "Tenant")
}
