package emu

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Credentials holds the connection details for one EMu tenant.
type Credentials struct {
	BaseURL  string
	Port     string
	Tenant   string
	Username string
	Password string
}

// Validate checks that every required field is set. Port is optional.
// The returned error matches ErrMissingConfiguration.
func (c Credentials) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Tenant, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
	if err != nil {
		return newError("config", KindMissingConfiguration, err)
	}
	return nil
}

// ValidateEndpoint checks only the fields needed to build request URLs, for
// callers that already hold a token and never authenticate.
func (c Credentials) ValidateEndpoint() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Tenant, validation.Required),
	)
	if err != nil {
		return newError("config", KindMissingConfiguration, err)
	}
	return nil
}

// Endpoint returns the base URL without a trailing slash, with ":port"
// appended when a port is configured.
func (c Credentials) Endpoint() string {
	endpoint := strings.TrimRight(c.BaseURL, "/")
	if c.Port != "" {
		endpoint += ":" + c.Port
	}
	return endpoint
}

// String redacts the password.
func (c Credentials) String() string {
	return c.Username + "@" + c.Endpoint() + "/" + c.Tenant
}
