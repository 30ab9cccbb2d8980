package emu

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// send issues req within the configured timeout. Any failure to obtain a
// response is reported as KindTransport.
func (o *clientOptions) send(ctx context.Context, logger zerolog.Logger, op string, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.transport.Do(ctx, req)
	if err != nil {
		logger.Debug().Err(err).Str("op", op).Str("method", req.Method).Str("url", req.URL).Msg("EMu request failed")
		return nil, newError(op, KindTransport, err)
	}

	logger.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Msg("EMu request completed")

	return resp, nil
}

// decodeJSON parses a generic JSON document.
func decodeJSON(op string, body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, newError(op, KindDecode, err)
	}
	return v, nil
}

// resourceURL builds {endpoint}/{tenant}/{segments...}.
func resourceURL(creds Credentials, segments ...string) string {
	var b strings.Builder
	b.WriteString(creds.Endpoint())
	b.WriteByte('/')
	b.WriteString(url.PathEscape(creds.Tenant))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func checkTokenAndResource(op string, token Token, resource string) error {
	if token == "" {
		return newError(op, KindTokenNotSet, nil)
	}
	if strings.TrimSpace(resource) == "" {
		return newError(op, KindInvalidArgument, errMissingResource)
	}
	return nil
}
