package emu

import (
	"context"
)

// API defines the interface for EMu operations
type API interface {
	// Authenticate obtains a bearer token for the configured user
	Authenticate(ctx context.Context) (Token, error)

	// GetRecord retrieves one record, optionally projected to fields
	GetRecord(ctx context.Context, token Token, resource, id string, fields ...string) (any, error)

	// Search runs a structured query against a resource collection
	Search(ctx context.Context, token Token, resource string, spec SearchSpec) (any, error)
}

var _ API = (*Client)(nil)
