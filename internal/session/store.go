package session

import (
	"context"
	"errors"
)

// Store defines the interface for session state residency.
// Consumers define this interface, not the backing implementation.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

var ErrSessionNotFound = errors.New("session not found")
