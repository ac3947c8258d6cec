package domain

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSessionData is returned when the stored data does not decode
	// into a list of session records.
	ErrInvalidSessionData = errors.New("stored session data is not a session list")
)

type SessionRepository interface {
	// Create appends a new session to the store.
	Create(ctx context.Context, session *Session) error

	// List returns every session in the store. Order is not guaranteed;
	// callers sort as needed.
	List(ctx context.Context) ([]*Session, error)

	// Delete removes a session by id.
	Delete(ctx context.Context, id string) error
}
