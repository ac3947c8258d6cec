package repository

import (
	"context"
	"sync"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

type InMemorySessionRepository struct {
	store map[string]*domain.Session

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.Session),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[session.ID] = session
	return nil
}

func (r *InMemorySessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(r.store))
	for _, s := range r.store {
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrSessionNotFound
	}

	delete(r.store, id)
	return nil
}
