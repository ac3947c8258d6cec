package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

const sessionsFileName = "sessions.json"

// FileSessionRepository persists sessions as a single JSON array on disk.
// Every operation reads or rewrites the whole file; last write wins. The
// mutex serializes writers within this process, nothing more.
type FileSessionRepository struct {
	path string

	mu sync.Mutex
}

func NewFileSessionRepository(dataDir string) (*FileSessionRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileSessionRepository{
		path: filepath.Join(dataDir, sessionsFileName),
	}

	if _, err := os.Stat(repo.path); os.IsNotExist(err) {
		if err := repo.writeAll([]*domain.Session{}); err != nil {
			return nil, err
		}
	}

	return repo, nil
}

func (r *FileSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.readAll()
	if err != nil {
		return err
	}

	sessions = append(sessions, session)
	return r.writeAll(sessions)
}

func (r *FileSessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll()
}

func (r *FileSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.readAll()
	if err != nil {
		return err
	}

	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sessions) {
		return domain.ErrSessionNotFound
	}

	return r.writeAll(kept)
}

func (r *FileSessionRepository) readAll() ([]*domain.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Session{}, nil
		}
		return nil, fmt.Errorf("failed to read sessions file: %w", err)
	}

	var sessions []*domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSessionData, err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}

	return sessions, nil
}

func (r *FileSessionRepository) writeAll(sessions []*domain.Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sessions file: %w", err)
	}
	return nil
}
