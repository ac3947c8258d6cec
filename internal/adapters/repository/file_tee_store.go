package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

const customTeesFileName = "custom_tees.json"

type customTeeEntry struct {
	CourseName string             `json:"course_name"`
	Tees       []domain.CustomTee `json:"tees"`
}

// FileTeeStore persists user-entered tee data per course in a flat JSON file,
// keyed by course id.
type FileTeeStore struct {
	path string

	mu sync.Mutex
}

func NewFileTeeStore(dataDir string) (*FileTeeStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileTeeStore{
		path: filepath.Join(dataDir, customTeesFileName),
	}, nil
}

func (s *FileTeeStore) ListByCourse(ctx context.Context, courseID string) ([]domain.CustomTee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	entry, ok := all[courseID]
	if !ok {
		return []domain.CustomTee{}, nil
	}
	return entry.Tees, nil
}

// Save upserts a tee by case-insensitive name within the course.
func (s *FileTeeStore) Save(ctx context.Context, courseID, courseName string, tee domain.CustomTee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}

	entry, ok := all[courseID]
	if !ok {
		entry = customTeeEntry{CourseName: courseName}
	}

	replaced := false
	for i, existing := range entry.Tees {
		if strings.EqualFold(existing.Name, tee.Name) {
			entry.Tees[i] = tee
			replaced = true
			break
		}
	}
	if !replaced {
		entry.Tees = append(entry.Tees, tee)
	}

	all[courseID] = entry
	return s.writeAll(all)
}

func (s *FileTeeStore) readAll() (map[string]customTeeEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]customTeeEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read custom tees file: %w", err)
	}

	var all map[string]customTeeEntry
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("custom tees file is corrupted: %w", err)
	}
	if all == nil {
		all = map[string]customTeeEntry{}
	}
	return all, nil
}

func (s *FileTeeStore) writeAll(all map[string]customTeeEntry) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode custom tees: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write custom tees file: %w", err)
	}
	return nil
}
