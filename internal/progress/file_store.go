package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type fileState struct {
	Snapshot     *Snapshot      `yaml:"snapshot,omitempty"`
	StudySeconds map[string]int `yaml:"study_seconds,omitempty"`
}

// FileStore keeps progress in a single YAML file.
// Every write replaces the file through a rename, so a crash never leaves a partial file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new FileStore.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) SaveSnapshot(_ context.Context, snapshot Snapshot) error {
	return s.update(func(state *fileState) {
		ids := make([]string, len(snapshot.WordIDs))
		copy(ids, snapshot.WordIDs)
		state.Snapshot = &Snapshot{WordIDs: ids, Cursor: snapshot.Cursor}
	})
}

func (s *FileStore) LoadSnapshot(_ context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return nil, err
	}
	return state.Snapshot, nil
}

func (s *FileStore) ClearSnapshot(_ context.Context) error {
	return s.update(func(state *fileState) {
		state.Snapshot = nil
	})
}

// AddStudySeconds adds seconds to the total of the day. Negative values are ignored.
func (s *FileStore) AddStudySeconds(_ context.Context, day time.Time, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	return s.update(func(state *fileState) {
		if state.StudySeconds == nil {
			state.StudySeconds = make(map[string]int)
		}
		state.StudySeconds[dayKey(day)] += seconds
	})
}

func (s *FileStore) StudySeconds(_ context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return 0, err
	}
	return state.StudySeconds[dayKey(day)], nil
}

func (s *FileStore) update(fn func(state *fileState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	fn(state)
	return s.write(state)
}

func (s *FileStore) read() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}

	var state fileState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", s.path, err)
	}
	return &state, nil
}

func (s *FileStore) write(state *fileState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename() > %w", err)
	}
	return nil
}
